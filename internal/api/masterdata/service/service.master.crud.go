// Package mdsvc chứa service nghiệp vụ master-data: giảm giá và item book.
package mdsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	basemodels "pos_commerce/internal/api/base/models"
	basesvc "pos_commerce/internal/api/base/service"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
)

// masterCRUD là CRUD kiểm tra tồn tại rồi mới ghi, dùng chung cho các bảng giảm giá.
// resource là tên tài nguyên dùng trong message lỗi và audit log.
type masterCRUD[T any] struct {
	repo     basesvc.TenantStore[T]
	resource string
	keyName  string
}

func (m *masterCRUD[T]) create(ctx context.Context, q basesvc.TenantQuery, code string, doc *T) (*T, error) {
	exists, err := m.repo.Exists(ctx, q, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.AlreadyExistsf("%s với %s=%s đã tồn tại", m.resource, m.keyName, code)
	}
	if err := m.repo.Create(ctx, q, doc); err != nil {
		return nil, err
	}
	logger.LogAction(ctx, m.resource+"_create", q.TenantID(), m.resource, code, nil)
	return doc, nil
}

func (m *masterCRUD[T]) get(ctx context.Context, q basesvc.TenantQuery, code string) (*T, error) {
	doc, err := m.repo.GetByCode(ctx, q, code)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.NotFoundf("%s với %s=%s không tồn tại", m.resource, m.keyName, code)
	}
	return doc, nil
}

func (m *masterCRUD[T]) list(ctx context.Context, q basesvc.TenantQuery, page, limit int64, sort []basemodels.SortField) (*basemodels.PaginateResult[T], error) {
	return m.repo.List(ctx, q, page, limit, sort)
}

func (m *masterCRUD[T]) update(ctx context.Context, q basesvc.TenantQuery, code string, set bson.M) (*T, error) {
	if _, err := m.get(ctx, q, code); err != nil {
		return nil, err
	}
	doc, err := m.repo.Update(ctx, q, code, set)
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(set))
	for k := range set {
		fields = append(fields, k)
	}
	logger.LogAction(ctx, m.resource+"_update", q.TenantID(), m.resource, code, map[string]any{"fields": fields})
	return doc, nil
}

func (m *masterCRUD[T]) delete(ctx context.Context, q basesvc.TenantQuery, code string) error {
	if _, err := m.get(ctx, q, code); err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, q, code); err != nil {
		return err
	}
	logger.LogAction(ctx, m.resource+"_delete", q.TenantID(), m.resource, code, nil)
	return nil
}
