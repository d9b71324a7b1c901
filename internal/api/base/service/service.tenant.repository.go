package basesvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "pos_commerce/internal/api/base/models"
	"pos_commerce/internal/common"
)

// TenantStore là hợp đồng repository theo tenant, được các service phụ thuộc vào
type TenantStore[T any] interface {
	Create(ctx context.Context, q TenantQuery, doc *T) error
	GetByCode(ctx context.Context, q TenantQuery, code string) (*T, error)
	FindOne(ctx context.Context, q TenantQuery) (*T, error)
	FindAll(ctx context.Context, q TenantQuery) ([]T, error)
	List(ctx context.Context, q TenantQuery, page, limit int64, sort []basemodels.SortField) (*basemodels.PaginateResult[T], error)
	Update(ctx context.Context, q TenantQuery, code string, set bson.M) (*T, error)
	Replace(ctx context.Context, q TenantQuery, code string, doc *T, expectedVersion int64) (*T, error)
	Delete(ctx context.Context, q TenantQuery, code string) error
	Exists(ctx context.Context, q TenantQuery, code string) (bool, error)
}

// TenantRepository implement TenantStore trên một collection MongoDB.
// keyField là khóa tự nhiên của document trong phạm vi tenant.
type TenantRepository[T any] struct {
	base     *BaseServiceMongoImpl[T]
	keyField string
	now      func() time.Time
}

// NewTenantRepository tạo repository cho collection với khóa tự nhiên keyField
func NewTenantRepository[T any](collection *mongo.Collection, keyField string) *TenantRepository[T] {
	return &TenantRepository[T]{
		base:     NewBaseServiceMongo[T](collection),
		keyField: keyField,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func stampable(doc any) (basemodels.Stampable, error) {
	s, ok := doc.(basemodels.Stampable)
	if !ok {
		return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("%T không nhúng AbstractDocument", doc), common.StatusInternalServerError, nil)
	}
	return s, nil
}

// Create gán tenant, timestamps, version = 1 rồi insert.
// Trùng khóa trả về common.ErrAlreadyExists (qua unique index).
func (r *TenantRepository[T]) Create(ctx context.Context, q TenantQuery, doc *T) error {
	s, err := stampable(doc)
	if err != nil {
		return err
	}
	s.StampCreate(q.TenantID(), r.now())
	return r.base.InsertOne(ctx, doc)
}

// GetByCode trả về document theo khóa, (nil, nil) khi không có
func (r *TenantRepository[T]) GetByCode(ctx context.Context, q TenantQuery, code string) (*T, error) {
	return r.FindOne(ctx, q.Where(r.keyField, code))
}

// FindOne trả về document đầu tiên khớp q, (nil, nil) khi không có
func (r *TenantRepository[T]) FindOne(ctx context.Context, q TenantQuery) (*T, error) {
	doc, err := r.base.FindOne(ctx, q.Filter(), nil)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindAll trả về mọi document khớp q
func (r *TenantRepository[T]) FindAll(ctx context.Context, q TenantQuery) ([]T, error) {
	return r.base.Find(ctx, q.Filter(), nil)
}

// List trả về một trang document. Sort mặc định created_at giảm dần.
func (r *TenantRepository[T]) List(ctx context.Context, q TenantQuery, page, limit int64, sort []basemodels.SortField) (*basemodels.PaginateResult[T], error) {
	order := bson.D{}
	for _, f := range sort {
		order = append(order, bson.E{Key: f.Field, Value: f.Direction})
	}
	if len(order) == 0 {
		order = bson.D{{Key: "created_at", Value: -1}}
	}
	return r.base.FindWithPagination(ctx, q.Filter(), page, limit, options.Find().SetSort(order))
}

// Update $set các trường trong set, tăng version và trả về document mới
func (r *TenantRepository[T]) Update(ctx context.Context, q TenantQuery, code string, set bson.M) (*T, error) {
	fields := bson.M{}
	for k, v := range set {
		if k == fieldTenantID || k == "shard_key" || k == "version" || k == "created_at" {
			continue
		}
		fields[k] = v
	}
	fields["updated_at"] = r.now()

	doc, err := r.base.FindOneAndUpdate(ctx, q.Where(r.keyField, code).Filter(), &UpdateData{
		Set: fields,
		Inc: map[string]interface{}{"version": 1},
	})
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFoundf("không tìm thấy %s=%s", r.keyField, code)
	}
	return doc, err
}

// Replace ghi đè toàn bộ document nếu version hiện tại bằng expectedVersion.
// Version lệch trả về common.ErrConflict, khóa không tồn tại trả về common.ErrNotFound.
func (r *TenantRepository[T]) Replace(ctx context.Context, q TenantQuery, code string, doc *T, expectedVersion int64) (*T, error) {
	s, err := stampable(doc)
	if err != nil {
		return nil, err
	}
	keyQuery := q.Where(r.keyField, code)
	current, err := r.FindOne(ctx, keyQuery)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, common.NotFoundf("không tìm thấy %s=%s", r.keyField, code)
	}
	prev, err := stampable(current)
	if err != nil {
		return nil, err
	}
	if prev.Base().Version != expectedVersion {
		return nil, common.Conflictf("%s=%s đã bị thay đổi (version %d)", r.keyField, code, expectedVersion)
	}
	s.StampReplace(prev.Base(), r.now())

	matched, err := r.base.ReplaceOne(ctx, keyQuery.Where("version", expectedVersion).Filter(), doc)
	if err != nil {
		return nil, err
	}
	// ghi đồng thời giữa lúc đọc và lúc replace
	if matched == 0 {
		return nil, common.Conflictf("%s=%s đã bị thay đổi (version %d)", r.keyField, code, expectedVersion)
	}
	return doc, nil
}

// Delete xóa document theo khóa
func (r *TenantRepository[T]) Delete(ctx context.Context, q TenantQuery, code string) error {
	deleted, err := r.base.DeleteOne(ctx, q.Where(r.keyField, code).Filter())
	if err != nil {
		return err
	}
	if deleted == 0 {
		return common.NotFoundf("không tìm thấy %s=%s", r.keyField, code)
	}
	return nil
}

// Exists kiểm tra khóa đã tồn tại trong tenant chưa
func (r *TenantRepository[T]) Exists(ctx context.Context, q TenantQuery, code string) (bool, error) {
	return r.base.DocumentExists(ctx, q.Where(r.keyField, code).Filter())
}
