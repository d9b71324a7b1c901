package basesvc

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"pos_commerce/internal/common"
)

// fieldTenantID là tên trường tenant trong mọi collection
const fieldTenantID = "tenant_id"

// TenantQuery là filter luôn gắn tenant_id. Chỉ tạo được qua NewTenantQuery,
// nên repository không nhận filter nào thiếu tenant.
type TenantQuery struct {
	tenantID string
	conds    bson.D
}

// NewTenantQuery tạo query cho tenant, lỗi khi tenantID rỗng
func NewTenantQuery(tenantID string) (TenantQuery, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return TenantQuery{}, common.InvalidRequestf("tenant_id là bắt buộc")
	}
	return TenantQuery{tenantID: tenantID}, nil
}

// TenantID trả về tenant của query
func (q TenantQuery) TenantID() string {
	return q.tenantID
}

// Where trả về query mới có thêm điều kiện field = value.
// Điều kiện trên tenant_id bị bỏ qua.
func (q TenantQuery) Where(field string, value interface{}) TenantQuery {
	if field == fieldTenantID || field == "" {
		return q
	}
	conds := make(bson.D, len(q.conds), len(q.conds)+1)
	copy(conds, q.conds)
	q.conds = append(conds, bson.E{Key: field, Value: value})
	return q
}

// WhereIn trả về query mới với điều kiện field nằm trong values
func (q TenantQuery) WhereIn(field string, values interface{}) TenantQuery {
	return q.Where(field, bson.M{"$in": values})
}

// Filter dựng bson filter, tenant_id luôn đứng đầu
func (q TenantQuery) Filter() bson.D {
	filter := make(bson.D, 0, len(q.conds)+1)
	filter = append(filter, bson.E{Key: fieldTenantID, Value: q.tenantID})
	return append(filter, q.conds...)
}
