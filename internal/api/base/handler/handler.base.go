// Package basehdl chứa phần dùng chung của tầng handler: envelope, parse request, phân trang.
package basehdl

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basemodels "pos_commerce/internal/api/base/models"
	basesvc "pos_commerce/internal/api/base/service"
	"pos_commerce/internal/common"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

// Giá trị phân trang khi chưa có cấu hình
const (
	DefaultPageLimit int64 = 100
	MaxPageLimit     int64 = 1000
	MaxPage          int64 = 1_000_000 // giữ (page-1)*limit trong int64
)

// LocalsAuthTenant là key trong c.Locals chứa tenant đã xác thực bởi middleware
const LocalsAuthTenant = "auth_tenant_id"

// PageQuery là tham số phân trang đọc từ query string
type PageQuery struct {
	Page    int64
	Limit   int64
	Sort    []basemodels.SortField
	SortRaw string
}

// BaseHandler gom các thao tác parse request mà mọi domain handler dùng chung
type BaseHandler struct {
	defaultLimit int64
	maxLimit     int64
}

// NewBaseHandler tạo BaseHandler, giá trị <= 0 dùng mặc định
func NewBaseHandler(defaultLimit, maxLimit int64) *BaseHandler {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &BaseHandler{defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// NewBaseHandlerFromConfig đọc giới hạn phân trang từ cấu hình server
func NewBaseHandlerFromConfig() *BaseHandler {
	if cfg := global.MongoDB_ServerConfig; cfg != nil {
		return NewBaseHandler(cfg.Pagination_DefaultLimit, cfg.Pagination_MaxLimit)
	}
	return NewBaseHandler(0, 0)
}

// ParseRequestBody parse JSON body vào input rồi validate.
// Dùng json.Decoder với UseNumber() để giữ nguyên số thập phân.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return common.NewError(common.ErrCodeValidationFormat, "Body không được để trống", common.StatusBadRequest, nil)
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return h.ValidateInput(input)
}

// ValidateInput chạy validator toàn cục trên input
func (h *BaseHandler) ValidateInput(input any) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParsePageQuery đọc page, limit, sort. Limit vượt quá max bị cắt về max.
func (h *BaseHandler) ParsePageQuery(c fiber.Ctx) (PageQuery, error) {
	q := PageQuery{Page: 1, Limit: h.defaultLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || page < 1 || page > MaxPage {
			return q, common.InvalidRequestf("page phải là số nguyên trong [1, %d], nhận được %q", MaxPage, raw)
		}
		q.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 {
			return q, common.InvalidRequestf("limit phải là số nguyên >= 1, nhận được %q", raw)
		}
		q.Limit = min(limit, h.maxLimit)
	}

	sort, err := basemodels.ParseSort(c.Query("sort"))
	if err != nil {
		return q, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil)
	}
	q.Sort = sort
	q.SortRaw = basemodels.FormatSort(sort)
	return q, nil
}

// TenantQuery dựng TenantQuery từ path param :tenant_id.
// Tenant đã xác thực khác tenant trên đường dẫn thì trả về 403.
func (h *BaseHandler) TenantQuery(c fiber.Ctx) (basesvc.TenantQuery, error) {
	q, err := basesvc.NewTenantQuery(c.Params("tenant_id"))
	if err != nil {
		return q, err
	}
	if authTenant, ok := c.Locals(LocalsAuthTenant).(string); ok && authTenant != "" && authTenant != q.TenantID() {
		return q, common.ErrTenantDenied
	}
	return q, nil
}

// Context trả về context cho tầng service, mang request_id và tenant_id
func (h *BaseHandler) Context(c fiber.Ctx, q basesvc.TenantQuery) context.Context {
	return logger.ContextFromRequest(c, q.TenantID())
}

// IntParam đọc path param dạng số nguyên
func (h *BaseHandler) IntParam(c fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.InvalidRequestf("%s phải là số nguyên, nhận được %q", name, raw)
	}
	return n, nil
}
