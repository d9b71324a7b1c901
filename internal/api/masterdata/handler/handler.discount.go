// Package mdhdl - Handler HTTP cho domain master-data.
package mdhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
	mddto "pos_commerce/internal/api/masterdata/dto"
	mdsvc "pos_commerce/internal/api/masterdata/service"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
)

// CategoryDiscountHandler xử lý /tenants/:tenant_id/category_discounts
type CategoryDiscountHandler struct {
	*basehdl.BaseHandler
	Service *mdsvc.CategoryDiscountService
}

// NewCategoryDiscountHandler tạo CategoryDiscountHandler
func NewCategoryDiscountHandler(base *basehdl.BaseHandler, svc *mdsvc.CategoryDiscountService) *CategoryDiscountHandler {
	return &CategoryDiscountHandler{BaseHandler: base, Service: svc}
}

// HandleCreate xử lý POST /category_discounts
func (h *CategoryDiscountHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "create_category_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input mddto.CategoryDiscountCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		doc, err := h.Service.Create(h.Context(c, q), q, &input)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusCreated, "create_category_discount", doc)
	})
}

// HandleList xử lý GET /category_discounts?limit=&page=&sort=
func (h *CategoryDiscountHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "list_category_discounts", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		page, err := h.ParsePageQuery(c)
		if err != nil {
			return err
		}
		result, err := h.Service.List(h.Context(c, q), q, page.Page, page.Limit, page.Sort)
		if err != nil {
			return err
		}
		return basehdl.Paginated(c, "list_category_discounts", result, page.SortRaw)
	})
}

// HandleGet xử lý GET /category_discounts/:category_code
func (h *CategoryDiscountHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "get_category_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		doc, err := h.Service.Get(h.Context(c, q), q, c.Params("category_code"))
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "get_category_discount", doc)
	})
}

// HandleGetDetail xử lý GET /category_discounts/:category_code/detail?terminal_id=.
// Không có category discount thì data là null.
func (h *CategoryDiscountHandler) HandleGetDetail(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "get_category_discount_detail", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var query mddto.CategoryDiscountDetailQuery
		if err := c.Bind().Query(&query); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		ctx := h.Context(c, q)
		logger.WithContext(ctx).WithField("terminal_id", query.TerminalID).Debug("lấy category discount detail")

		detail, err := h.Service.GetDetail(ctx, q, c.Params("category_code"))
		if err != nil {
			return err
		}
		if detail == nil {
			return basehdl.Success(c, common.StatusOK, "get_category_discount_detail", nil)
		}
		return basehdl.Success(c, common.StatusOK, "get_category_discount_detail", detail)
	})
}

// HandleUpdate xử lý PUT /category_discounts/:category_code
func (h *CategoryDiscountHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "update_category_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input mddto.CategoryDiscountUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		doc, err := h.Service.Update(h.Context(c, q), q, c.Params("category_code"), &input)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "update_category_discount", doc)
	})
}

// HandleDelete xử lý DELETE /category_discounts/:category_code
func (h *CategoryDiscountHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "delete_category_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		if err := h.Service.Delete(h.Context(c, q), q, c.Params("category_code")); err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "delete_category_discount", nil)
	})
}

// StoreDiscountHandler xử lý /tenants/:tenant_id/store_discounts
type StoreDiscountHandler struct {
	*basehdl.BaseHandler
	Service *mdsvc.StoreDiscountService
}

// NewStoreDiscountHandler tạo StoreDiscountHandler
func NewStoreDiscountHandler(base *basehdl.BaseHandler, svc *mdsvc.StoreDiscountService) *StoreDiscountHandler {
	return &StoreDiscountHandler{BaseHandler: base, Service: svc}
}

// HandleCreate xử lý POST /store_discounts
func (h *StoreDiscountHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "create_store_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input mddto.StoreDiscountCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		doc, err := h.Service.Create(h.Context(c, q), q, &input)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusCreated, "create_store_discount", doc)
	})
}

// HandleList xử lý GET /store_discounts
func (h *StoreDiscountHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "list_store_discounts", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		page, err := h.ParsePageQuery(c)
		if err != nil {
			return err
		}
		result, err := h.Service.List(h.Context(c, q), q, page.Page, page.Limit, page.Sort)
		if err != nil {
			return err
		}
		return basehdl.Paginated(c, "list_store_discounts", result, page.SortRaw)
	})
}

// HandleGet xử lý GET /store_discounts/:discount_code
func (h *StoreDiscountHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "get_store_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		doc, err := h.Service.Get(h.Context(c, q), q, c.Params("discount_code"))
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "get_store_discount", doc)
	})
}

// HandleUpdate xử lý PUT /store_discounts/:discount_code
func (h *StoreDiscountHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "update_store_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input mddto.StoreDiscountUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		doc, err := h.Service.Update(h.Context(c, q), q, c.Params("discount_code"), &input)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "update_store_discount", doc)
	})
}

// HandleDelete xử lý DELETE /store_discounts/:discount_code
func (h *StoreDiscountHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "delete_store_discount", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		if err := h.Service.Delete(h.Context(c, q), q, c.Params("discount_code")); err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "delete_store_discount", nil)
	})
}
