// Package carthdl - Handler HTTP phía cart.
package carthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
	cartdto "pos_commerce/internal/api/cart/dto"
	cartsvc "pos_commerce/internal/api/cart/service"
	"pos_commerce/internal/common"
)

// CartHandler xử lý /tenants/:tenant_id/cart
type CartHandler struct {
	*basehdl.BaseHandler
	Service *cartsvc.CartDiscountService
}

// NewCartHandler tạo CartHandler
func NewCartHandler(base *basehdl.BaseHandler, svc *cartsvc.CartDiscountService) *CartHandler {
	return &CartHandler{BaseHandler: base, Service: svc}
}

// HandleResolveCategoryDiscounts xử lý POST /cart/category_discounts.
// API key của request được chuyển tiếp sang master-data.
func (h *CartHandler) HandleResolveCategoryDiscounts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "resolve_cart_category_discounts", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input cartdto.CategoryDiscountResolveInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		result, err := h.Service.Resolve(h.Context(c, q), q.TenantID(), &input, c.Get(cartsvc.HeaderApiKey))
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "resolve_cart_category_discounts", result)
	})
}
