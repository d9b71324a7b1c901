// Package router đăng ký các route phía cart.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
	carthdl "pos_commerce/internal/api/cart/handler"
	cartsvc "pos_commerce/internal/api/cart/service"
	apirouter "pos_commerce/internal/api/router"
)

// Register trả về RegisterFunc đăng ký route cart với service đã dựng sẵn
func Register(svc *cartsvc.CartDiscountService) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		RegisterHandlers(r.Tenants(v1), carthdl.NewCartHandler(basehdl.NewBaseHandlerFromConfig(), svc))
		return nil
	}
}

// RegisterHandlers đăng ký route cart lên group /tenants/:tenant_id
func RegisterHandlers(tenants fiber.Router, h *carthdl.CartHandler) {
	apirouter.RegisterRouteWithMiddleware(tenants, "/cart", fiber.MethodPost, "/category_discounts", nil, h.HandleResolveCategoryDiscounts)
}
