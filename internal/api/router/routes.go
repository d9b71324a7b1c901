package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
)

// Fiber v3: middleware truyền trực tiếp vào router.Get(path, mw, handler) không được gọi.
// Luôn đăng ký middleware qua .Use() của group, xem RegisterRouteWithMiddleware.

// Router quản lý việc định tuyến cho API
type Router struct {
	app               *fiber.App
	tenantMiddlewares []fiber.Handler
	tenants           fiber.Router
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo Router. tenantMiddlewares áp dụng cho mọi route dưới /tenants/:tenant_id.
func NewRouter(app *fiber.App, tenantMiddlewares ...fiber.Handler) *Router {
	return &Router{
		app:               app,
		tenantMiddlewares: tenantMiddlewares,
	}
}

// Tenants trả về group /tenants/:tenant_id dùng chung cho mọi domain.
// Group chỉ được tạo một lần để middleware không chạy lặp.
func (r *Router) Tenants(v1 fiber.Router) fiber.Router {
	if r.tenants == nil {
		r.tenants = v1.Group("/tenants/:tenant_id")
		for _, mw := range r.tenantMiddlewares {
			r.tenants.Use(mw)
		}
	}
	return r.tenants
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() của group (cách đúng theo Fiber v3)
//
//	RegisterRouteWithMiddleware(tenants, "/item_books", "GET", "/:item_book_id", nil, h.HandleGet)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export)
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SystemRoutes đăng ký /system/health
func SystemRoutes(h *basehdl.SystemHandler) RegisterFunc {
	return func(v1 fiber.Router, r *Router) error {
		RegisterRouteWithMiddleware(v1, "/system", fiber.MethodGet, "/health", nil, h.HandleHealth)
		return nil
	}
}

// SetupRoutes thiết lập tất cả các route dưới /api/v1. Caller truyền Register của từng domain để tránh import cycle.
func SetupRoutes(r *Router, regs ...RegisterFunc) error {
	v1 := r.app.Group(NewRoutePrefix().V1)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
