// Package router đăng ký các route thuộc domain master-data: category/store discount, item book.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
	mdhdl "pos_commerce/internal/api/masterdata/handler"
	mdsvc "pos_commerce/internal/api/masterdata/service"
	apirouter "pos_commerce/internal/api/router"
	"pos_commerce/internal/metrics"
)

// Handlers gom các handler master-data
type Handlers struct {
	CategoryDiscounts *mdhdl.CategoryDiscountHandler
	StoreDiscounts    *mdhdl.StoreDiscountHandler
	ItemBooks         *mdhdl.ItemBookHandler
}

// NewHandlers dựng Handlers từ Services
func NewHandlers(base *basehdl.BaseHandler, svc *mdsvc.Services) Handlers {
	return Handlers{
		CategoryDiscounts: mdhdl.NewCategoryDiscountHandler(base, svc.CategoryDiscounts),
		StoreDiscounts:    mdhdl.NewStoreDiscountHandler(base, svc.StoreDiscounts),
		ItemBooks:         mdhdl.NewItemBookHandler(base, svc.ItemBooks),
	}
}

// Register trả về RegisterFunc dựng service từ global rồi đăng ký route master-data
func Register(m *metrics.ItemBookMetrics) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		svc, err := mdsvc.NewServicesFromGlobal(m)
		if err != nil {
			return fmt.Errorf("tạo master-data services: %w", err)
		}
		RegisterHandlers(r.Tenants(v1), NewHandlers(basehdl.NewBaseHandlerFromConfig(), svc))
		return nil
	}
}

// RegisterHandlers đăng ký route master-data lên group /tenants/:tenant_id
func RegisterHandlers(tenants fiber.Router, h Handlers) {
	cd := h.CategoryDiscounts
	apirouter.RegisterRouteWithMiddleware(tenants, "/category_discounts", fiber.MethodPost, "", nil, cd.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(tenants, "/category_discounts", fiber.MethodGet, "", nil, cd.HandleList)
	apirouter.RegisterRouteWithMiddleware(tenants, "/category_discounts", fiber.MethodGet, "/:category_code", nil, cd.HandleGet)
	// GET /category_discounts/:category_code/detail?terminal_id=: ghép discount_value của store discount
	apirouter.RegisterRouteWithMiddleware(tenants, "/category_discounts", fiber.MethodGet, "/:category_code/detail", nil, cd.HandleGetDetail)
	apirouter.RegisterRouteWithMiddleware(tenants, "/category_discounts", fiber.MethodPut, "/:category_code", nil, cd.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(tenants, "/category_discounts", fiber.MethodDelete, "/:category_code", nil, cd.HandleDelete)

	sd := h.StoreDiscounts
	apirouter.RegisterRouteWithMiddleware(tenants, "/store_discounts", fiber.MethodPost, "", nil, sd.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(tenants, "/store_discounts", fiber.MethodGet, "", nil, sd.HandleList)
	apirouter.RegisterRouteWithMiddleware(tenants, "/store_discounts", fiber.MethodGet, "/:discount_code", nil, sd.HandleGet)
	apirouter.RegisterRouteWithMiddleware(tenants, "/store_discounts", fiber.MethodPut, "/:discount_code", nil, sd.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(tenants, "/store_discounts", fiber.MethodDelete, "/:discount_code", nil, sd.HandleDelete)

	ib := h.ItemBooks
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPost, "", nil, ib.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodGet, "", nil, ib.HandleList)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodGet, "/:item_book_id", nil, ib.HandleGet)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodGet, "/:item_book_id/detail", nil, ib.HandleGetDetail)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPut, "/:item_book_id", nil, ib.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodDelete, "/:item_book_id", nil, ib.HandleDelete)

	// Cây category → tab → button, khóa theo vị trí
	const (
		category = "/:item_book_id/categories/:category_number"
		tab      = category + "/tabs/:tab_number"
		button   = tab + "/buttons/pos_x/:pos_x/pos_y/:pos_y"
	)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPost, "/:item_book_id/categories", nil, ib.HandleAddCategory)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPut, category, nil, ib.HandleUpdateCategory)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodDelete, category, nil, ib.HandleDeleteCategory)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPost, category+"/tabs", nil, ib.HandleAddTab)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPut, tab, nil, ib.HandleUpdateTab)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodDelete, tab, nil, ib.HandleDeleteTab)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPost, tab+"/buttons", nil, ib.HandleAddButton)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodPut, button, nil, ib.HandleUpdateButton)
	apirouter.RegisterRouteWithMiddleware(tenants, "/item_books", fiber.MethodDelete, button, nil, ib.HandleDeleteButton)
}
