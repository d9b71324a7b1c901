package mdhdl

import (
	"context"

	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
	basesvc "pos_commerce/internal/api/base/service"
	mddto "pos_commerce/internal/api/masterdata/dto"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	mdsvc "pos_commerce/internal/api/masterdata/service"
	"pos_commerce/internal/common"
)

// ItemBookHandler xử lý /tenants/:tenant_id/item_books và cây category → tab → button
type ItemBookHandler struct {
	*basehdl.BaseHandler
	Service *mdsvc.ItemBookService
}

// NewItemBookHandler tạo ItemBookHandler
func NewItemBookHandler(base *basehdl.BaseHandler, svc *mdsvc.ItemBookService) *ItemBookHandler {
	return &ItemBookHandler{BaseHandler: base, Service: svc}
}

// bookPath là các key trên đường dẫn nested, field nào không có trong route thì bằng 0
type bookPath struct {
	bookID         string
	categoryNumber int
	tabNumber      int
	posX           int
	posY           int
}

// requestScope là context và tenant của request đang xử lý
type requestScope struct {
	ctx context.Context
	q   basesvc.TenantQuery
}

// parsePath đọc :item_book_id và các số trong names
func (h *ItemBookHandler) parsePath(c fiber.Ctx, names ...string) (bookPath, error) {
	p := bookPath{bookID: c.Params("item_book_id")}
	for _, name := range names {
		n, err := h.IntParam(c, name)
		if err != nil {
			return p, err
		}
		switch name {
		case "category_number":
			p.categoryNumber = n
		case "tab_number":
			p.tabNumber = n
		case "pos_x":
			p.posX = n
		case "pos_y":
			p.posY = n
		}
	}
	return p, nil
}

// mutation chạy một thao tác nested và trả về item book sau khi ghi
func (h *ItemBookHandler) mutation(c fiber.Ctx, operation string, names []string, run func(m requestScope, p bookPath) (*mdmodels.ItemBook, error)) error {
	return basehdl.SafeHandler(c, operation, func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		p, err := h.parsePath(c, names...)
		if err != nil {
			return err
		}
		book, err := run(requestScope{ctx: h.Context(c, q), q: q}, p)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, operation, book)
	})
}

// HandleCreate xử lý POST /item_books
func (h *ItemBookHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "create_item_book", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input mddto.ItemBookCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		book, err := h.Service.Create(h.Context(c, q), q, &input)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusCreated, "create_item_book", book)
	})
}

// HandleList xử lý GET /item_books
func (h *ItemBookHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "list_item_books", func() error {
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
		return basehdl.Paginated(c, "list_item_books", result, page.SortRaw)
	})
}

// HandleGet xử lý GET /item_books/:item_book_id?store_code=
func (h *ItemBookHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "get_item_book", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var query mddto.ItemBookQuery
		if err := c.Bind().Query(&query); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		book, err := h.Service.Get(h.Context(c, q), q, c.Params("item_book_id"), query.StoreCode)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "get_item_book", book)
	})
}

// HandleGetDetail xử lý GET /item_books/:item_book_id/detail?store_code= (bắt buộc)
func (h *ItemBookHandler) HandleGetDetail(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "get_item_book_detail", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var query mddto.ItemBookQuery
		if err := c.Bind().Query(&query); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		book, err := h.Service.GetDetail(h.Context(c, q), q, c.Params("item_book_id"), query.StoreCode)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "get_item_book_detail", book)
	})
}

// HandleUpdate xử lý PUT /item_books/:item_book_id (title, categories)
func (h *ItemBookHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "update_item_book", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		var input mddto.ItemBookUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return err
		}
		book, err := h.Service.Update(h.Context(c, q), q, c.Params("item_book_id"), &input)
		if err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "update_item_book", book)
	})
}

// HandleDelete xử lý DELETE /item_books/:item_book_id
func (h *ItemBookHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, "delete_item_book", func() error {
		q, err := h.TenantQuery(c)
		if err != nil {
			return err
		}
		if err := h.Service.Delete(h.Context(c, q), q, c.Params("item_book_id")); err != nil {
			return err
		}
		return basehdl.Success(c, common.StatusOK, "delete_item_book", nil)
	})
}

// HandleAddCategory xử lý POST /item_books/:item_book_id/categories
func (h *ItemBookHandler) HandleAddCategory(c fiber.Ctx) error {
	return h.mutation(c, "add_category", nil, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		var input mddto.CategoryInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return nil, err
		}
		return h.Service.AddCategory(m.ctx, m.q, p.bookID, input)
	})
}

// HandleUpdateCategory xử lý PUT .../categories/:category_number
func (h *ItemBookHandler) HandleUpdateCategory(c fiber.Ctx) error {
	return h.mutation(c, "update_category", []string{"category_number"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		var patch mddto.CategoryPatch
		if err := h.ParseRequestBody(c, &patch); err != nil {
			return nil, err
		}
		return h.Service.UpdateCategory(m.ctx, m.q, p.bookID, p.categoryNumber, patch)
	})
}

// HandleDeleteCategory xử lý DELETE .../categories/:category_number
func (h *ItemBookHandler) HandleDeleteCategory(c fiber.Ctx) error {
	return h.mutation(c, "delete_category", []string{"category_number"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		return h.Service.DeleteCategory(m.ctx, m.q, p.bookID, p.categoryNumber)
	})
}

// HandleAddTab xử lý POST .../categories/:category_number/tabs
func (h *ItemBookHandler) HandleAddTab(c fiber.Ctx) error {
	return h.mutation(c, "add_tab", []string{"category_number"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		var input mddto.TabInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return nil, err
		}
		return h.Service.AddTab(m.ctx, m.q, p.bookID, p.categoryNumber, input)
	})
}

// HandleUpdateTab xử lý PUT .../tabs/:tab_number
func (h *ItemBookHandler) HandleUpdateTab(c fiber.Ctx) error {
	return h.mutation(c, "update_tab", []string{"category_number", "tab_number"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		var patch mddto.TabPatch
		if err := h.ParseRequestBody(c, &patch); err != nil {
			return nil, err
		}
		return h.Service.UpdateTab(m.ctx, m.q, p.bookID, p.categoryNumber, p.tabNumber, patch)
	})
}

// HandleDeleteTab xử lý DELETE .../tabs/:tab_number
func (h *ItemBookHandler) HandleDeleteTab(c fiber.Ctx) error {
	return h.mutation(c, "delete_tab", []string{"category_number", "tab_number"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		return h.Service.DeleteTab(m.ctx, m.q, p.bookID, p.categoryNumber, p.tabNumber)
	})
}

// HandleAddButton xử lý POST .../tabs/:tab_number/buttons
func (h *ItemBookHandler) HandleAddButton(c fiber.Ctx) error {
	return h.mutation(c, "add_button", []string{"category_number", "tab_number"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		var input mddto.ButtonInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return nil, err
		}
		return h.Service.AddButton(m.ctx, m.q, p.bookID, p.categoryNumber, p.tabNumber, input)
	})
}

// HandleUpdateButton xử lý PUT .../buttons/pos_x/:pos_x/pos_y/:pos_y
func (h *ItemBookHandler) HandleUpdateButton(c fiber.Ctx) error {
	return h.mutation(c, "update_button", []string{"category_number", "tab_number", "pos_x", "pos_y"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		var patch mddto.ButtonPatch
		if err := h.ParseRequestBody(c, &patch); err != nil {
			return nil, err
		}
		return h.Service.UpdateButton(m.ctx, m.q, p.bookID, p.categoryNumber, p.tabNumber, p.posX, p.posY, patch)
	})
}

// HandleDeleteButton xử lý DELETE .../buttons/pos_x/:pos_x/pos_y/:pos_y
func (h *ItemBookHandler) HandleDeleteButton(c fiber.Ctx) error {
	return h.mutation(c, "delete_button", []string{"category_number", "tab_number", "pos_x", "pos_y"}, func(m requestScope, p bookPath) (*mdmodels.ItemBook, error) {
		return h.Service.DeleteButton(m.ctx, m.q, p.bookID, p.categoryNumber, p.tabNumber, p.posX, p.posY)
	})
}
