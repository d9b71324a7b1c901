package mdsvc

import (
	"context"
	"errors"
	"time"

	basemodels "pos_commerce/internal/api/base/models"
	basesvc "pos_commerce/internal/api/base/service"
	mddto "pos_commerce/internal/api/masterdata/dto"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
	"pos_commerce/internal/metrics"
)

const (
	resourceItemBook = "item_book"

	// itemNotFoundDescription là description gán cho button khi item không tồn tại
	itemNotFoundDescription = "not found"

	// createIDAttempts là số lần thử lại khi id sinh ra bị trùng
	createIDAttempts = 5
)

// ItemBookService quản lý item book và cây category → tab → button
type ItemBookService struct {
	books   basesvc.TenantStore[mdmodels.ItemBook]
	items   basesvc.TenantStore[mdmodels.ItemCommon]
	stores  basesvc.TenantStore[mdmodels.ItemStore]
	ids     ItemBookIDGenerator
	metrics *metrics.ItemBookMetrics
	now     func() time.Time
}

// NewItemBookService tạo ItemBookService. ids nil thì dùng ProbeIDGenerator.
func NewItemBookService(
	books basesvc.TenantStore[mdmodels.ItemBook],
	items basesvc.TenantStore[mdmodels.ItemCommon],
	stores basesvc.TenantStore[mdmodels.ItemStore],
	ids ItemBookIDGenerator,
	m *metrics.ItemBookMetrics,
) *ItemBookService {
	if ids == nil {
		ids = NewProbeIDGenerator(books)
	}
	return &ItemBookService{
		books:   books,
		items:   items,
		stores:  stores,
		ids:     ids,
		metrics: m,
		now:     time.Now,
	}
}

// Create tạo item book mới với id YYYYMMDD-NNNN
func (s *ItemBookService) Create(ctx context.Context, q basesvc.TenantQuery, input *mddto.ItemBookCreateInput) (*mdmodels.ItemBook, error) {
	categories := mddto.CategoriesToModel(input.Categories)
	if err := ValidateCategories(categories); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < createIDAttempts; attempt++ {
		id, err := s.ids.Next(ctx, q, s.now())
		if err != nil {
			return nil, err
		}
		book := &mdmodels.ItemBook{ItemBookID: id, Title: input.Title, Categories: categories}
		err = s.books.Create(ctx, q, book)
		if err == nil {
			s.metrics.ObserveMutation("create", nil)
			logger.LogAction(ctx, "item_book_create", q.TenantID(), resourceItemBook, id, nil)
			return book, nil
		}
		if !errors.Is(err, common.ErrAlreadyExists) {
			s.metrics.ObserveMutation("create", err)
			return nil, err
		}
		logger.WithContext(ctx).WithField("item_book_id", id).Warn("item_book_id đã tồn tại, thử sinh id khác")
		lastErr = err
	}
	s.metrics.ObserveMutation("create", lastErr)
	return nil, lastErr
}

func (s *ItemBookService) load(ctx context.Context, q basesvc.TenantQuery, id string) (*mdmodels.ItemBook, error) {
	book, err := s.books.GetByCode(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, common.NotFoundf("item book %s không tồn tại", id)
	}
	return book, nil
}

// Get trả về item book; có storeCode thì điền giá và mô tả cho button
func (s *ItemBookService) Get(ctx context.Context, q basesvc.TenantQuery, id, storeCode string) (*mdmodels.ItemBook, error) {
	book, err := s.load(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if storeCode == "" {
		return book, nil
	}
	if err := s.enrich(ctx, q, book, storeCode); err != nil {
		return nil, err
	}
	return book, nil
}

// GetDetail trả về item book đã điền giá theo cửa hàng
func (s *ItemBookService) GetDetail(ctx context.Context, q basesvc.TenantQuery, id, storeCode string) (*mdmodels.ItemBook, error) {
	if storeCode == "" {
		return nil, common.InvalidRequestf("store_code là bắt buộc")
	}
	return s.Get(ctx, q, id, storeCode)
}

// List trả về danh sách item book theo trang
func (s *ItemBookService) List(ctx context.Context, q basesvc.TenantQuery, page, limit int64, sort []basemodels.SortField) (*basemodels.PaginateResult[mdmodels.ItemBook], error) {
	return s.books.List(ctx, q, page, limit, sort)
}

// Update đổi title hoặc thay toàn bộ categories
func (s *ItemBookService) Update(ctx context.Context, q basesvc.TenantQuery, id string, input *mddto.ItemBookUpdateInput) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "update", func(book *mdmodels.ItemBook) error {
		if input.Title != nil {
			book.Title = *input.Title
		}
		if input.Categories != nil {
			categories := mddto.CategoriesToModel(*input.Categories)
			if err := ValidateCategories(categories); err != nil {
				return err
			}
			book.Categories = categories
		}
		return nil
	})
}

// Delete xóa item book cùng toàn bộ cây
func (s *ItemBookService) Delete(ctx context.Context, q basesvc.TenantQuery, id string) error {
	err := s.books.Delete(ctx, q, id)
	s.metrics.ObserveMutation("delete", err)
	if err != nil {
		return err
	}
	logger.LogAction(ctx, "item_book_delete", q.TenantID(), resourceItemBook, id, nil)
	return nil
}

// AddCategory thêm category vào item book
func (s *ItemBookService) AddCategory(ctx context.Context, q basesvc.TenantQuery, id string, input mddto.CategoryInput) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "add_category", func(book *mdmodels.ItemBook) error {
		return AddCategory(book, input.ToModel())
	})
}

// UpdateCategory sửa category theo category_number
func (s *ItemBookService) UpdateCategory(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber int, patch mddto.CategoryPatch) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "update_category", func(book *mdmodels.ItemBook) error {
		return UpdateCategory(book, categoryNumber, patch)
	})
}

// DeleteCategory xóa category theo category_number
func (s *ItemBookService) DeleteCategory(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber int) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "delete_category", func(book *mdmodels.ItemBook) error {
		return DeleteCategory(book, categoryNumber)
	})
}

// AddTab thêm tab vào category
func (s *ItemBookService) AddTab(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber int, input mddto.TabInput) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "add_tab", func(book *mdmodels.ItemBook) error {
		return AddTab(book, categoryNumber, input.ToModel())
	})
}

// UpdateTab sửa tab theo (category_number, tab_number)
func (s *ItemBookService) UpdateTab(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber, tabNumber int, patch mddto.TabPatch) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "update_tab", func(book *mdmodels.ItemBook) error {
		return UpdateTab(book, categoryNumber, tabNumber, patch)
	})
}

// DeleteTab xóa tab theo (category_number, tab_number)
func (s *ItemBookService) DeleteTab(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber, tabNumber int) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "delete_tab", func(book *mdmodels.ItemBook) error {
		return DeleteTab(book, categoryNumber, tabNumber)
	})
}

// AddButton thêm button vào tab
func (s *ItemBookService) AddButton(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber, tabNumber int, input mddto.ButtonInput) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "add_button", func(book *mdmodels.ItemBook) error {
		return AddButton(book, categoryNumber, tabNumber, input.ToModel())
	})
}

// UpdateButton sửa button tại (pos_x, pos_y)
func (s *ItemBookService) UpdateButton(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber, tabNumber, x, y int, patch mddto.ButtonPatch) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "update_button", func(book *mdmodels.ItemBook) error {
		return UpdateButton(book, categoryNumber, tabNumber, x, y, patch)
	})
}

// DeleteButton xóa button tại (pos_x, pos_y)
func (s *ItemBookService) DeleteButton(ctx context.Context, q basesvc.TenantQuery, id string, categoryNumber, tabNumber, x, y int) (*mdmodels.ItemBook, error) {
	return s.mutate(ctx, q, id, "delete_button", func(book *mdmodels.ItemBook) error {
		return DeleteButton(book, categoryNumber, tabNumber, x, y)
	})
}

// mutate: load → clone → sửa → replace theo version. Lỗi ở bất kỳ bước nào thì không ghi gì.
func (s *ItemBookService) mutate(ctx context.Context, q basesvc.TenantQuery, id, operation string, apply func(*mdmodels.ItemBook) error) (*mdmodels.ItemBook, error) {
	book, err := s.load(ctx, q, id)
	if err != nil {
		s.metrics.ObserveMutation(operation, err)
		return nil, err
	}

	draft := book.Clone()
	if err := apply(draft); err != nil {
		s.metrics.ObserveMutation(operation, err)
		logger.WithContext(ctx).WithError(err).WithField("item_book_id", id).Debug("item book mutation rejected")
		return nil, err
	}

	saved, err := s.books.Replace(ctx, q, id, draft, book.Version)
	s.metrics.ObserveMutation(operation, err)
	if err != nil {
		return nil, err
	}
	logger.LogAction(ctx, "item_book_"+operation, q.TenantID(), resourceItemBook, id, map[string]any{"version": saved.Version})
	return saved, nil
}

// enrich điền description và unit_price cho mọi button từ item_common,
// giá item_store của storeCode (nếu có) ghi đè unit_price
func (s *ItemBookService) enrich(ctx context.Context, q basesvc.TenantQuery, book *mdmodels.ItemBook, storeCode string) error {
	codes := buttonItemCodes(book)
	if len(codes) == 0 {
		return nil
	}

	commons, err := s.items.FindAll(ctx, q.WhereIn("item_code", codes))
	if err != nil {
		return err
	}
	commonByCode := make(map[string]mdmodels.ItemCommon, len(commons))
	for _, item := range commons {
		if item.IsDeleted {
			continue
		}
		commonByCode[item.ItemCode] = item
	}

	storePrices := map[string]float64{}
	if storeCode != "" {
		stores, err := s.stores.FindAll(ctx, q.Where("store_code", storeCode).WhereIn("item_code", codes))
		if err != nil {
			return err
		}
		for _, st := range stores {
			storePrices[st.ItemCode] = st.StorePrice
		}
	}

	for ci := range book.Categories {
		for ti := range book.Categories[ci].Tabs {
			buttons := book.Categories[ci].Tabs[ti].Buttons
			for bi := range buttons {
				b := &buttons[bi]
				item, ok := commonByCode[b.ItemCode]
				if !ok {
					logger.WithContext(ctx).WithField("item_code", b.ItemCode).Warn("item không tồn tại khi điền giá item book")
					b.Description = itemNotFoundDescription
					b.UnitPrice = nil
					continue
				}
				price := item.UnitPrice
				if sp, ok := storePrices[b.ItemCode]; ok {
					price = sp
				}
				b.Description = item.Description
				b.UnitPrice = &price
			}
		}
	}
	return nil
}

func buttonItemCodes(book *mdmodels.ItemBook) []string {
	seen := map[string]bool{}
	codes := []string{}
	for _, c := range book.Categories {
		for _, t := range c.Tabs {
			for _, b := range t.Buttons {
				if b.ItemCode == "" || seen[b.ItemCode] {
					continue
				}
				seen[b.ItemCode] = true
				codes = append(codes, b.ItemCode)
			}
		}
	}
	return codes
}
