package mdsvc

import (
	"context"

	"github.com/shopspring/decimal"

	basemodels "pos_commerce/internal/api/base/models"
	basesvc "pos_commerce/internal/api/base/service"
	mddto "pos_commerce/internal/api/masterdata/dto"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/common"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

// normalizeDiscountValue kiểm tra khoảng [0, 100] và làm tròn 2 chữ số
func normalizeDiscountValue(v float64) (float64, error) {
	if !global.ValidDiscountValue(v) {
		return 0, common.InvalidRequestf("discount_value %v phải nằm trong [0, 100] với tối đa 2 chữ số thập phân", v)
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64(), nil
}

// StoreDiscountService CRUD giảm giá cửa hàng
type StoreDiscountService struct {
	crud masterCRUD[mdmodels.StoreDiscount]
}

// NewStoreDiscountService tạo StoreDiscountService
func NewStoreDiscountService(repo basesvc.TenantStore[mdmodels.StoreDiscount]) *StoreDiscountService {
	return &StoreDiscountService{crud: masterCRUD[mdmodels.StoreDiscount]{repo: repo, resource: "store_discount", keyName: "discount_code"}}
}

// Create tạo giảm giá cửa hàng, lỗi AlreadyExists khi discount_code đã có
func (s *StoreDiscountService) Create(ctx context.Context, q basesvc.TenantQuery, input *mddto.StoreDiscountCreateInput) (*mdmodels.StoreDiscount, error) {
	if input.DiscountValue == nil {
		return nil, common.InvalidRequestf("discount_value là bắt buộc")
	}
	value, err := normalizeDiscountValue(*input.DiscountValue)
	if err != nil {
		return nil, err
	}
	doc := &mdmodels.StoreDiscount{
		DiscountCode:  input.DiscountCode,
		StoreCode:     input.StoreCode,
		DiscountValue: value,
		Description:   input.Description,
	}
	return s.crud.create(ctx, q, input.DiscountCode, doc)
}

// Get trả về giảm giá theo discount_code
func (s *StoreDiscountService) Get(ctx context.Context, q basesvc.TenantQuery, code string) (*mdmodels.StoreDiscount, error) {
	return s.crud.get(ctx, q, code)
}

// List trả về danh sách theo trang
func (s *StoreDiscountService) List(ctx context.Context, q basesvc.TenantQuery, page, limit int64, sort []basemodels.SortField) (*basemodels.PaginateResult[mdmodels.StoreDiscount], error) {
	return s.crud.list(ctx, q, page, limit, sort)
}

// Update ghi các field của patch
func (s *StoreDiscountService) Update(ctx context.Context, q basesvc.TenantQuery, code string, input *mddto.StoreDiscountUpdateInput) (*mdmodels.StoreDiscount, error) {
	if input.DiscountValue != nil {
		value, err := normalizeDiscountValue(*input.DiscountValue)
		if err != nil {
			return nil, err
		}
		input.DiscountValue = &value
	}
	return s.crud.update(ctx, q, code, input.ToSet())
}

// Delete xóa giảm giá cửa hàng
func (s *StoreDiscountService) Delete(ctx context.Context, q basesvc.TenantQuery, code string) error {
	return s.crud.delete(ctx, q, code)
}

// CategoryDiscountService CRUD giảm giá theo category và ghép detail
type CategoryDiscountService struct {
	crud   masterCRUD[mdmodels.CategoryDiscount]
	stores basesvc.TenantStore[mdmodels.StoreDiscount]
}

// NewCategoryDiscountService tạo CategoryDiscountService
func NewCategoryDiscountService(categories basesvc.TenantStore[mdmodels.CategoryDiscount], stores basesvc.TenantStore[mdmodels.StoreDiscount]) *CategoryDiscountService {
	return &CategoryDiscountService{
		crud:   masterCRUD[mdmodels.CategoryDiscount]{repo: categories, resource: "category_discount", keyName: "category_code"},
		stores: stores,
	}
}

// Create tạo giảm giá theo category
func (s *CategoryDiscountService) Create(ctx context.Context, q basesvc.TenantQuery, input *mddto.CategoryDiscountCreateInput) (*mdmodels.CategoryDiscount, error) {
	doc := &mdmodels.CategoryDiscount{
		CategoryCode:     input.CategoryCode,
		StoreCode:        input.StoreCode,
		DiscountCode:     input.DiscountCode,
		Description:      input.Description,
		DescriptionShort: input.DescriptionShort,
	}
	return s.crud.create(ctx, q, input.CategoryCode, doc)
}

// Get trả về giảm giá theo category_code
func (s *CategoryDiscountService) Get(ctx context.Context, q basesvc.TenantQuery, code string) (*mdmodels.CategoryDiscount, error) {
	return s.crud.get(ctx, q, code)
}

// List trả về danh sách theo trang
func (s *CategoryDiscountService) List(ctx context.Context, q basesvc.TenantQuery, page, limit int64, sort []basemodels.SortField) (*basemodels.PaginateResult[mdmodels.CategoryDiscount], error) {
	return s.crud.list(ctx, q, page, limit, sort)
}

// Update ghi các field của patch
func (s *CategoryDiscountService) Update(ctx context.Context, q basesvc.TenantQuery, code string, input *mddto.CategoryDiscountUpdateInput) (*mdmodels.CategoryDiscount, error) {
	return s.crud.update(ctx, q, code, input.ToSet())
}

// Delete xóa giảm giá theo category
func (s *CategoryDiscountService) Delete(ctx context.Context, q basesvc.TenantQuery, code string) error {
	return s.crud.delete(ctx, q, code)
}

// GetDetail ghép CategoryDiscount với discount_value của StoreDiscount.
// Không có category discount: (nil, nil). Có nhưng thiếu store discount: NotFound.
func (s *CategoryDiscountService) GetDetail(ctx context.Context, q basesvc.TenantQuery, code string) (*mdmodels.CategoryDiscountDetail, error) {
	category, err := s.crud.repo.GetByCode(ctx, q, code)
	if err != nil {
		return nil, err
	}
	if category == nil {
		logger.WithContext(ctx).WithField("category_code", code).Warn("category discount không tồn tại, trả về detail rỗng")
		return nil, nil
	}

	detail := &mdmodels.CategoryDiscountDetail{
		TenantID:         category.TenantID,
		CategoryCode:     category.CategoryCode,
		StoreCode:        category.StoreCode,
		DiscountCode:     category.DiscountCode,
		Description:      category.Description,
		DescriptionShort: category.DescriptionShort,
	}

	store, err := s.stores.GetByCode(ctx, q, category.DiscountCode)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, common.NotFoundf("store discount với discount_code=%s (category %s) không tồn tại", category.DiscountCode, code)
	}
	detail.DiscountValue = store.DiscountValue
	return detail, nil
}
