package mdsvc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	basesvc "pos_commerce/internal/api/base/service"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/global"
	"pos_commerce/internal/metrics"
)

// Services gom các service master-data đã được nối với MongoDB
type Services struct {
	CategoryDiscounts *CategoryDiscountService
	StoreDiscounts    *StoreDiscountService
	ItemBooks         *ItemBookService
}

// NewServicesFromGlobal dựng Services từ registry collection và Redis (nếu có) toàn cục
func NewServicesFromGlobal(m *metrics.ItemBookMetrics) (*Services, error) {
	names := global.MongoDB_ColNames
	cols := map[string]*mongo.Collection{}
	for _, name := range []string{names.CategoryDiscounts, names.StoreDiscounts, names.ItemBooks, names.ItemCommons, names.ItemStores} {
		col, err := global.RegistryCollections.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("collection %s chưa được đăng ký: %w", name, err)
		}
		cols[name] = col
	}

	storeRepo := basesvc.NewTenantRepository[mdmodels.StoreDiscount](cols[names.StoreDiscounts], "discount_code")
	categoryRepo := basesvc.NewTenantRepository[mdmodels.CategoryDiscount](cols[names.CategoryDiscounts], "category_code")
	bookRepo := basesvc.NewTenantRepository[mdmodels.ItemBook](cols[names.ItemBooks], "item_book_id")
	itemRepo := basesvc.NewTenantRepository[mdmodels.ItemCommon](cols[names.ItemCommons], "item_code")
	itemStoreRepo := basesvc.NewTenantRepository[mdmodels.ItemStore](cols[names.ItemStores], "item_code")

	var ids ItemBookIDGenerator
	if global.Redis_Client != nil {
		ids = NewRedisIDGenerator(global.Redis_Client, 0)
	}

	return &Services{
		CategoryDiscounts: NewCategoryDiscountService(categoryRepo, storeRepo),
		StoreDiscounts:    NewStoreDiscountService(storeRepo),
		ItemBooks:         NewItemBookService(bookRepo, itemRepo, itemStoreRepo, ids, m),
	}, nil
}
