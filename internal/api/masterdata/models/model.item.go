package models

import (
	basemodels "pos_commerce/internal/api/base/models"
)

// ItemCommon là thông tin item dùng chung trong tenant (item_common). Service này chỉ đọc.
type ItemCommon struct {
	basemodels.AbstractDocument `bson:",inline"`

	ItemCode    string  `json:"item_code" bson:"item_code" index:"compound:item_common_code_unique"`
	Description string  `json:"description" bson:"description"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	// Xóa logic
	IsDeleted bool `json:"is_deleted" bson:"is_deleted"`
}

// ItemStore là giá riêng của item tại một cửa hàng (item_store). Service này chỉ đọc.
type ItemStore struct {
	basemodels.AbstractDocument `bson:",inline"`

	StoreCode  string  `json:"store_code" bson:"store_code" index:"compound:item_store_code_unique"`
	ItemCode   string  `json:"item_code" bson:"item_code" index:"compound:item_store_code_unique"`
	StorePrice float64 `json:"store_price" bson:"store_price"`
}
