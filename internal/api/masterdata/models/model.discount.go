// Package models chứa document master-data: giảm giá theo category, giảm giá theo cửa hàng,
// item book và thông tin item.
package models

import (
	basemodels "pos_commerce/internal/api/base/models"
)

// CategoryDiscount lưu giảm giá gắn với một category (category_discounts).
// Khóa tự nhiên: (tenant_id, category_code).
type CategoryDiscount struct {
	basemodels.AbstractDocument `bson:",inline"`

	CategoryCode     string `json:"category_code" bson:"category_code" index:"compound:category_discount_code_unique"`
	StoreCode        string `json:"store_code,omitempty" bson:"store_code,omitempty"`
	DiscountCode     string `json:"discount_code" bson:"discount_code" index:"single:1"`
	Description      string `json:"description,omitempty" bson:"description,omitempty"`
	DescriptionShort string `json:"description_short,omitempty" bson:"description_short,omitempty"`
}

// StoreDiscount lưu tỷ lệ giảm giá (store_discounts).
// Khóa tự nhiên: (tenant_id, discount_code). DiscountValue nằm trong [0, 100].
type StoreDiscount struct {
	basemodels.AbstractDocument `bson:",inline"`

	DiscountCode  string  `json:"discount_code" bson:"discount_code" index:"compound:store_discount_code_unique"`
	StoreCode     string  `json:"store_code,omitempty" bson:"store_code,omitempty"`
	DiscountValue float64 `json:"discount_value" bson:"discount_value"`
	Description   string  `json:"description,omitempty" bson:"description,omitempty"`
}

// CategoryDiscountDetail là CategoryDiscount kèm discount_value của StoreDiscount tham chiếu.
// Chỉ dựng khi đọc, không lưu.
type CategoryDiscountDetail struct {
	TenantID         string  `json:"tenant_id"`
	CategoryCode     string  `json:"category_code"`
	StoreCode        string  `json:"store_code,omitempty"`
	DiscountCode     string  `json:"discount_code"`
	Description      string  `json:"description,omitempty"`
	DescriptionShort string  `json:"description_short,omitempty"`
	DiscountValue    float64 `json:"discount_value"`
}
