// Package dto - DTO cho domain master-data (giảm giá, item book).
package dto

import (
	"go.mongodb.org/mongo-driver/bson"
)

// CategoryDiscountCreateInput dữ liệu tạo giảm giá theo category
type CategoryDiscountCreateInput struct {
	CategoryCode     string `json:"category_code" validate:"required,max=64"`
	StoreCode        string `json:"store_code,omitempty" validate:"max=64"`
	DiscountCode     string `json:"discount_code" validate:"required,max=64"`
	Description      string `json:"description,omitempty" validate:"max=256,no_xss"`
	DescriptionShort string `json:"description_short,omitempty" validate:"max=64,no_xss"`
}

// CategoryDiscountUpdateInput là patch: chỉ field khác nil được ghi
type CategoryDiscountUpdateInput struct {
	StoreCode        *string `json:"store_code,omitempty" validate:"omitempty,max=64"`
	DiscountCode     *string `json:"discount_code,omitempty" validate:"omitempty,min=1,max=64"`
	Description      *string `json:"description,omitempty" validate:"omitempty,max=256,no_xss"`
	DescriptionShort *string `json:"description_short,omitempty" validate:"omitempty,max=64,no_xss"`
}

// ToSet chuyển patch sang $set
func (in *CategoryDiscountUpdateInput) ToSet() bson.M {
	set := bson.M{}
	if in.StoreCode != nil {
		set["store_code"] = *in.StoreCode
	}
	if in.DiscountCode != nil {
		set["discount_code"] = *in.DiscountCode
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.DescriptionShort != nil {
		set["description_short"] = *in.DescriptionShort
	}
	return set
}

// StoreDiscountCreateInput dữ liệu tạo giảm giá cửa hàng
type StoreDiscountCreateInput struct {
	DiscountCode  string   `json:"discount_code" validate:"required,max=64"`
	StoreCode     string   `json:"store_code,omitempty" validate:"max=64"`
	DiscountValue *float64 `json:"discount_value" validate:"required,discount_value"`
	Description   string   `json:"description,omitempty" validate:"max=256,no_xss"`
}

// StoreDiscountUpdateInput là patch cho giảm giá cửa hàng
type StoreDiscountUpdateInput struct {
	StoreCode     *string  `json:"store_code,omitempty" validate:"omitempty,max=64"`
	DiscountValue *float64 `json:"discount_value,omitempty" validate:"omitempty,discount_value"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=256,no_xss"`
}

// ToSet chuyển patch sang $set
func (in *StoreDiscountUpdateInput) ToSet() bson.M {
	set := bson.M{}
	if in.StoreCode != nil {
		set["store_code"] = *in.StoreCode
	}
	if in.DiscountValue != nil {
		set["discount_value"] = *in.DiscountValue
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	return set
}

// CategoryDiscountDetailQuery là query của GET .../detail
type CategoryDiscountDetailQuery struct {
	TerminalID string `query:"terminal_id"`
}
