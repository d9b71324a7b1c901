// Package dto - DTO cho domain cart.
package dto

// CategoryDiscountResolveInput là danh sách category trong giỏ hàng cần tra giảm giá
type CategoryDiscountResolveInput struct {
	StoreCode     string   `json:"store_code" validate:"required,max=64"`
	TerminalID    string   `json:"terminal_id" validate:"required,max=64"`
	CategoryCodes []string `json:"category_codes" validate:"required,min=1,max=500,dive,required,max=64"`
}
