// Package models chứa các kiểu dữ liệu phía cart.
package models

// CategoryDiscountDetail là detail nhận về từ master-data
type CategoryDiscountDetail struct {
	TenantID         string  `json:"tenant_id"`
	CategoryCode     string  `json:"category_code"`
	StoreCode        string  `json:"store_code,omitempty"`
	DiscountCode     string  `json:"discount_code"`
	Description      string  `json:"description,omitempty"`
	DescriptionShort string  `json:"description_short,omitempty"`
	DiscountValue    float64 `json:"discount_value"`
}

// CartCategoryDiscount là kết quả áp giảm giá cho một category trong giỏ hàng.
// Found = false khi category không có giảm giá.
type CartCategoryDiscount struct {
	CategoryCode     string  `json:"category_code"`
	Found            bool    `json:"found"`
	DiscountCode     string  `json:"discount_code,omitempty"`
	DiscountValue    float64 `json:"discount_value"`
	DescriptionShort string  `json:"description_short,omitempty"`
}

// MasterDataEnvelope là envelope của response master-data
type MasterDataEnvelope struct {
	Success bool                    `json:"success"`
	Code    int                     `json:"code"`
	Message string                  `json:"message"`
	Data    *CategoryDiscountDetail `json:"data"`
}
