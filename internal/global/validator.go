package global

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	mdmodels "pos_commerce/internal/api/masterdata/models"
)

var (
	discountValueMin = decimal.NewFromInt(0)
	discountValueMax = decimal.NewFromInt(100)
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("discount_value", validateDiscountValue)
	_ = Validate.RegisterValidation("button_size", validateButtonSize)
}

// ValidDiscountValue kiểm tra giá trị giảm giá nằm trong [0, 100] và tối đa 2 chữ số thập phân
func ValidDiscountValue(v float64) bool {
	d := decimal.NewFromFloat(v)
	if d.LessThan(discountValueMin) || d.GreaterThan(discountValueMax) {
		return false
	}
	return d.Equal(d.Round(2))
}

// validateDiscountValue áp dụng ValidDiscountValue cho field float hoặc *float
func validateDiscountValue(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return ValidDiscountValue(field.Float())
	}
	return false
}

// validateButtonSize chỉ chấp nhận các ButtonSize đã định nghĩa
func validateButtonSize(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return mdmodels.ButtonSize(fl.Field().String()).Valid()
}

// validateNoXSS kiểm tra XSS trong các trường mô tả hiển thị trên POS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
