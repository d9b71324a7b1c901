package cartsvc

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"pos_commerce/config"
	cartdto "pos_commerce/internal/api/cart/dto"
	cartmodels "pos_commerce/internal/api/cart/models"
	"pos_commerce/internal/logger"
	"pos_commerce/internal/metrics"
)

// CartDiscountService tra giảm giá theo category cho giỏ hàng qua master-data
type CartDiscountService struct {
	cfg WebClientConfig
}

// NewCartDiscountService tạo CartDiscountService, fasthttp.Client được dùng chung giữa các request
func NewCartDiscountService(cfg WebClientConfig) *CartDiscountService {
	if cfg.Client == nil {
		cfg.Client = &fasthttp.Client{
			Name:                "pos-cart",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}
	return &CartDiscountService{cfg: cfg}
}

// NewCartDiscountServiceFromConfig đọc base URL, API key và timeout từ cấu hình
func NewCartDiscountServiceFromConfig(c *config.Configuration, m *metrics.CartMetrics) *CartDiscountService {
	return NewCartDiscountService(WebClientConfig{
		BaseURL: c.MasterData_BaseURL,
		ApiKey:  c.MasterData_ApiKey,
		Timeout: time.Duration(c.HttpClient_Timeout) * time.Second,
		Metrics: m,
	})
}

// Resolve tra giảm giá cho từng category theo thứ tự đầu vào.
// Một repository cho cả request nên category lặp lại chỉ gọi master-data một lần.
// Lỗi của bất kỳ category nào làm hỏng cả request.
func (s *CartDiscountService) Resolve(ctx context.Context, tenantID string, in *cartdto.CategoryDiscountResolveInput, apiKey string) ([]cartmodels.CartCategoryDiscount, error) {
	repo := NewCategoryDiscountWebRepository(s.cfg, tenantID, in.TerminalID, apiKey)

	result := make([]cartmodels.CartCategoryDiscount, 0, len(in.CategoryCodes))
	for _, code := range in.CategoryCodes {
		detail, err := repo.GetDetail(ctx, code)
		if err != nil {
			return nil, err
		}
		item := cartmodels.CartCategoryDiscount{CategoryCode: code}
		if detail != nil {
			item.Found = true
			item.DiscountCode = detail.DiscountCode
			item.DiscountValue = detail.DiscountValue
			item.DescriptionShort = detail.DescriptionShort
		}
		result = append(result, item)
	}

	logger.WithContext(ctx).WithFields(map[string]any{
		"store_code":  in.StoreCode,
		"terminal_id": in.TerminalID,
		"categories":  len(in.CategoryCodes),
		"fetched":     repo.CacheSize(),
	}).Debug("đã tra giảm giá category cho giỏ hàng")
	return result, nil
}
