// Package cartsvc chứa service phía cart: lấy giảm giá theo category từ master-data.
package cartsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	cartmodels "pos_commerce/internal/api/cart/models"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
	"pos_commerce/internal/metrics"
)

// HeaderApiKey là header mang API key khi gọi master-data
const HeaderApiKey = "X-API-KEY"

// WebClientConfig là cấu hình kết nối master-data, dùng chung cho mọi request
type WebClientConfig struct {
	BaseURL string
	ApiKey  string
	Timeout time.Duration
	Client  *fasthttp.Client
	Metrics *metrics.CartMetrics
}

// CategoryDiscountWebRepository gọi master-data để lấy category discount detail.
// Mỗi request tạo một instance riêng; cache chỉ sống trong request đó và không cần khóa.
type CategoryDiscountWebRepository struct {
	cfg        WebClientConfig
	tenantID   string
	terminalID string
	apiKey     string
	// nil trong cache là category không có giảm giá
	cache map[string]*cartmodels.CategoryDiscountDetail
}

// NewCategoryDiscountWebRepository tạo repository cho một request. apiKey rỗng thì dùng key cấu hình.
func NewCategoryDiscountWebRepository(cfg WebClientConfig, tenantID, terminalID, apiKey string) *CategoryDiscountWebRepository {
	if cfg.Client == nil {
		cfg.Client = &fasthttp.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if apiKey == "" {
		apiKey = cfg.ApiKey
	}
	return &CategoryDiscountWebRepository{
		cfg:        cfg,
		tenantID:   tenantID,
		terminalID: terminalID,
		apiKey:     apiKey,
		cache:      make(map[string]*cartmodels.CategoryDiscountDetail),
	}
}

// GetDetail trả về detail của categoryCode, nil khi category không có giảm giá.
// Kết quả (kể cả nil) được cache trong phạm vi repository.
func (r *CategoryDiscountWebRepository) GetDetail(ctx context.Context, categoryCode string) (*cartmodels.CategoryDiscountDetail, error) {
	if detail, ok := r.cache[categoryCode]; ok {
		r.cfg.Metrics.IncHit()
		logger.WithContext(ctx).WithField("category_code", categoryCode).Debug("category discount detail lấy từ cache")
		return detail, nil
	}
	r.cfg.Metrics.IncMiss()

	detail, err := r.fetch(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	r.cache[categoryCode] = detail
	return detail, nil
}

// CacheSize là số category đã được cache
func (r *CategoryDiscountWebRepository) CacheSize() int {
	return len(r.cache)
}

func (r *CategoryDiscountWebRepository) detailURL(categoryCode string) string {
	return fmt.Sprintf("%s/api/v1/tenants/%s/category_discounts/%s/detail?terminal_id=%s",
		strings.TrimRight(r.cfg.BaseURL, "/"),
		url.PathEscape(r.tenantID),
		url.PathEscape(categoryCode),
		url.QueryEscape(r.terminalID),
	)
}

func (r *CategoryDiscountWebRepository) fetch(ctx context.Context, categoryCode string) (*cartmodels.CategoryDiscountDetail, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.detailURL(categoryCode))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set(HeaderApiKey, r.apiKey)
	}
	if rid, ok := ctx.Value(logger.RequestIDKey).(string); ok && rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	// DoDeadline không theo dõi ctx, request đã hủy thì không gọi nữa
	if err := ctx.Err(); err != nil {
		return nil, common.UpstreamError(fmt.Sprintf("request đã hủy trước khi gọi master-data cho category %s", categoryCode), err)
	}
	deadline := time.Now().Add(r.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := r.cfg.Client.DoDeadline(req, resp, deadline); err != nil {
		return nil, common.UpstreamError(fmt.Sprintf("lỗi khi gọi master-data cho category %s", categoryCode), err)
	}

	status := resp.StatusCode()
	log := logger.WithContext(ctx).WithFields(map[string]any{"category_code": categoryCode, "status": status})
	switch {
	case status == fasthttp.StatusNotFound:
		log.Warn("master-data trả về 404 cho category discount detail")
		return nil, common.NotFoundf("category discount detail không tồn tại cho category %s", categoryCode)
	case status != fasthttp.StatusOK:
		log.Error("master-data trả về lỗi")
		return nil, common.UpstreamError(fmt.Sprintf("master-data trả về status %d cho category %s", status, categoryCode), nil)
	}

	var env cartmodels.MasterDataEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, common.UpstreamError("không đọc được response của master-data", err)
	}
	if env.Data == nil {
		log.Debug("category không có giảm giá")
	}
	return env.Data, nil
}
