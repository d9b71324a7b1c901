// Package metrics khai báo các Prometheus metric của service.
// Mọi method đều an toàn khi receiver nil (metric tắt).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics đếm request và đo thời gian xử lý theo route
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics đăng ký metric HTTP trên reg
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe ghi nhận một request đã xử lý xong
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ItemBookMetrics đếm các thao tác sửa item book theo kết quả
type ItemBookMetrics struct {
	mutations *prometheus.CounterVec
}

// NewItemBookMetrics đăng ký metric item book trên reg
func NewItemBookMetrics(reg prometheus.Registerer) *ItemBookMetrics {
	if reg == nil {
		return &ItemBookMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "item_book_mutations_total",
		Help: "Item book mutations by operation and result.",
	}, []string{"operation", "result"})
	reg.MustRegister(mutations)
	return &ItemBookMetrics{mutations: mutations}
}

// ObserveMutation ghi nhận một thao tác, err == nil là "ok"
func (m *ItemBookMetrics) ObserveMutation(operation string, err error) {
	if m == nil || m.mutations == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutations.WithLabelValues(normalizeLabel(operation), result).Inc()
}

// CartMetrics đếm cache hit/miss của web repository phía cart
type CartMetrics struct {
	lookups *prometheus.CounterVec
}

// NewCartMetrics đăng ký metric cart trên reg
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_category_discount_lookups_total",
		Help: "Category discount lookups from the cart by cache result.",
	}, []string{"result"})
	reg.MustRegister(lookups)
	return &CartMetrics{lookups: lookups}
}

// IncHit tăng bộ đếm cache hit
func (m *CartMetrics) IncHit() {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues("hit").Inc()
}

// IncMiss tăng bộ đếm cache miss (phải gọi master-data)
func (m *CartMetrics) IncMiss() {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
