package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context
	RequestIDKey ContextKey = "requestID"
	// TenantIDKey là key cho tenant trong context
	TenantIDKey ContextKey = "tenantID"
)

// WithContext trả về logger entry kèm request_id và tenant_id từ context
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if ctx == nil {
		return entry
	}
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}
	if tenantID := ctx.Value(TenantIDKey); tenantID != nil {
		entry = entry.WithField("tenant_id", tenantID)
	}
	return entry
}

// ContextFromRequest tạo context cho tầng service, mang request_id và tenant_id của request
func ContextFromRequest(c fiber.Ctx, tenantID string) context.Context {
	ctx := context.WithValue(c.Context(), RequestIDKey, requestID(c))
	if tenantID != "" {
		ctx = context.WithValue(ctx, TenantIDKey, tenantID)
	}
	return ctx
}

// WithRequest trả về logger entry với request context từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return requestEntry(GetAppLogger(), c)
}

// WithRequestError giống WithRequest nhưng ghi vào error logger, dùng cho lỗi 5xx
func WithRequestError(c fiber.Ctx) *logrus.Entry {
	return requestEntry(GetErrorLogger(), c)
}

func requestEntry(l *logrus.Logger, c fiber.Ctx) *logrus.Entry {
	entry := l.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
	if rid := requestID(c); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	if tenantID := c.Params("tenant_id"); tenantID != "" {
		entry = entry.WithField("tenant_id", tenantID)
	}
	return entry
}

// requestID lấy request ID từ Locals (requestid middleware) hoặc header
func requestID(c fiber.Ctx) string {
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		return rid
	}
	if rid := c.Get("X-Request-ID"); rid != "" {
		return rid
	}
	return c.GetRespHeader("X-Request-ID")
}

// WithModule trả về logger entry với module name
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithError trả về logger entry với error
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}
