package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"

	"pos_commerce/config"
	basehdl "pos_commerce/internal/api/base/handler"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
)

// HeaderApiKey là header mang API key
const HeaderApiKey = "X-API-KEY"

// TenantAuth xác thực request bằng JWT (HS256, claim tenant_id) hoặc X-API-KEY
type TenantAuth struct {
	enabled bool
	secret  []byte
	apiKeys map[string]string // key → tenant
}

// NewTenantAuth tạo TenantAuth từ cấu hình
func NewTenantAuth(cfg *config.Configuration) *TenantAuth {
	return &TenantAuth{
		enabled: cfg.Auth_Enabled,
		secret:  []byte(cfg.JwtSecret),
		apiKeys: cfg.ParseApiKeys(),
	}
}

// AuthMiddleware trả về fiber.Handler xác thực tenant.
// Tenant xác thực được lưu vào Locals; so khớp với :tenant_id do handler đảm nhận.
func (a *TenantAuth) AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !a.enabled {
			return c.Next()
		}
		// Route group có thể chạy middleware nhiều lần cho cùng request
		if tenant, ok := c.Locals(basehdl.LocalsAuthTenant).(string); ok && tenant != "" {
			return c.Next()
		}

		tenant, err := a.authenticate(c)
		if err != nil {
			logger.WithRequest(c).WithError(err).Warn("[AUTH] Xác thực thất bại")
			return HandleErrorResponse(c, err)
		}
		c.Locals(basehdl.LocalsAuthTenant, tenant)
		return c.Next()
	}
}

// authenticate ưu tiên X-API-KEY, sau đó tới Authorization: Bearer <JWT>
func (a *TenantAuth) authenticate(c fiber.Ctx) (string, error) {
	if key := c.Get(HeaderApiKey); key != "" {
		tenant, ok := a.apiKeys[key]
		if !ok {
			return "", common.ErrTokenInvalid
		}
		return tenant, nil
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", common.ErrTokenInvalid
	}
	return a.ParseToken(token)
}

// ParseToken kiểm tra chữ ký HS256 và trả về claim tenant_id
func (a *TenantAuth) ParseToken(token string) (string, error) {
	if len(a.secret) == 0 {
		return "", common.ErrTokenInvalid
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.NewError(common.ErrCodeAuthToken, common.MsgTokenInvalid, common.StatusUnauthorized, err)
	}
	tenant, _ := claims["tenant_id"].(string)
	if tenant == "" {
		return "", common.NewError(common.ErrCodeAuthToken, "Token thiếu claim tenant_id", common.StatusUnauthorized, nil)
	}
	return tenant, nil
}
