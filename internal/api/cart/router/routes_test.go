package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_commerce/config"
	basehdl "pos_commerce/internal/api/base/handler"
	carthdl "pos_commerce/internal/api/cart/handler"
	cartmodels "pos_commerce/internal/api/cart/models"
	cartsvc "pos_commerce/internal/api/cart/service"
	"pos_commerce/internal/api/middleware"
	apirouter "pos_commerce/internal/api/router"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "error", Format: "text", Output: "stdout", BufferSize: 64})
	global.InitValidator()
	code := m.Run()
	logger.Shutdown()
	os.Exit(code)
}

type envelope struct {
	Success   bool            `json:"success"`
	Code      int             `json:"code"`
	Data      json.RawMessage `json:"data"`
	Operation string          `json:"operation"`
	ErrorCode string          `json:"error_code"`
}

func newCartApp(t *testing.T, upstream http.HandlerFunc) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	auth := middleware.NewTenantAuth(&config.Configuration{Auth_Enabled: true, JwtSecret: "s", ApiKeys: "T1:key-t1"})
	r := apirouter.NewRouter(app, auth.AuthMiddleware())
	svc := cartsvc.NewCartDiscountService(cartsvc.WebClientConfig{BaseURL: srv.URL})
	register := func(v1 fiber.Router, r *apirouter.Router) error {
		RegisterHandlers(r.Tenants(v1), carthdl.NewCartHandler(basehdl.NewBaseHandler(0, 0), svc))
		return nil
	}
	require.NoError(t, apirouter.SetupRoutes(r, register))
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/T1/cart/category_discounts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderApiKey, "key-t1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func TestResolveCartCategoryDiscounts(t *testing.T) {
	var calls atomic.Int32
	var forwardedKey atomic.Value
	app := newCartApp(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		forwardedKey.Store(r.Header.Get(middleware.HeaderApiKey))
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/category_discounts/C2/") {
			_, _ = w.Write([]byte(`{"success":true,"code":200,"data":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"code":200,"data":{"category_code":"C1","discount_code":"D1","discount_value":10}}`))
	})

	status, env := post(t, app, `{"store_code":"S1","terminal_id":"TM1","category_codes":["C1","C2","C1"]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "resolve_cart_category_discounts", env.Operation)

	var got []cartmodels.CartCategoryDiscount
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 3)
	assert.True(t, got[0].Found)
	assert.Equal(t, 10.0, got[0].DiscountValue)
	assert.False(t, got[1].Found)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "key-t1", forwardedKey.Load())
}

func TestResolveCartCategoryDiscountsErrors(t *testing.T) {
	app := newCartApp(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/category_discounts/MISSING/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	status, env := post(t, app, `{"store_code":"S1","terminal_id":"TM1","category_codes":["MISSING"]}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "RES_001", env.ErrorCode)

	status, env = post(t, app, `{"store_code":"S1","terminal_id":"TM1","category_codes":["C1"]}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "EXT_001", env.ErrorCode)

	status, _ = post(t, app, `{"store_code":"S1","terminal_id":"TM1","category_codes":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, app, `{"terminal_id":"TM1","category_codes":["C1"]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
