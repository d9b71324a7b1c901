package basehdl

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_commerce/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "error", Format: "text", Output: "stdout", BufferSize: 64})
	code := m.Run()
	logger.Shutdown()
	os.Exit(code)
}

func call(t *testing.T, app *fiber.App, method, target string) (int, Response) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env Response
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func TestParsePageQuery(t *testing.T) {
	h := NewBaseHandler(10, 50)
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return SafeHandler(c, "page", func() error {
			q, err := h.ParsePageQuery(c)
			if err != nil {
				return err
			}
			return Success(c, http.StatusOK, "page", q)
		})
	})

	status, env := call(t, app, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, status)
	data := env.Data.(map[string]any)
	assert.Equal(t, 1.0, data["Page"])
	assert.Equal(t, 10.0, data["Limit"])

	status, env = call(t, app, http.MethodGet, "/?limit=500&page=3&sort=title:-1")
	require.Equal(t, http.StatusOK, status)
	data = env.Data.(map[string]any)
	assert.Equal(t, 50.0, data["Limit"])
	assert.Equal(t, 3.0, data["Page"])
	assert.Equal(t, "title:-1", data["SortRaw"])

	status, env = call(t, app, http.MethodGet, "/?page=1000000")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1e6, env.Data.(map[string]any)["Page"])

	for _, target := range []string{"/?page=0", "/?limit=-1", "/?page=x", "/?sort=title:2", "/?page=1000001", "/?page=9223372036854775807"} {
		status, env = call(t, app, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.ErrorCode)
	}
}

func TestTenantQueryRejectsOtherTenant(t *testing.T) {
	h := NewBaseHandler(0, 0)
	app := fiber.New()
	app.Get("/tenants/:tenant_id", func(c fiber.Ctx) error {
		c.Locals(LocalsAuthTenant, "T1")
		return SafeHandler(c, "tenant", func() error {
			q, err := h.TenantQuery(c)
			if err != nil {
				return err
			}
			return Success(c, http.StatusOK, "tenant", q.TenantID())
		})
	})

	status, env := call(t, app, http.MethodGet, "/tenants/T1")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "T1", env.Data)

	status, env = call(t, app, http.MethodGet, "/tenants/T2")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTH_003", env.ErrorCode)
}

func TestSafeHandlerRecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return SafeHandler(c, "boom", func() error {
			panic("boom")
		})
	})

	status, env := call(t, app, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", env.Operation)
	assert.Equal(t, "SYS_001", env.ErrorCode)
}

func TestHealthWithoutMongoIsUnavailable(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewSystemHandler(nil, nil).HandleHealth)

	status, env := call(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, env.Success)
	data := env.Data.(map[string]any)
	assert.Equal(t, "unhealthy", data["status"])
	services := data["services"].(map[string]any)
	assert.Equal(t, "not_initialized", services["database"])
	assert.Equal(t, "disabled", services["redis"])
}
