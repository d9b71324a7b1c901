package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestErrorUsesErrorLogger(t *testing.T) {
	require.NoError(t, Init(&LogConfig{Level: "debug", Format: "text", Output: "stdout", BufferSize: 10}))
	t.Cleanup(Shutdown)

	var appEntry, errEntry *logrus.Entry
	app := fiber.New()
	app.Get("/tenants/:tenant_id/ping", func(c fiber.Ctx) error {
		appEntry = WithRequest(c)
		errEntry = WithRequestError(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/tenants/T1/ping", nil)
	req.Header.Set("X-Request-ID", "req-9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.NotNil(t, errEntry)
	assert.Same(t, GetErrorLogger(), errEntry.Logger)
	assert.Same(t, GetAppLogger(), appEntry.Logger)
	assert.Equal(t, "req-9", errEntry.Data["request_id"])
	assert.Equal(t, "T1", errEntry.Data["tenant_id"])
	assert.Equal(t, "/tenants/T1/ping", errEntry.Data["path"])
}
