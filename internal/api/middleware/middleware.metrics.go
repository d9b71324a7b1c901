package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"pos_commerce/internal/metrics"
)

// MetricsMiddleware ghi nhận số request và latency theo route template (không theo path thật)
func MetricsMiddleware(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := ""
		if r := c.Route(); r != nil {
			route = r.Path
		}
		m.Observe(c.Method(), route, status, time.Since(start))
		return err
	}
}
