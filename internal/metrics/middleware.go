package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// Middleware records request count, error count and duration per route.
// Errors from downstream handlers are resolved through the app's ErrorHandler first
// so the recorded status is the one sent to the client.
func Middleware(m *AppMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		ctx := c.UserContext()
		opt := m.attrs(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		m.HTTPRequestsTotal.Add(ctx, 1, opt)
		if status >= 400 {
			m.HTTPRequestsErrors.Add(ctx, 1, opt)
		}
		m.HTTPRequestDuration.Record(ctx, float64(time.Since(start).Milliseconds()), opt)
		return nil
	}
}
