package metrics_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"bookstore/internal/metrics"
)

func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func newMetrics(t *testing.T) (*metrics.AppMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	m, err := metrics.New(provider.Meter("test"), "bookstore-test")
	if err != nil {
		t.Fatal(err)
	}
	return m, reader
}

func TestMiddlewareCountsRequestsAndErrors(t *testing.T) {
	m, reader := newMetrics(t)

	app := fiber.New()
	app.Use(metrics.Middleware(m))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "nope") })

	for _, p := range []string{"/ok", "/ok", "/boom"} {
		resp, err := app.Test(httptest.NewRequest("GET", p, nil))
		if err != nil {
			t.Fatal(err)
		}
		if p == "/boom" && resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("error status not preserved, got %d", resp.StatusCode)
		}
	}

	if got := sumOf(t, reader, "http.server.request.count"); got != 3 {
		t.Fatalf("want 3 requests, got %d", got)
	}
	if got := sumOf(t, reader, "http.server.request.error.count"); got != 1 {
		t.Fatalf("want 1 error, got %d", got)
	}
}

func TestBusinessCountersAndNilSafety(t *testing.T) {
	m, reader := newMetrics(t)
	ctx := context.Background()

	m.ProductUpserted(ctx, "products")
	m.ListEntryAdded(ctx, "cart")
	m.LoginAttempt(ctx, "denied")

	if got := sumOf(t, reader, "bookstore.products.upserted"); got != 1 {
		t.Fatalf("upserted = %d", got)
	}
	if got := sumOf(t, reader, "bookstore.logins"); got != 1 {
		t.Fatalf("logins = %d", got)
	}

	var none *metrics.AppMetrics
	none.ProductUpserted(ctx, "products")
	none.SignedUp(ctx)
}
