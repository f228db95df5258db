// Package metrics sets up OpenTelemetry metrics for the HTTP surface and the store operations.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"bookstore/internal/config"
	applog "bookstore/internal/log"
)

// AppMetrics holds every instrument the service records. A nil *AppMetrics records nothing.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestsErrors  metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	ProductsUpserted metric.Int64Counter
	ProductsDeleted  metric.Int64Counter
	ListAdded        metric.Int64Counter
	ListRemoved      metric.Int64Counter
	Signups          metric.Int64Counter
	Logins           metric.Int64Counter

	serviceName string
}

// Init builds the meter provider, installs it globally and creates the instruments.
// Without an OTLP endpoint nothing is exported.
func Init(ctx context.Context, cfg config.Config) (*AppMetrics, *sdkmetric.MeterProvider, error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.OTLPEndpoint != "" {
		exporterOpts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetrichttp.WithURLPath("/v1/metrics"),
		}
		if h := cfg.Headers(); len(h) > 0 {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithHeaders(h))
		}
		if cfg.OTLPInsecure {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("otlp exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))))
		applog.Info(nil, "metrics.export", map[string]any{"endpoint": cfg.OTLPEndpoint, "interval": "10s"})
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)

	m, err := New(provider.Meter(cfg.ServiceName), cfg.ServiceName)
	if err != nil {
		return nil, nil, err
	}
	return m, provider, nil
}

// New creates the instruments on meter.
func New(meter metric.Meter, serviceName string) (*AppMetrics, error) {
	m := &AppMetrics{serviceName: serviceName}
	buckets := []float64{2, 4, 6, 8, 10, 50, 100, 200, 400, 800, 1000, 2000, 5000, 10000}

	var err error
	counter := func(dst *metric.Int64Counter, name, desc string) {
		if err != nil {
			return
		}
		*dst, err = meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("1"))
		if err != nil {
			err = fmt.Errorf("create %s: %w", name, err)
		}
	}
	counter(&m.HTTPRequestsTotal, "http.server.request.count", "Total number of HTTP requests")
	counter(&m.HTTPRequestsErrors, "http.server.request.error.count", "Total number of HTTP error responses")
	counter(&m.ProductsUpserted, "bookstore.products.upserted", "Products created or replaced")
	counter(&m.ProductsDeleted, "bookstore.products.deleted", "Product delete requests")
	counter(&m.ListAdded, "bookstore.list.added", "Wishlist or cart additions")
	counter(&m.ListRemoved, "bookstore.list.removed", "Wishlist or cart removals")
	counter(&m.Signups, "bookstore.signups", "Accounts created")
	counter(&m.Logins, "bookstore.logins", "Login attempts by outcome")
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("create http.server.request.duration: %w", err)
	}
	return m, nil
}

func (m *AppMetrics) attrs(kv ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(append(kv, attribute.String("service.name", m.serviceName))...)
}

func (m *AppMetrics) ProductUpserted(ctx context.Context, table string) {
	if m == nil {
		return
	}
	m.ProductsUpserted.Add(ctx, 1, m.attrs(attribute.String("table", table)))
}

func (m *AppMetrics) ProductDeleted(ctx context.Context, table string) {
	if m == nil {
		return
	}
	m.ProductsDeleted.Add(ctx, 1, m.attrs(attribute.String("table", table)))
}

func (m *AppMetrics) ListEntryAdded(ctx context.Context, list string) {
	if m == nil {
		return
	}
	m.ListAdded.Add(ctx, 1, m.attrs(attribute.String("list", list)))
}

func (m *AppMetrics) ListEntryRemoved(ctx context.Context, list string) {
	if m == nil {
		return
	}
	m.ListRemoved.Add(ctx, 1, m.attrs(attribute.String("list", list)))
}

func (m *AppMetrics) SignedUp(ctx context.Context) {
	if m == nil {
		return
	}
	m.Signups.Add(ctx, 1, m.attrs())
}

// LoginAttempt records outcome as "ok", "denied" or "error".
func (m *AppMetrics) LoginAttempt(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Logins.Add(ctx, 1, m.attrs(attribute.String("outcome", outcome)))
}
