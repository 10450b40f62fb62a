// Package tracing installs the OpenTelemetry trace pipeline. With no OTLP
// endpoint configured the process runs on a no-op provider and span creation
// costs nothing.
package tracing

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

// Module wires the tracer provider and the Echo instrumentation.
var Module = fx.Module("tracing",
	fx.Provide(NewProvider),
	fx.Invoke(RegisterShutdown),
	fx.Invoke(InstrumentEcho),
)

// providerOut exposes the SDK provider so the shutdown hook can flush it.
// The value is nil when tracing is disabled.
type providerOut struct {
	fx.Out

	SDK *sdktrace.TracerProvider `name:"otelSDKProvider" optional:"true"`
}

// NewProvider builds and globally installs a tracer provider. Export goes
// over OTLP/HTTP to cfg.Otel.ExporterEndpoint; an empty endpoint means the
// no-op provider.
func NewProvider(cfg *config.Config, log *slog.Logger) (providerOut, error) {
	log = log.With(logger.Scope("tracing"))
	oc := cfg.Otel

	if !oc.Enabled() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		log.Info("tracing disabled, no OTLP endpoint configured")
		return providerOut{}, nil
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpointURL(oc.ExporterEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return providerOut{}, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(oc, log)),
		sdktrace.WithSampler(newSampler(oc.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	log.Info("tracing enabled",
		slog.String("endpoint", oc.ExporterEndpoint),
		slog.String("service", oc.ServiceName),
		slog.Float64("sampling_rate", oc.SamplingRate),
	)

	return providerOut{SDK: tp}, nil
}

func newResource(oc config.OtelConfig, log *slog.Logger) *resource.Resource {
	res, err := resource.New(context.Background(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(semconv.ServiceName(oc.ServiceName)),
		resource.WithFromEnv(),
		resource.WithProcess(),
	)
	if err != nil {
		log.Warn("resource detection failed", logger.Error(err))
		return resource.Empty()
	}
	return res
}

func newSampler(rate float64) sdktrace.Sampler {
	if rate >= 1.0 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

// providerIn receives the optional SDK provider for lifecycle registration.
type providerIn struct {
	fx.In

	SDK *sdktrace.TracerProvider `name:"otelSDKProvider" optional:"true"`
}

// RegisterShutdown flushes pending spans when the app stops.
func RegisterShutdown(lc fx.Lifecycle, p providerIn, log *slog.Logger) {
	if p.SDK == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer provider")
			return p.SDK.Shutdown(ctx)
		},
	})
}

// InstrumentEcho adds request span middleware. Health probes are skipped,
// they would dominate the trace volume otherwise.
func InstrumentEcho(e *echo.Echo, cfg *config.Config) {
	if !cfg.Otel.Enabled() {
		return
	}
	e.Use(otelecho.Middleware(
		cfg.Otel.ServiceName,
		otelecho.WithSkipper(func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/healthz" || p == "/ready"
		}),
	))
}
