// Package observability builds the logger, tracer and metrics every module
// receives.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/Black-And-White-Club/campus-clubs/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability is handed to every module constructor.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  metrics.OperationMetrics
	Registry *prometheus.Registry

	provider *sdktrace.TracerProvider
}

// Init builds the JSON logger, the tracer provider and the operation metrics.
// Spans are exported over OTLP when an endpoint is configured. The provider is
// installed globally.
func Init(ctx context.Context, cfg config.ObservabilityConfig) (Observability, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	provider, err := newTracerProvider(ctx, cfg)
	if err != nil {
		return Observability{}, err
	}
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.NewPrometheusMetrics(registry, namespace(cfg.ServiceName))
	if err != nil {
		_ = provider.Shutdown(ctx)
		return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
	}

	if cfg.OTLPEndpoint != "" {
		logger.Info("OpenTelemetry trace exporter started",
			slog.String("endpoint", cfg.OTLPEndpoint),
			slog.String("transport", cfg.OTLPTransport),
		)
	}

	return Observability{
		Logger:   logger,
		Tracer:   provider.Tracer(cfg.ServiceName),
		Metrics:  m,
		Registry: registry,
		provider: provider,
	}, nil
}

// Shutdown flushes buffered spans. It is a no-op for an Observability that
// was not built by Init.
func (o Observability) Shutdown(ctx context.Context) error {
	if o.provider == nil {
		return nil
	}
	return o.provider.Shutdown(ctx)
}

func newTracerProvider(ctx context.Context, cfg config.ObservabilityConfig) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("deployment.environment", cfg.Environment),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TraceSampleRate))),
	}

	if cfg.OTLPEndpoint != "" {
		exporter, err := newExporter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

func newExporter(ctx context.Context, cfg config.ObservabilityConfig) (sdktrace.SpanExporter, error) {
	switch cfg.OTLPTransport {
	case "grpc", "":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	case "http":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported otlp transport %q", cfg.OTLPTransport)
	}
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func namespace(service string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(service))
}
