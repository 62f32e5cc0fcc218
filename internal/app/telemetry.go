package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	telemetryNamespace     = "seat-reservation"
	metricExportInterval   = 15 * time.Second
	telemetryFlushDeadline = 5 * time.Second
)

// telemetry owns the OpenTelemetry providers of one process. The zero value
// exports nothing.
type telemetry struct {
	component string
	logs      *sdklog.LoggerProvider
	shutdowns []func(context.Context) error
}

// startTelemetry exports traces, metrics and logs of component to the
// collector. Without a collector URL it returns a telemetry that does nothing.
func startTelemetry(ctx context.Context, cfg Config, component string) (*telemetry, error) {
	t := &telemetry{component: component}
	if cfg.OtelCollectorUrl == "" {
		return t, nil
	}

	res, err := telemetryResource(ctx, cfg, component)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	err = t.startTracing(ctx, cfg.OtelCollectorUrl, res)
	if err == nil {
		err = t.startMetrics(ctx, cfg.OtelCollectorUrl, res)
	}
	if err == nil {
		err = t.startLogs(ctx, cfg.OtelCollectorUrl, res)
	}

	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}

	return t, nil
}

func telemetryResource(ctx context.Context, cfg Config, component string) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNamespace(telemetryNamespace),
			semconv.ServiceName(component),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironment(cfg.Env),
		),
	)
}

func (t *telemetry) startTracing(ctx context.Context, endpoint string, res *resource.Resource) error {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(endpoint),
	)
	if err != nil {
		return fmt.Errorf("trace exporter: %w", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	t.shutdowns = append(t.shutdowns, provider.Shutdown)

	return nil
}

func (t *telemetry) startMetrics(ctx context.Context, endpoint string, res *resource.Resource) error {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(endpoint),
	)
	if err != nil {
		return fmt.Errorf("metric exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(metricExportInterval))),
	)

	otel.SetMeterProvider(provider)

	t.shutdowns = append(t.shutdowns, provider.Shutdown)

	return nil
}

func (t *telemetry) startLogs(ctx context.Context, endpoint string, res *resource.Resource) error {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithInsecure(),
		otlploggrpc.WithEndpoint(endpoint),
	)
	if err != nil {
		return fmt.Errorf("log exporter: %w", err)
	}

	t.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)

	global.SetLoggerProvider(t.logs)

	t.shutdowns = append(t.shutdowns, t.logs.Shutdown)

	return nil
}

// Logger returns base, additionally bridged to the collector when logs are
// exported.
func (t *telemetry) Logger(base *slog.Logger) *slog.Logger {
	if t.logs == nil {
		return base
	}

	bridge := otelslog.NewHandler(t.component,
		otelslog.WithLoggerProvider(t.logs),
		otelslog.WithVersion(version),
	)

	return slog.New(fanout(base.Handler(), bridge))
}

// Shutdown flushes and stops the providers in reverse start order.
func (t *telemetry) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, telemetryFlushDeadline)
	defer cancel()

	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		errs = append(errs, t.shutdowns[i](ctx))
	}
	t.shutdowns = nil

	return errors.Join(errs...)
}

// fanoutHandler hands every record to each handler that accepts its level.
type fanoutHandler []slog.Handler

func fanout(handlers ...slog.Handler) slog.Handler {
	return fanoutHandler(handlers)
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}

	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanoutHandler) each(wrap func(slog.Handler) slog.Handler) fanoutHandler {
	wrapped := make(fanoutHandler, len(f))
	for i, h := range f {
		wrapped[i] = wrap(h)
	}

	return wrapped
}
