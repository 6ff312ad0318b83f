package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"worldgdp/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ConfigFile is searched for from the working directory upwards.
const ConfigFile = "telemetry.json5"

const (
	ProtocolGrpc = "grpc"
	ProtocolHttp = "http"
)

const defaultMetricInterval = 5 * time.Second

// ExporterConfig describes where one signal is pushed. An empty Endpoint
// leaves the signal on the global no-op provider.
type ExporterConfig struct {
	// Protocol is ProtocolGrpc or ProtocolHttp, http when empty.
	Protocol string            `json:"protocol"`
	Endpoint string            `json:"endpoint"`
	Headers  map[string]string `json:"headers"`
}

type Config struct {
	Traces                ExporterConfig `json:"traces"`
	Metrics               ExporterConfig `json:"metrics"`
	MetricIntervalSeconds int            `json:"metric_interval_seconds"`
}

func (c Config) metricInterval() time.Duration {
	if c.MetricIntervalSeconds <= 0 {
		return defaultMetricInterval
	}
	return time.Duration(c.MetricIntervalSeconds) * time.Second
}

// Telemetry holds the providers Setup installed, either may be nil.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// Shutdown flushes and stops the installed providers. It is a no-op on a
// zero Telemetry.
func (t Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// SetupFromEnv reads the nearest telemetry.json5 and calls Setup with it.
// The error wraps os.ErrNotExist when there is no such file.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config](ConfigFile)
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}

// Setup installs a global tracer and meter provider for each signal that has
// an endpoint configured.
func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return Telemetry{}, err
	}

	var t Telemetry
	if config.Traces.Endpoint != "" {
		exporter, err := newSpanExporter(ctx, config.Traces)
		if err != nil {
			return Telemetry{}, fmt.Errorf("traces: %w", err)
		}
		t.TracerProvider = trace.NewTracerProvider(
			trace.WithBatcher(exporter),
			trace.WithResource(r),
		)
	}
	if config.Metrics.Endpoint != "" {
		exporter, err := newMetricExporter(ctx, config.Metrics)
		if err != nil {
			shutdownErr := t.Shutdown(ctx)
			return Telemetry{}, errors.Join(fmt.Errorf("metrics: %w", err), shutdownErr)
		}
		t.MeterProvider = metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(config.metricInterval()))),
			metric.WithResource(r),
		)
	}

	if t.TracerProvider != nil {
		otel.SetTracerProvider(t.TracerProvider)
	}
	if t.MeterProvider != nil {
		otel.SetMeterProvider(t.MeterProvider)
	}
	return t, nil
}

func newSpanExporter(ctx context.Context, c ExporterConfig) (trace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	switch c.Protocol {
	case ProtocolGrpc:
		slog.Debug("span exporter initialized", "type", c.Protocol, "endpoint", c.Endpoint)
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(c.Endpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
	case ProtocolHttp, "":
		slog.Debug("span exporter initialized", "type", ProtocolHttp, "endpoint", c.Endpoint)
		return otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(c.Endpoint),
			otlptracehttp.WithHeaders(c.Headers),
		)
	}
	return nil, fmt.Errorf("unknown otlp protocol %q", c.Protocol)
}

func newMetricExporter(ctx context.Context, c ExporterConfig) (metric.Exporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	switch c.Protocol {
	case ProtocolGrpc:
		slog.Debug("metric exporter initialized", "type", c.Protocol, "endpoint", c.Endpoint)
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(c.Endpoint),
			otlpmetricgrpc.WithHeaders(c.Headers),
		)
	case ProtocolHttp, "":
		slog.Debug("metric exporter initialized", "type", ProtocolHttp, "endpoint", c.Endpoint)
		return otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(c.Endpoint),
			otlpmetrichttp.WithHeaders(c.Headers),
		)
	}
	return nil, fmt.Errorf("unknown otlp protocol %q", c.Protocol)
}
