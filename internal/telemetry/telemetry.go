// Package telemetry configures OpenTelemetry tracing for the server and the backend client.
package telemetry

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

// Settings is read from RELOCATEME_OTEL_* environment variables.
type Settings struct {
	Endpoint string `env:"RELOCATEME_OTEL_ENDPOINT"`
	Enabled  bool   `env:"RELOCATEME_OTEL_ENABLED" envDefault:"true"`
}

// active reports whether spans should be exported.
func (s Settings) active() bool {
	return s.Enabled && s.Endpoint != ""
}

// LoadSettings parses the tracing settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse otel env: %w", err)
	}
	return s, nil
}

// Setup installs a global tracer provider exporting to the configured OTLP endpoint.
//
// Tracing is opt-in: with no endpoint, or with RELOCATEME_OTEL_ENABLED=false, Setup
// only installs the propagators and returns a no-op shutdown.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	settings, err := LoadSettings()
	if err != nil {
		return noop, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !settings.active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(settings.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
