// Package trace wires OpenTelemetry tracing for the pipeline. Spans are
// exported to stdout; the whole layer can be switched off with
// LOG_TRACING_ENABLED=false and sampled down with TRACE_SAMPLE_RATIO.
package trace

import (
	"context"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "sentiment-trading-bot"
	serviceVersion = "1.0.0"
)

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Option adjusts tracer construction.
type Option func(*settings)

type settings struct {
	sampleRatio float64
	pretty      bool
}

// WithSampleRatio keeps only the given fraction of root traces.
func WithSampleRatio(r float64) Option {
	return func(s *settings) { s.sampleRatio = r }
}

// WithPrettyPrint toggles indented span output.
func WithPrettyPrint(on bool) Option {
	return func(s *settings) { s.pretty = on }
}

// Init installs the global tracer provider. A no-op when tracing is
// disabled via env.
func Init(opts ...Option) error {
	enabled = getEnv("LOG_TRACING_ENABLED", "true") == "true"
	if !enabled {
		return nil
	}

	s := settings{sampleRatio: envRatio(), pretty: true}
	for _, opt := range opts {
		opt(&s)
	}

	var exporterOpts []stdouttrace.Option
	if s.pretty {
		exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.sampleRatio))),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)
	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}

// StartSpan opens a span when tracing is on; otherwise it passes the
// current span through untouched.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return enabled
}

// GetTraceFields extracts the trace and span IDs for log correlation.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return "", "", false
	}
	return span.SpanContext().TraceID().String(),
		span.SpanContext().SpanID().String(),
		true
}

func envRatio() float64 {
	raw := getEnv("TRACE_SAMPLE_RATIO", "1")
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil || r < 0 || r > 1 {
		return 1
	}
	return r
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
