package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type (
	// NoopLogger discards every log message. Used by tests and by
	// cmd/gamerunner, and as the fallback when a constructor gets a nil
	// Logger.
	NoopLogger struct{}

	// NoopMetrics discards every metric.
	NoopMetrics struct{}

	// NoopTracer hands out spans that discard every call.
	NoopTracer struct{}

	noopSpan struct{}
)

// NewNoopLogger constructs a Logger that discards all log messages.
func NewNoopLogger() Logger {
	return NoopLogger{}
}

// NewNoopMetrics constructs a Metrics recorder that discards all metrics.
func NewNoopMetrics() Metrics {
	return NoopMetrics{}
}

// NewNoopTracer constructs a Tracer that creates no-op spans.
func NewNoopTracer() Tracer {
	return NoopTracer{}
}

func (NoopLogger) Debug(ctx context.Context, msg string, keyvals ...any) {}
func (NoopLogger) Info(ctx context.Context, msg string, keyvals ...any) {}
func (NoopLogger) Warn(ctx context.Context, msg string, keyvals ...any) {}
func (NoopLogger) Error(ctx context.Context, msg string, keyvals ...any) {}

func (NoopMetrics) IncCounter(name string, value float64, tags ...string) {}
func (NoopMetrics) RecordTimer(name string, duration time.Duration, tags ...string) {}
func (NoopMetrics) RecordGauge(name string, value float64, tags ...string) {}

// Start returns a no-op span without modifying the context.
func (NoopTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	return ctx, noopSpan{}
}

// Span returns a no-op span.
func (NoopTracer) Span(context.Context) Span {
	return noopSpan{}
}

func (noopSpan) End(...trace.SpanEndOption) {}
func (noopSpan) AddEvent(name string, attrs ...any) {}
func (noopSpan) SetStatus(codes.Code, string) {}
func (noopSpan) RecordError(err error, opts ...trace.EventOption) {}
