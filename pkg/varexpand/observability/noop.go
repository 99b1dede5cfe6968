package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

// RecordExpansion does nothing.
func (NoopMetrics) RecordExpansion(_ context.Context, _ int, _ time.Duration, _ error) {}

// RecordUndefinedKey does nothing.
func (NoopMetrics) RecordUndefinedKey(_ context.Context, _ string) {}

// RecordModifier does nothing.
func (NoopMetrics) RecordModifier(_ context.Context, _ string, _ int) {}

// RecordTruncation does nothing.
func (NoopMetrics) RecordTruncation(_ context.Context) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartExpandSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartExpandSpan(ctx context.Context, _ string, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
