package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider with an in-memory exporter.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("varexpand")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		tracer = otel.Tracer("varexpand")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}
	return exporter, cleanup
}

func TestStartExpandSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	_, span := sm.StartExpandSpan(context.Background(), "render-1", 12)
	require.NotNil(t, span)
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "varexpand.expand", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)
	assert.Contains(t, s.Attributes, attribute.String("render.id", "render-1"))
	assert.Contains(t, s.Attributes, attribute.Int("template.length", 12))
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	_, span := sm.StartExpandSpan(context.Background(), "render-2", 3)
	sm.EndSpanWithError(span, errors.New("undefined variable: q"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "undefined variable: q", spans[0].Status.Description)
	assert.NotEmpty(t, spans[0].Events, "error should be recorded as an event")

	assert.NotPanics(t, func() {
		sm.EndSpanWithError(nil, nil)
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	ctx, span := sm.StartExpandSpan(context.Background(), "render-3", 5)
	sm.AddSpanEvent(ctx, "directive truncated", attribute.Int("position", 4))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "directive truncated", spans[0].Events[0].Name)

	t.Run("no span in context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(context.Background(), "ignored")
		})
	})
}
