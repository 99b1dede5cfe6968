package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records expansion metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordExpansion records a finished expansion with its directive
	// count, duration and error status.
	RecordExpansion(ctx context.Context, directives int, duration time.Duration, err error)

	// RecordUndefinedKey records a directive whose key the table lacked.
	RecordUndefinedKey(ctx context.Context, key string)

	// RecordModifier records count applications of the named modifier.
	RecordModifier(ctx context.Context, name string, count int)

	// RecordTruncation records a template cut off inside a directive.
	RecordTruncation(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	expansions    metric.Int64Counter
	expansionTime metric.Float64Histogram
	directives    metric.Int64Counter
	errors        metric.Int64Counter
	undefinedKeys metric.Int64Counter
	modifierUses  metric.Int64Counter
	truncations   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the OTel instruments on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("varexpand")

	expansions, err := meter.Int64Counter("varexpand.expansions",
		metric.WithDescription("Number of template expansions"),
	)
	if err != nil {
		return nil, err
	}

	expansionTime, err := meter.Float64Histogram("varexpand.expansion.latency_ms",
		metric.WithDescription("Template expansion latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	directives, err := meter.Int64Counter("varexpand.directives",
		metric.WithDescription("Number of directives evaluated"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("varexpand.errors",
		metric.WithDescription("Number of expansions that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	undefinedKeys, err := meter.Int64Counter("varexpand.undefined_keys",
		metric.WithDescription("Number of directives with an undefined key"),
	)
	if err != nil {
		return nil, err
	}

	modifierUses, err := meter.Int64Counter("varexpand.modifier.applications",
		metric.WithDescription("Number of modifier applications"),
	)
	if err != nil {
		return nil, err
	}

	truncations, err := meter.Int64Counter("varexpand.truncations",
		metric.WithDescription("Number of templates cut off inside a directive"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		expansions:    expansions,
		expansionTime: expansionTime,
		directives:    directives,
		errors:        errs,
		undefinedKeys: undefinedKeys,
		modifierUses:  modifierUses,
		truncations:   truncations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordExpansion records an expansion.
func (m *otelMetrics) RecordExpansion(ctx context.Context, directives int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.expansions.Add(ctx, 1, attrs)
	m.expansionTime.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.directives.Add(ctx, int64(directives))
	if err != nil {
		m.errors.Add(ctx, 1)
	}
}

// RecordUndefinedKey records an undefined key.
func (m *otelMetrics) RecordUndefinedKey(ctx context.Context, key string) {
	m.undefinedKeys.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// RecordModifier records modifier applications.
func (m *otelMetrics) RecordModifier(ctx context.Context, name string, count int) {
	m.modifierUses.Add(ctx, int64(count), metric.WithAttributes(attribute.String("modifier", name)))
}

// RecordTruncation records a truncated template.
func (m *otelMetrics) RecordTruncation(ctx context.Context) {
	m.truncations.Add(ctx, 1)
}
