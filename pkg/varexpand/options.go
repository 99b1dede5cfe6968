package varexpand

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/varexpand/pkg/varexpand/observability"
)

// MissingAction specifies how directives with unknown keys are handled.
type MissingAction int

const (
	// MissingEmpty expands unknown keys to nothing.
	// This is the default behavior.
	MissingEmpty MissingAction = iota

	// MissingKeep copies the directive text, e.g. "%5q", to the output
	// unchanged.
	MissingKeep

	// MissingError expands unknown keys to nothing and reports them
	// with an *UndefinedKeyError.
	MissingError
)

// String returns the configuration name of the action.
func (a MissingAction) String() string {
	switch a {
	case MissingEmpty:
		return "empty"
	case MissingKeep:
		return "keep"
	case MissingError:
		return "error"
	default:
		return fmt.Sprintf("MissingAction(%d)", int(a))
	}
}

// ParseMissingAction maps a configuration name ("empty", "keep" or
// "error") to a MissingAction. An empty name selects MissingEmpty.
func ParseMissingAction(name string) (MissingAction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "empty":
		return MissingEmpty, nil
	case "keep":
		return MissingKeep, nil
	case "error":
		return MissingError, nil
	default:
		return MissingEmpty, fmt.Errorf("unknown missing action %q (expect: empty|keep|error)", name)
	}
}

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets how unknown keys are handled.
//
// Default: MissingEmpty
//
// Example:
//
//	exp := NewExpander(WithMissingAction(MissingError))
//	_, err := exp.Expand("%q", nil)
//	// err: "undefined variable: q"
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missing = action
	}
}

// WithHashFunc sets the hash used by the H modifier.
//
// Default: ELFHash
func WithHashFunc(fn HashFunc) Option {
	return func(e *Expander) {
		if fn != nil {
			e.hash = fn
		}
	}
}

// WithLogger sets the logger for expansion diagnostics.
// Expansions are logged at debug level; truncated templates at warn.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Pass
// observability.NewMetricsRecorder() to record OpenTelemetry metrics.
//
// Default: observability.NoopMetrics{}
func WithMetrics(recorder observability.MetricsRecorder) Option {
	return func(e *Expander) {
		if recorder != nil {
			e.metrics = recorder
		}
	}
}

// WithTracing enables an OpenTelemetry span per expansion.
//
// Default: false
func WithTracing(enabled bool) Option {
	return func(e *Expander) {
		e.tracing = enabled
		if enabled {
			e.spans = observability.NewSpanManager()
		} else {
			e.spans = observability.NoopSpanManager{}
		}
	}
}
