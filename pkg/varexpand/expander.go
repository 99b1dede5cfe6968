package varexpand

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/varexpand/pkg/varexpand/observability"
)

// Expander expands templates with a fixed configuration.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	missing MissingAction
	hash    HashFunc
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingEmpty
//   - HashFunc: ELFHash
//   - no logging, metrics or tracing
//
// Example:
//
//	exp := NewExpander(
//	    WithMissingAction(MissingError),
//	    WithHashFunc(XXHash),
//	    WithLogger(slog.Default()),
//	)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missing: MissingEmpty,
		hash:    ELFHash,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpandTo appends the expansion of template against table to dest.
//
// The output is the same as Expand's for the configured MissingAction and
// HashFunc. An error is only returned with MissingError, after the whole
// template has been expanded.
func (e *Expander) ExpandTo(ctx context.Context, dest Buffer, template string, table Table) error {
	var renderID string
	if e.logger != nil || e.tracing {
		renderID = uuid.New().String()
	}
	ctx, span := e.spans.StartExpandSpan(ctx, renderID, len(template))

	start := time.Now()
	var st scanStats
	scan(dest, template, table, scanConfig{missing: e.missing, hash: e.hash}, &st)
	elapsed := time.Since(start)

	var err error
	if e.missing == MissingError && len(st.undefined) > 0 {
		err = &UndefinedKeyError{Keys: dedupeKeys(st.undefined)}
	}

	e.record(ctx, renderID, len(template), &st, elapsed, err)
	e.spans.EndSpanWithError(span, err)
	return err
}

// record reports a finished scan to the logger, metrics and span.
func (e *Expander) record(ctx context.Context, renderID string, templateLen int, st *scanStats, elapsed time.Duration, err error) {
	logger := observability.EnrichLogger(e.logger, renderID)
	durationMs := float64(elapsed.Microseconds()) / 1000

	if st.truncatedAt >= 0 {
		observability.LogTruncated(logger, st.truncatedAt)
		e.metrics.RecordTruncation(ctx)
		e.spans.AddSpanEvent(ctx, "directive truncated",
			attribute.Int("position", st.truncatedAt))
	}
	if len(st.undefined) > 0 {
		keys := string(dedupeKeys(st.undefined))
		observability.LogUndefinedKeys(logger, keys)
		for i := 0; i < len(keys); i++ {
			e.metrics.RecordUndefinedKey(ctx, keys[i:i+1])
		}
	}
	for i, n := range st.modifierUses {
		if n > 0 {
			e.metrics.RecordModifier(ctx, modifiers[i].Name, n)
		}
	}
	observability.LogExpansion(logger, templateLen, st.directives, durationMs)
	e.metrics.RecordExpansion(ctx, st.directives, elapsed, err)
}

// Expand returns the expansion of template against table.
//
// Example:
//
//	exp := NewExpander()
//	result, err := exp.Expand("%Un", varexpand.NewTable(varexpand.Entry{Key: 'n', Value: "alice"}))
//	// result: "ALICE"
func (e *Expander) Expand(template string, table Table) (string, error) {
	return e.ExpandContext(context.Background(), template, table)
}

// ExpandContext is Expand with a context for tracing and metrics.
func (e *Expander) ExpandContext(ctx context.Context, template string, table Table) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template))
	err := e.ExpandTo(ctx, &sb, template, table)
	return sb.String(), err
}

// MustExpand expands template and panics on error.
//
// Use this when the table is known to define every key or with
// MissingEmpty/MissingKeep, which never return errors.
func (e *Expander) MustExpand(template string, table Table) string {
	result, err := e.Expand(template, table)
	if err != nil {
		panic(fmt.Sprintf("varexpand: %v", err))
	}
	return result
}

// ExpandAll expands every template in ss.
//
// Returns a new slice with expanded strings. On error (with MissingError),
// returns nil and the first error.
func (e *Expander) ExpandAll(ss []string, table Table) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := e.Expand(s, table)
		if err != nil {
			return nil, err
		}
		results[i] = expanded
	}
	return results, nil
}

// ExpandMap expands all string values of m recursively.
//
// Returns a new map. Non-string values are copied as-is and nested
// map[string]any values are expanded recursively. On error (with
// MissingError), returns nil and the first error.
//
// Example:
//
//	result, _ := exp.ExpandMap(map[string]any{
//	    "mail_location": "maildir:/var/mail/%d/%n",
//	    "quota_mb":      512, // copied as-is
//	}, table)
func (e *Expander) ExpandMap(m map[string]any, table Table) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}

	result := make(map[string]any, len(m))
	for k, v := range m {
		expanded, err := e.expandValue(v, table)
		if err != nil {
			return nil, err
		}
		result[k] = expanded
	}
	return result, nil
}

func (e *Expander) expandValue(v any, table Table) (any, error) {
	switch val := v.(type) {
	case string:
		return e.Expand(val, table)
	case map[string]any:
		return e.ExpandMap(val, table)
	default:
		return v, nil
	}
}

// UndefinedKeyError is returned when MissingError is set and one or more
// directives reference keys the table does not define.
type UndefinedKeyError struct {
	// Keys lists the undefined keys in order of first use.
	Keys []byte
}

// Error implements the error interface.
func (e *UndefinedKeyError) Error() string {
	names := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		names[i] = string([]byte{k})
	}
	if len(names) == 1 {
		return fmt.Sprintf("undefined variable: %s", names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(names, ", "))
}

func dedupeKeys(keys []byte) []byte {
	var seen [256]bool
	out := make([]byte, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// defaultExpander backs the package-level helpers.
var defaultExpander = NewExpander()

// ExpandAll expands every template in ss with default settings.
func ExpandAll(ss []string, table Table) []string {
	// The default expander never returns errors (MissingEmpty).
	results, _ := defaultExpander.ExpandAll(ss, table)
	return results
}

// ExpandMap expands all string values of m recursively with default
// settings.
func ExpandMap(m map[string]any, table Table) map[string]any {
	// The default expander never returns errors (MissingEmpty).
	result, _ := defaultExpander.ExpandMap(m, table)
	return result
}
