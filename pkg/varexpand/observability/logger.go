// Package observability provides logging, metrics and tracing helpers for
// template expansion.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds the render ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "4f1c...")
//	enriched.Debug("expanding") // includes render_id
func EnrichLogger(logger *slog.Logger, renderID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("render_id", renderID))
}

// LogExpansion logs a finished expansion.
func LogExpansion(logger *slog.Logger, templateLen, directives int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template expanded",
		slog.Int("template_len", templateLen),
		slog.Int("directives", directives),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogUndefinedKeys logs keys the variable table did not define.
func LogUndefinedKeys(logger *slog.Logger, keys string) {
	if logger == nil {
		return
	}
	logger.Debug("undefined variables",
		slog.String("keys", keys),
	)
}

// LogTruncated logs a directive cut off by the end of the template. The
// rest of the template is not expanded.
func LogTruncated(logger *slog.Logger, position int) {
	if logger == nil {
		return
	}
	logger.Warn("directive truncated",
		slog.Int("position", position),
	)
}

// LogStoreError logs a failed template store operation.
func LogStoreError(logger *slog.Logger, op, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template store failed",
		slog.String("operation", op),
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
}
