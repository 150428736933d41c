// Package observability provides the logging, metrics, and tracing hooks
// used while envsetting resolves settings.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds load context to a logger.
// Returns a new logger with load_id and mode fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "3f1c...", "schema")
//	enriched.Info("resolving") // includes load_id, mode
func EnrichLogger(logger *slog.Logger, loadID, mode string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("load_id", loadID),
		slog.String("mode", mode),
	)
}

// LogLoadStart logs the start of a load or extraction.
func LogLoadStart(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("settings load starting")
}

// LogLoadComplete logs a successful load.
func LogLoadComplete(logger *slog.Logger, durationMs float64, resolved int) {
	if logger == nil {
		return
	}
	logger.Info("settings loaded",
		slog.Float64("duration_ms", durationMs),
		slog.Int("settings", resolved),
	)
}

// LogLoadError logs a failed load. lastKey is the setting that failed.
func LogLoadError(logger *slog.Logger, err error, durationMs float64, lastKey string) {
	if logger == nil {
		return
	}
	logger.Error("settings load failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_key", lastKey),
	)
}

// LogSettingResolved logs a single resolved setting. The caller is
// responsible for masking secret values before passing them in.
func LogSettingResolved(logger *slog.Logger, key, kind, origin, value string) {
	if logger == nil {
		return
	}
	logger.Debug("setting resolved",
		slog.String("key", key),
		slog.String("kind", kind),
		slog.String("origin", origin),
		slog.String("value", value),
	)
}

// LogSettingError logs a setting that could not be resolved.
func LogSettingError(logger *slog.Logger, key, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("setting failed",
		slog.String("key", key),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
