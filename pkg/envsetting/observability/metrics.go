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

// MetricsRecorder counts resolutions and loads. NoopMetrics is the disabled form.
type MetricsRecorder interface {
	// RecordResolution records one setting resolution and its outcome.
	RecordResolution(ctx context.Context, kind, origin string, err error)

	// RecordLoad records a completed load or extraction.
	RecordLoad(ctx context.Context, mode string, duration time.Duration, err error)
}

// otelMetrics holds the instruments created on the "envsetting" meter.
type otelMetrics struct {
	resolutions   metric.Int64Counter
	settingErrors metric.Int64Counter
	loadRuns      metric.Int64Counter
	loadErrors    metric.Int64Counter
	loadLatency   metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics creates the shared instruments once per process.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("envsetting")

	resolutions, err := meter.Int64Counter("envsetting.setting.resolutions",
		metric.WithDescription("Number of setting resolutions"),
	)
	if err != nil {
		return nil, err
	}

	settingErrors, err := meter.Int64Counter("envsetting.setting.errors",
		metric.WithDescription("Number of settings that failed to resolve"),
	)
	if err != nil {
		return nil, err
	}

	loadRuns, err := meter.Int64Counter("envsetting.load.runs",
		metric.WithDescription("Number of loads and extractions"),
	)
	if err != nil {
		return nil, err
	}

	loadErrors, err := meter.Int64Counter("envsetting.load.errors",
		metric.WithDescription("Number of failed loads and extractions"),
	)
	if err != nil {
		return nil, err
	}

	loadLatency, err := meter.Float64Histogram("envsetting.load.latency_ms",
		metric.WithDescription("Load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:   resolutions,
		settingErrors: settingErrors,
		loadRuns:      loadRuns,
		loadErrors:    loadErrors,
		loadLatency:   loadLatency,
	}, nil
}

// NewMetricsRecorder returns a recorder on the global meter provider. It
// falls back to NoopMetrics, with a warning, if instruments cannot be created.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordResolution records a setting resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, kind, origin string, err error) {
	attrs := metric.WithAttributes(
		attribute.String("setting.kind", kind),
		attribute.String("setting.origin", origin),
	)
	m.resolutions.Add(ctx, 1, attrs)
	if err != nil {
		m.settingErrors.Add(ctx, 1, attrs)
	}
}

// RecordLoad records a load.
func (m *otelMetrics) RecordLoad(ctx context.Context, mode string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("success", err == nil),
	)
	m.loadRuns.Add(ctx, 1, attrs)
	m.loadLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.loadErrors.Add(ctx, 1, attrs)
	}
}
