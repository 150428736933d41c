package envsetting

import (
	"log/slog"

	"github.com/randalmurphal/envsetting/pkg/envsetting/observability"
)

// loadConfig holds configuration for a load or extraction.
type loadConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	loadID  string
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a load or extraction.
type Option func(*loadConfig)

// WithLogger logs each resolved setting at debug level and the load
// outcome at info or error level. Secret values are masked.
// Default: no logging.
//
// Example:
//
//	settings, err := envsetting.Load(nil, declare, envsetting.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithMetrics records resolutions and loads.
// Default: observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *loadConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager wraps each load in a span with an event per setting.
// Default: observability.NoopSpanManager{}.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *loadConfig) {
		if sm != nil {
			c.spans = sm
		}
	}
}

// WithLoadID sets the ID attached to logs and spans. Default: a random UUID.
func WithLoadID(id string) Option {
	return func(c *loadConfig) {
		c.loadID = id
	}
}
