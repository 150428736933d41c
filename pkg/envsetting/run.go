package envsetting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/envsetting/pkg/envsetting/observability"
)

// Mode names the usage pattern of a load.
type Mode string

const (
	// ModeSchema resolves a Builder's declarations into Settings.
	ModeSchema Mode = "schema"

	// ModeExtract resolves settings one call at a time through an Extractor.
	ModeExtract Mode = "extract"
)

// unresolved labels metrics for settings that failed before an origin was known.
const unresolved = "unresolved"

// run carries one load's source and observability state.
type run struct {
	ctx     context.Context
	src     Source
	mode    Mode
	cfg     loadConfig
	logger  *slog.Logger
	span    trace.Span
	elapsed func() float64

	resolved int
	lastKey  string
}

func newRun(ctx context.Context, mode Mode, src Source, opts []Option) *run {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.loadID == "" {
		cfg.loadID = uuid.New().String()
	}
	if src == nil {
		src = Environment()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := cfg.spans.StartLoadSpan(ctx, string(mode), cfg.loadID)
	r := &run{
		ctx:     ctx,
		src:     src,
		mode:    mode,
		cfg:     cfg,
		logger:  observability.EnrichLogger(cfg.logger, cfg.loadID, string(mode)),
		span:    span,
		elapsed: observability.TimedOperation(),
	}
	observability.LogLoadStart(r.logger)
	return r
}

// resolve coerces s and reports the outcome to logs, metrics, and the span.
func (r *run) resolve(s Setting) (any, Origin, error) {
	r.lastKey = s.key
	kind := s.kind.String()

	v, origin, err := resolve(r.src, s)
	if err != nil {
		label := string(origin)
		if label == "" {
			label = unresolved
		}
		r.cfg.metrics.RecordResolution(r.ctx, kind, label, err)
		observability.LogSettingError(r.logger, s.key, kind, err)
		return nil, origin, err
	}

	r.resolved++
	r.cfg.metrics.RecordResolution(r.ctx, kind, string(origin), nil)
	if r.logger != nil {
		observability.LogSettingResolved(r.logger, s.key, kind, string(origin), display(s, v))
	}
	r.cfg.spans.AddSpanEvent(r.ctx, "setting.resolved",
		attribute.String("setting.key", s.key),
		attribute.String("setting.kind", kind),
		attribute.String("setting.origin", string(origin)),
	)
	return v, origin, nil
}

// finish closes out the load and returns err unchanged.
func (r *run) finish(err error) error {
	ms := r.elapsed()
	r.cfg.metrics.RecordLoad(r.ctx, string(r.mode), time.Duration(ms*float64(time.Millisecond)), err)
	if err != nil {
		observability.LogLoadError(r.logger, err, ms, r.lastKey)
	} else {
		observability.LogLoadComplete(r.logger, ms, r.resolved)
	}
	r.cfg.spans.EndSpanWithError(r.span, err)
	return err
}

func display(s Setting, v any) string {
	if s.secret {
		return maskedValue
	}
	return fmt.Sprint(v)
}
