package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("envsetting")

// SpanManager opens one span per load and annotates it as settings resolve.
// NoopSpanManager is the disabled form.
type SpanManager interface {
	// StartLoadSpan starts a span covering one load or extraction.
	StartLoadSpan(ctx context.Context, mode, loadID string) (context.Context, trace.Span)

	// EndSpanWithError ends span, marking it failed when err is non-nil.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent records a named event on the span carried by ctx.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager backed by the global tracer provider,
// so spans go wherever otel.SetTracerProvider points them.
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartLoadSpan starts a span for a load.
func (m *otelSpanManager) StartLoadSpan(ctx context.Context, mode, loadID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "envsetting.load",
		trace.WithAttributes(
			attribute.String("load.mode", mode),
			attribute.String("load.id", loadID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError ends span with an Ok or Error status.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent is a no-op when the span in ctx is not recording.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
