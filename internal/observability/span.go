package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer opens child spans only. Requests filtered out by the HTTP layer
// (health checks) never carry a parent, so nothing below them is recorded.
type Tracer struct {
	tracer trace.Tracer
	prefix string
}

// NewTracer scopes spans to an instrumentation name. When prefix is set,
// span names without it are skipped.
func NewTracer(scope, prefix string) Tracer {
	return Tracer{tracer: otel.Tracer(scope), prefix: prefix}
}

func (t Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !t.Enabled(name) {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (t Tracer) Enabled(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return t.prefix == "" || strings.HasPrefix(name, t.prefix)
}

// EndSpan records *errp on the span, if any, and ends it.
func EndSpan(span trace.Span, errp *error) {
	if errp != nil && *errp != nil {
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	span.End()
}
