package httpapi

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/observability"
	"go.opentelemetry.io/otel/trace"
)

// Only handler spans are recorded; middleware and helpers ride on the
// otelhttp server span.
var apiTracer = observability.NewTracer("pickem-league/internal/interfaces/httpapi", "httpapi.Handler.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}
