package usecase

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/observability"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = observability.NewTracer("pickem-league/internal/usecase", "usecase.")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}

func endUsecaseSpan(span trace.Span, errp *error) {
	observability.EndSpan(span, errp)
}
