package observability

import (
	"context"
	"errors"
	"testing"
)

func TestTracer_Enabled(t *testing.T) {
	tracer := NewTracer("test", "httpapi.Handler.")

	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.SubmitPicks", want: true},
		{in: "httpapi.RequestLogging", want: false},
		{in: "  ", want: false},
	}
	for _, tt := range tests {
		if got := tracer.Enabled(tt.in); got != tt.want {
			t.Fatalf("Enabled(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}

	if !NewTracer("test", "").Enabled("usecase.PickService.Submit") {
		t.Fatalf("expected unprefixed tracer to accept any name")
	}
}

func TestTracer_StartWithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := NewTracer("test", "").Start(ctx, "usecase.GameService.Grade")
	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span without a parent")
	}

	err := errors.New("boom")
	EndSpan(span, &err)
}
