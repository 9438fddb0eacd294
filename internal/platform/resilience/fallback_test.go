package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errMissing = errors.New("missing")

func TestFallback_PrimarySuccessSkipsSecondary(t *testing.T) {
	t.Parallel()

	secondaryCalled := false
	got, err := Fallback(context.Background(), time.Second,
		func(context.Context) (string, error) { return "primary", nil },
		func(context.Context) (string, error) {
			secondaryCalled = true
			return "secondary", nil
		},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "primary" || secondaryCalled {
		t.Fatalf("got %q secondaryCalled=%v", got, secondaryCalled)
	}
}

func TestFallback_PrimaryTimeoutUsesSecondary(t *testing.T) {
	t.Parallel()

	got, err := Fallback(context.Background(), 10*time.Millisecond,
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
		func(context.Context) (string, error) { return "secondary", nil },
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "secondary" {
		t.Fatalf("expected secondary value, got %q", got)
	}
}

func TestFallback_FinalErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	secondaryCalled := false
	_, err := Fallback(context.Background(), time.Second,
		func(context.Context) (int, error) { return 0, errMissing },
		func(context.Context) (int, error) {
			secondaryCalled = true
			return 1, nil
		},
		func(err error) bool { return errors.Is(err, errMissing) },
	)
	if !errors.Is(err, errMissing) {
		t.Fatalf("expected errMissing, got %v", err)
	}
	if secondaryCalled {
		t.Fatalf("secondary must not run for final errors")
	}
}

func TestFallback_BothFailWrapsErrors(t *testing.T) {
	t.Parallel()

	primaryErr := errors.New("pg down")
	secondaryErr := errors.New("rest down")
	_, err := Fallback(context.Background(), time.Second,
		func(context.Context) (int, error) { return 0, primaryErr },
		func(context.Context) (int, error) { return 0, secondaryErr },
		nil,
	)
	if !errors.Is(err, primaryErr) || !errors.Is(err, secondaryErr) {
		t.Fatalf("expected both errors wrapped, got %v", err)
	}
}

func TestFallback_CallerCancellationStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	secondaryCalled := false
	_, err := Fallback(ctx, time.Second,
		func(ctx context.Context) (int, error) { return 0, ctx.Err() },
		func(context.Context) (int, error) {
			secondaryCalled = true
			return 1, nil
		},
		nil,
	)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if secondaryCalled {
		t.Fatalf("secondary must not run after caller cancellation")
	}
}
