package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Fallback runs primary under a per-call deadline derived from ctx. When
// primary fails or times out, secondary runs with the caller's ctx. Errors
// for which final returns true (not-found style answers) are returned as-is
// without trying secondary.
func Fallback[T any](
	ctx context.Context,
	timeout time.Duration,
	primary func(context.Context) (T, error),
	secondary func(context.Context) (T, error),
	final func(error) bool,
) (T, error) {
	if secondary == nil {
		return primary(ctx)
	}

	callCtx := ctx
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	value, err := primary(callCtx)
	cancel()
	if err == nil {
		return value, nil
	}
	if final != nil && final(err) {
		return value, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return value, ctxErr
	}

	value, secondaryErr := secondary(ctx)
	if secondaryErr != nil {
		var zero T
		return zero, fmt.Errorf("primary: %w; secondary: %w", err, secondaryErr)
	}
	return value, nil
}

// IsTimeout reports whether err came from an exceeded deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
