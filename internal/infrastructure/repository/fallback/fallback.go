// Package fallback serves reads from a primary store and retries them
// against a secondary transport when the primary fails or is too slow.
// Writes always go to the primary.
package fallback

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

type Config struct {
	Timeout time.Duration
	// Breaker guards the primary. While it is open, reads skip straight to
	// the secondary.
	Breaker *resilience.CircuitBreaker
	Logger  *logging.Logger
}

type reader struct {
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func newReader(cfg Config) reader {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return reader{timeout: cfg.Timeout, breaker: cfg.Breaker, logger: cfg.Logger}
}

type found[T any] struct {
	value  T
	exists bool
}

func read[T any](ctx context.Context, r reader, op string, primary, secondary func(context.Context) (T, error)) (T, error) {
	guarded := func(ctx context.Context) (T, error) {
		var out T
		err := r.breaker.Run(func() error {
			var err error
			out, err = primary(ctx)
			return err
		}, countsAgainstPrimary)
		if err != nil {
			r.logger.WarnContext(ctx, "primary read failed, using secondary",
				"operation", op,
				"timeout", resilience.IsTimeout(err),
				"error", err,
			)
		}
		return out, err
	}
	return resilience.Fallback(ctx, r.timeout, guarded, secondary, isFinal)
}

// isFinal keeps caller cancellation from triggering a second read.
func isFinal(err error) bool {
	return errors.Is(err, context.Canceled)
}

func countsAgainstPrimary(err error) bool {
	return !errors.Is(err, context.Canceled)
}
