package processing

import (
	"context"
	"errors"
	"time"

	"pr_tracker/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

// newBackoff adapts a RetryConfig to a go-retry backoff.
// It stops after cfg.MaxAttempts total attempts.
func newBackoff(cfg config.RetryConfig) retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		if attempt >= cfg.MaxAttempts {
			return 0, true
		}
		return cfg.Backoff(attempt), false
	})
}

// withRetry runs fn until it succeeds, attempts run out, or ctx is done.
// Each attempt gets its own deadline when cfg.Timeout is set.
func withRetry[T any](ctx context.Context, operation string, cfg config.RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	return retry.DoValue(ctx, newBackoff(cfg), func(ctx context.Context) (T, error) {
		attempt++

		attemptCtx := ctx
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		v, err := fn(attemptCtx)
		if err == nil {
			return v, nil
		}

		// the caller gave up; retrying cannot help
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return v, err
		}

		log.Warn().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt).
			Int("max_attempts", cfg.MaxAttempts).
			Msg("Operation failed")

		return v, retry.RetryableError(err)
	})
}
