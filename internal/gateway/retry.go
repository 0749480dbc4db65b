package gateway

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// retryPolicy bounds transient-failure retries for one class of call. Image
// synthesis gets a much shorter budget than text since each attempt is
// costly; both budgets cap the total attempt count, never the run.
type retryPolicy struct {
	attempts int
	base     time.Duration
	max      time.Duration
}

var (
	textRetry  = retryPolicy{attempts: 8, base: 2 * time.Second, max: 120 * time.Second}
	imageRetry = retryPolicy{attempts: 3, base: 1 * time.Second, max: 10 * time.Second}
)

func (p retryPolicy) do(ctx context.Context, logger *zap.Logger, label string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if attempt > 1 {
			delay := p.base << uint(attempt-2)
			if delay > p.max {
				delay = p.max
			}
			logger.Warn("retrying model call",
				zap.String("call", label),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		// Cancellation is not transient
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
	}
	return lastErr
}
