// Package retry runs an operation until it succeeds or the attempt
// budget is exhausted, backing off exponentially between attempts.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds the retry loop.
type Policy struct {
	MaxAttempts       int
	BaseDelay         time.Duration
	BackoffMultiplier float64
}

// DefaultPolicy matches the session-cleanup behavior: five attempts
// starting at 500ms and doubling.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 5, BaseDelay: 500 * time.Millisecond, BackoffMultiplier: 2}
}

// Do invokes fn until it returns nil, the policy budget runs out, or
// the context is cancelled. The last error is returned on failure.
func Do(ctx context.Context, p Policy, fn func() error) error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry: MaxAttempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.BackoffMultiplier <= 0 {
		p.BackoffMultiplier = 1
	}

	delay := p.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * p.BackoffMultiplier)
	}

	return fmt.Errorf("retry: budget exhausted after %d attempts: %w", p.MaxAttempts, lastErr)
}
