package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried. It carries no transport
// knowledge; callers decide what to wrap.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(error) bool
}

// DefaultPolicy retries three times with doubling delays.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff:     ExponentialBackoff(100*time.Millisecond, 2*time.Second),
		Retryable:   func(error) bool { return true },
	}
}

// ExponentialBackoff doubles the base delay per attempt, capped at max.
// attempt is zero-based.
func ExponentialBackoff(base, max time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base << uint(attempt)
		if d > max || d <= 0 {
			return max
		}
		return d
	}
}

// Do runs fn until it succeeds, the policy is exhausted, or the error is
// not retryable. The last error is returned.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff(attempt)):
		}
	}
	return err
}
