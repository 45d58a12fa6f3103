package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	calls := 0
	p := Policy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return time.Millisecond },
		Retryable:   func(error) bool { return true },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return errors.New("transient")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoSucceedsAfterRetry(t *testing.T) {
	calls := 0
	p := Policy{
		MaxAttempts: 5,
		Backoff:     func(int) time.Duration { return time.Millisecond },
		Retryable:   func(error) bool { return true },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	p := Policy{
		MaxAttempts: 5,
		Backoff:     func(int) time.Duration { return time.Millisecond },
		Retryable:   func(err error) bool { return !errors.Is(err, permanent) },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Policy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return time.Minute },
		Retryable:   func(error) bool { return true },
	}

	err := p.Do(ctx, func() error { return errors.New("transient") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(100*time.Millisecond, time.Second)

	assert.Equal(t, 100*time.Millisecond, b(0))
	assert.Equal(t, 200*time.Millisecond, b(1))
	assert.Equal(t, 400*time.Millisecond, b(2))
	assert.Equal(t, time.Second, b(10))
	assert.Equal(t, time.Second, b(200))
}
