package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return nil
		}, 3, time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after retries", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when all attempts fail", func(t *testing.T) {
		calls := 0
		lastErr := errors.New("persistent")
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return lastErr
		}, 3, time.Millisecond)

		require.Error(t, err)
		assert.Equal(t, lastErr, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("invalid max attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := RetryWithBackoff(cancelled, func() error {
			calls++
			return errors.New("never reached")
		}, 3, time.Millisecond)

		assert.Equal(t, context.Canceled, err)
		assert.Zero(t, calls)
	})

	t.Run("cancellation during backoff", func(t *testing.T) {
		timeout, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := RetryWithBackoff(timeout, func() error {
			return errors.New("always fails")
		}, 5, time.Second)

		assert.Equal(t, context.DeadlineExceeded, err)
	})
}
