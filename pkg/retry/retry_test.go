package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/pkg/retry"
)

var errTemporary = errors.New("temporary")

func TestDoWithResult(t *testing.T) {
	fast := retry.ConstantBackoff(time.Millisecond)

	t.Run("Should return the first successful result", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(context.Background(), retry.Config{MaxAttempts: 3, Backoff: fast},
			func(context.Context) (int, error) {
				calls++
				if calls < 2 {
					return 0, errTemporary
				}
				return 42, nil
			})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 2, calls)
	})

	t.Run("Should return the last error after all attempts", func(t *testing.T) {
		calls := 0
		_, err := retry.DoWithResult(context.Background(), retry.Config{MaxAttempts: 3, Backoff: fast},
			func(context.Context) (int, error) {
				calls++
				return 0, errTemporary
			})

		require.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 3, calls)
	})

	t.Run("Should stop on an error that is not retryable", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0
		_, err := retry.DoWithResult(context.Background(), retry.Config{
			MaxAttempts: 5,
			Backoff:     fast,
			ShouldRetry: func(err error) bool { return !errors.Is(err, permanent) },
		}, func(context.Context) (int, error) {
			calls++
			return 0, permanent
		})

		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("Should not call fn with a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := retry.Do(ctx, retry.Config{}, func(context.Context) error {
			t.Fatal("fn must not be called")
			return nil
		})

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Should give up waiting when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := retry.Do(ctx, retry.Config{MaxAttempts: 3, Backoff: retry.ConstantBackoff(time.Second)},
			func(context.Context) error { return errTemporary })

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.ErrorIs(t, err, errTemporary)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(10 * time.Millisecond)

	for attempt := 1; attempt <= 4; attempt++ {
		base := (1 << attempt) * 10 * time.Millisecond
		got := b(attempt)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/2)
	}
}
