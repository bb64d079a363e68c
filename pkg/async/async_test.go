package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns the computation result", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

		result, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.True(t, future.IsComplete())
	})

	t.Run("propagates the computation error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		future := async.Async(context.Background(), "in", func(_ context.Context, _ string) (string, error) {
			return "", boom
		})

		_, err := future.Await()
		require.ErrorIs(t, err, boom)
	})

	t.Run("pre-canceled context short-circuits", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		invoked := false
		future := async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) {
			invoked = true
			return 1, nil
		})

		_, err := future.Await()
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, invoked)
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		blocked := make(chan struct{})
		future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
			<-blocked
			return 1, nil
		})

		_, err := future.AwaitWithTimeout(10 * time.Millisecond)
		require.ErrorIs(t, err, async.ErrTimeout)
		close(blocked)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects all results in order", func(t *testing.T) {
		t.Parallel()

		double := func(_ context.Context, n int) (int, error) { return n * 2, nil }
		results, err := async.WaitAll(
			async.Async(context.Background(), 1, double),
			async.Async(context.Background(), 2, double),
			async.Async(context.Background(), 3, double),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, results)
	})

	t.Run("returns the first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := async.WaitAll(
			async.Async(context.Background(), 1, func(_ context.Context, n int) (int, error) { return n, nil }),
			async.Async(context.Background(), 2, func(_ context.Context, _ int) (int, error) { return 0, boom }),
		)
		require.ErrorIs(t, err, boom)
	})
}
