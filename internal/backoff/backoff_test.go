package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
)

// recordingSleeper captures requested sleep durations without blocking.
type recordingSleeper struct {
	waits []time.Duration
	err   error
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return s.err
}

func testConfig() Config {
	return Config{
		SuccessInterval: 7 * time.Second,
		ErrorInterval:   5 * time.Minute,
		SkippedInterval: 30 * time.Minute,
		MaxErrorRetries: 3,
	}
}

func TestDefaultWaiter_SuccessAndSkipped(t *testing.T) {
	t.Run("success waits the success interval", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		w := New(testConfig(), WithSleeper(sleeper))

		require.NoError(t, w.Success(context.Background()))
		assert.Equal(t, []time.Duration{7 * time.Second}, sleeper.waits)
	})

	t.Run("skipped waits the skipped interval", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		w := New(testConfig(), WithSleeper(sleeper))

		require.NoError(t, w.Skipped(context.Background()))
		assert.Equal(t, []time.Duration{30 * time.Minute}, sleeper.waits)
	})
}

func TestDefaultWaiter_RateLimitCurve(t *testing.T) {
	sleeper := &recordingSleeper{}
	w := New(testConfig(), WithSleeper(sleeper))

	// success × (count + 1), uncapped, never gives up.
	for i := 0; i < 4; i++ {
		require.NoError(t, w.RateLimited(context.Background()))
	}

	expected := []time.Duration{
		14 * time.Second, // count 1
		21 * time.Second, // count 2
		28 * time.Second, // count 3
		35 * time.Second, // count 4
	}
	assert.Equal(t, expected, sleeper.waits)
	assert.Equal(t, 4, w.ConsecutiveRateLimits())
}

func TestDefaultWaiter_ErrorCurveAndGiveUp(t *testing.T) {
	sleeper := &recordingSleeper{}
	w := New(testConfig(), WithSleeper(sleeper))

	// Waits grow strictly until the ceiling is exceeded.
	require.NoError(t, w.Error(context.Background()))
	require.NoError(t, w.Error(context.Background()))
	require.NoError(t, w.Error(context.Background()))

	expected := []time.Duration{
		10 * time.Minute, // count 1
		15 * time.Minute, // count 2
		20 * time.Minute, // count 3
	}
	assert.Equal(t, expected, sleeper.waits)
	for i := 1; i < len(sleeper.waits); i++ {
		assert.Greater(t, sleeper.waits[i], sleeper.waits[i-1], "waits must strictly increase")
	}

	// The call that pushes the counter past MaxErrorRetries gives up
	// without sleeping.
	err := w.Error(context.Background())
	require.ErrorIs(t, err, rkerrors.ErrGaveUp)

	var gaveUp *GaveUpError
	require.ErrorAs(t, err, &gaveUp)
	assert.Equal(t, 4, gaveUp.Errors)
	assert.Len(t, sleeper.waits, 3, "giving up must not sleep")
}

func TestDefaultWaiter_CountersResetTogether(t *testing.T) {
	t.Run("success resets both counters", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		w := New(testConfig(), WithSleeper(sleeper))

		require.NoError(t, w.RateLimited(context.Background()))
		require.NoError(t, w.Error(context.Background()))
		require.NoError(t, w.Success(context.Background()))

		assert.Zero(t, w.ConsecutiveErrors())
		assert.Zero(t, w.ConsecutiveRateLimits())

		// The next waits match the very first calls after construction.
		sleeper.waits = nil
		require.NoError(t, w.RateLimited(context.Background()))
		require.NoError(t, w.Success(context.Background()))
		require.NoError(t, w.Error(context.Background()))
		assert.Equal(t, []time.Duration{
			14 * time.Second, // first rate limit
			7 * time.Second,  // success
			10 * time.Minute, // first error
		}, sleeper.waits)
	})

	t.Run("skipped resets both counters", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		w := New(testConfig(), WithSleeper(sleeper))

		require.NoError(t, w.Error(context.Background()))
		require.NoError(t, w.RateLimited(context.Background()))
		require.NoError(t, w.Skipped(context.Background()))

		assert.Zero(t, w.ConsecutiveErrors())
		assert.Zero(t, w.ConsecutiveRateLimits())
	})

	t.Run("rate limits do not advance the error counter", func(t *testing.T) {
		w := New(testConfig(), WithSleeper(&recordingSleeper{}))

		for i := 0; i < 10; i++ {
			require.NoError(t, w.RateLimited(context.Background()))
		}
		assert.Zero(t, w.ConsecutiveErrors())
	})
}

func TestDefaultWaiter_ContextCancellation(t *testing.T) {
	sleeper := &recordingSleeper{err: context.Canceled}
	w := New(testConfig(), WithSleeper(sleeper))

	assert.ErrorIs(t, w.Success(context.Background()), context.Canceled)
	assert.ErrorIs(t, w.RateLimited(context.Background()), context.Canceled)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 7*time.Second, cfg.SuccessInterval)
	assert.Equal(t, 5*time.Minute, cfg.ErrorInterval)
	assert.Equal(t, 30*time.Minute, cfg.SkippedInterval)
	assert.Equal(t, 10, cfg.MaxErrorRetries)
}
