package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "Now() should not be before the test started")
	assert.False(t, got.After(after), "Now() should not be after the test finished")
}

func TestRealClock_Sleep(t *testing.T) {
	t.Run("returns after duration", func(t *testing.T) {
		c := RealClock{}

		start := time.Now()
		err := c.Sleep(context.Background(), 10*time.Millisecond)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	})

	t.Run("zero duration returns immediately", func(t *testing.T) {
		c := RealClock{}
		require.NoError(t, c.Sleep(context.Background(), 0))
	})

	t.Run("canceled context ends wait early", func(t *testing.T) {
		c := RealClock{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := c.Sleep(ctx, time.Hour)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, elapsed, time.Second)
	})
}
