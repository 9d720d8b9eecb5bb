package metrics

import (
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	// Must not panic; the loop uses it by default.
	var r Recorder = NoopRecorder{}
	r.IterationFinished(OutcomeSuccess, time.Second)
	r.SetConsecutiveErrors(3)
	r.SetConsecutiveRateLimits(1)
	r.GaveUp()
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IterationFinished(OutcomeSuccess, 2*time.Second)
	r.IterationFinished(OutcomeSuccess, time.Second)
	r.IterationFinished(OutcomeRateLimited, time.Second)
	r.SetConsecutiveErrors(4)
	r.SetConsecutiveRateLimits(2)
	r.GaveUp()

	expected := `
		# HELP rekindle_iterations_total Finished loop iterations by classified outcome.
		# TYPE rekindle_iterations_total counter
		rekindle_iterations_total{outcome="rate_limited"} 1
		rekindle_iterations_total{outcome="success"} 2
	`
	require.NoError(t, testutil.CollectAndCompare(r.iterations, strings.NewReader(expected)))

	assert.InDelta(t, 4, testutil.ToFloat64(r.consecutiveErrors), 0.0001)
	assert.InDelta(t, 2, testutil.ToFloat64(r.consecutiveRateLimits), 0.0001)
	assert.InDelta(t, 1, testutil.ToFloat64(r.gaveUp), 0.0001)
}

func TestNewPrometheusRecorder_NilRegistry(t *testing.T) {
	r := NewPrometheusRecorder(nil)
	require.NotNil(t, r)
	r.IterationFinished(OutcomeError, time.Second)
}
