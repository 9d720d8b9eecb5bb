package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	iterations            *prom.CounterVec
	iterationDuration     prom.Histogram
	consecutiveErrors     prom.Gauge
	consecutiveRateLimits prom.Gauge
	gaveUp                prom.Counter
}

// NewPrometheusRecorder constructs and registers the loop metrics on reg.
// A nil registry falls back to a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		iterations: prom.NewCounterVec(prom.CounterOpts{
			Name: "rekindle_iterations_total",
			Help: "Finished loop iterations by classified outcome.",
		}, []string{"outcome"}),
		iterationDuration: prom.NewHistogram(prom.HistogramOpts{
			Name:    "rekindle_iteration_duration_seconds",
			Help:    "Wall-clock duration of one loop iteration.",
			Buckets: prom.ExponentialBuckets(0.1, 2, 12),
		}),
		consecutiveErrors: prom.NewGauge(prom.GaugeOpts{
			Name: "rekindle_consecutive_errors",
			Help: "Current consecutive unexpected-error count in the scheduler.",
		}),
		consecutiveRateLimits: prom.NewGauge(prom.GaugeOpts{
			Name: "rekindle_consecutive_rate_limits",
			Help: "Current consecutive rate-limit count in the scheduler.",
		}),
		gaveUp: prom.NewCounter(prom.CounterOpts{
			Name: "rekindle_gave_up_total",
			Help: "Times the scheduler abandoned the loop after too many errors.",
		}),
	}

	reg.MustRegister(
		pr.iterations,
		pr.iterationDuration,
		pr.consecutiveErrors,
		pr.consecutiveRateLimits,
		pr.gaveUp,
	)
	return pr
}

// IterationFinished records one finished loop iteration.
func (p *PrometheusRecorder) IterationFinished(outcome string, duration time.Duration) {
	p.iterations.WithLabelValues(outcome).Inc()
	p.iterationDuration.Observe(duration.Seconds())
}

// SetConsecutiveErrors reports the scheduler's consecutive error count.
func (p *PrometheusRecorder) SetConsecutiveErrors(n int) {
	p.consecutiveErrors.Set(float64(n))
}

// SetConsecutiveRateLimits reports the scheduler's consecutive rate-limit count.
func (p *PrometheusRecorder) SetConsecutiveRateLimits(n int) {
	p.consecutiveRateLimits.Set(float64(n))
}

// GaveUp records the scheduler abandoning the loop.
func (p *PrometheusRecorder) GaveUp() {
	p.gaveUp.Inc()
}

// Handler returns an http.Handler serving the registry's metrics.
func Handler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Ensure PrometheusRecorder implements Recorder.
var _ Recorder = (*PrometheusRecorder)(nil)
