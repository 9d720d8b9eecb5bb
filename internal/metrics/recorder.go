// Package metrics provides observability for the keep-alive loop.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks and costs
// nothing when disabled. The Prometheus implementation is activated by the
// run command when a metrics listen address is configured.
package metrics

import "time"

// Iteration outcome label values reported to the Recorder.
const (
	// OutcomeSuccess is a pushed iteration.
	OutcomeSuccess = "success"
	// OutcomeSkipped is an iteration that found nothing to do.
	OutcomeSkipped = "skipped"
	// OutcomeRateLimited is an iteration stopped by the remote rate limit.
	OutcomeRateLimited = "rate_limited"
	// OutcomePushRecovered is a failed push followed by local history repair.
	OutcomePushRecovered = "push_recovered"
	// OutcomeError is any other failed iteration.
	OutcomeError = "error"
)

// Recorder receives measurements from the control loop and the backoff
// scheduler. Implementations must be safe for use from a single goroutine;
// the loop is fully sequential.
type Recorder interface {
	// IterationFinished records one finished loop iteration with its
	// classified outcome and wall-clock duration.
	IterationFinished(outcome string, duration time.Duration)

	// SetConsecutiveErrors reports the scheduler's consecutive error count.
	SetConsecutiveErrors(n int)

	// SetConsecutiveRateLimits reports the scheduler's consecutive
	// rate-limit count.
	SetConsecutiveRateLimits(n int)

	// GaveUp records the scheduler abandoning the loop.
	GaveUp()
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// IterationFinished does nothing.
func (NoopRecorder) IterationFinished(string, time.Duration) {}

// SetConsecutiveErrors does nothing.
func (NoopRecorder) SetConsecutiveErrors(int) {}

// SetConsecutiveRateLimits does nothing.
func (NoopRecorder) SetConsecutiveRateLimits(int) {}

// GaveUp does nothing.
func (NoopRecorder) GaveUp() {}

// Ensure NoopRecorder implements Recorder.
var _ Recorder = NoopRecorder{}
