// Package backoff implements the adaptive wait scheduler consulted between
// loop iterations. The scheduler owns the consecutive-error and
// consecutive-rate-limit counters; the wait after an iteration depends on how
// the iteration ended and on how the previous ones ended.
package backoff

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rekindle-bot/rekindle/internal/clock"
	"github.com/rekindle-bot/rekindle/internal/constants"
	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
	"github.com/rekindle-bot/rekindle/internal/metrics"
)

// GaveUpError reports that the scheduler stopped retrying after too many
// consecutive unexpected errors. It carries the final counter value.
// Matches errors.Is(err, errors.ErrGaveUp).
type GaveUpError struct {
	// Errors is the consecutive error count at the moment of giving up.
	Errors int
}

// Error implements the error interface.
func (e *GaveUpError) Error() string {
	return fmt.Sprintf("after %d consecutive errors the waiting process gave up", e.Errors)
}

// Unwrap lets errors.Is(err, errors.ErrGaveUp) succeed.
func (e *GaveUpError) Unwrap() error {
	return rkerrors.ErrGaveUp
}

// Waiter decides how long to wait before the next loop iteration, based on
// how the last one ended. Implementations are free to keep internal counters.
//
// All methods block for the chosen duration; a context error ends the wait
// early and is returned as-is. Error additionally returns a GaveUpError when
// the consecutive-error ceiling is exceeded.
type Waiter interface {
	// Success means the last run pushed; wait the base interval.
	Success(ctx context.Context) error
	// Skipped means the last run had nothing to do; wait the skip interval.
	Skipped(ctx context.Context) error
	// RateLimited means the remote limit was hit; wait increasingly longer.
	RateLimited(ctx context.Context) error
	// Error means an unexpected but recoverable error occurred; wait or
	// give up.
	Error(ctx context.Context) error
}

// Config holds the wait intervals and the error ceiling for DefaultWaiter.
type Config struct {
	// SuccessInterval is the wait after a successful run. It is also the
	// base of the rate-limit curve.
	SuccessInterval time.Duration
	// ErrorInterval is the base wait after an unexpected error.
	ErrorInterval time.Duration
	// SkippedInterval is the wait after a run with nothing to do.
	SkippedInterval time.Duration
	// MaxErrorRetries is how many consecutive unexpected errors are
	// tolerated before giving up. Rate limits never count against it.
	MaxErrorRetries int
}

// DefaultConfig returns the standard wait configuration.
func DefaultConfig() Config {
	return Config{
		SuccessInterval: constants.DefaultSuccessInterval,
		ErrorInterval:   constants.DefaultErrorInterval,
		SkippedInterval: constants.DefaultSkippedInterval,
		MaxErrorRetries: constants.DefaultMaxErrorRetries,
	}
}

// DefaultWaiter implements Waiter with linear, uncapped back-off curves.
//
// Rate limits scale the success interval and never give up: remote limits are
// expected to resolve on their own. Unexpected errors scale the error
// interval and have a hard ceiling, because repeated unexpected errors likely
// indicate a persistent misconfiguration that must be surfaced rather than
// retried forever.
type DefaultWaiter struct {
	cfg      Config
	sleeper  clock.Sleeper
	logger   zerolog.Logger
	recorder metrics.Recorder

	consecutiveErrors int
	consecutiveLimits int
}

// Option configures a DefaultWaiter.
type Option func(*DefaultWaiter)

// WithSleeper replaces the sleeper, mainly for tests.
func WithSleeper(s clock.Sleeper) Option {
	return func(w *DefaultWaiter) {
		w.sleeper = s
	}
}

// WithLogger sets the logger for wait decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *DefaultWaiter) {
		w.logger = logger
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(w *DefaultWaiter) {
		w.recorder = r
	}
}

// New creates a DefaultWaiter with both counters at zero.
func New(cfg Config, opts ...Option) *DefaultWaiter {
	w := &DefaultWaiter{
		cfg:      cfg,
		sleeper:  clock.RealClock{},
		logger:   zerolog.Nop(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Success clears both counters and waits the success interval.
func (w *DefaultWaiter) Success(ctx context.Context) error {
	w.resetCounters()
	return w.wait(ctx, "success", w.cfg.SuccessInterval)
}

// Skipped clears both counters and waits the skipped interval.
func (w *DefaultWaiter) Skipped(ctx context.Context) error {
	w.resetCounters()
	return w.wait(ctx, "skipped", w.cfg.SkippedInterval)
}

// RateLimited increments the rate-limit counter and waits
// SuccessInterval × (count + 1). The curve is uncapped and never gives up.
// If SuccessInterval is small this fires often; the linear growth keeps the
// overall process from hammering a limited server.
func (w *DefaultWaiter) RateLimited(ctx context.Context) error {
	w.consecutiveLimits++
	w.recorder.SetConsecutiveRateLimits(w.consecutiveLimits)
	w.logger.Warn().
		Int("consecutive_limits", w.consecutiveLimits).
		Msg("server limit reached")
	return w.wait(ctx, "limit-reached", w.cfg.SuccessInterval*time.Duration(w.consecutiveLimits+1))
}

// Error increments the error counter. Once the counter exceeds
// MaxErrorRetries it returns a GaveUpError without waiting; otherwise it
// waits ErrorInterval × (count + 1).
func (w *DefaultWaiter) Error(ctx context.Context) error {
	w.consecutiveErrors++
	w.recorder.SetConsecutiveErrors(w.consecutiveErrors)

	if w.consecutiveErrors > w.cfg.MaxErrorRetries {
		w.logger.Error().
			Int("errors", w.consecutiveErrors).
			Int("max_retries", w.cfg.MaxErrorRetries).
			Msg("maximum number of allowed retries exceeded, giving up")
		w.recorder.GaveUp()
		return &GaveUpError{Errors: w.consecutiveErrors}
	}

	dur := w.cfg.ErrorInterval * time.Duration(w.consecutiveErrors+1)
	w.logger.Warn().
		Int("retry", w.consecutiveErrors).
		Int("max_retries", w.cfg.MaxErrorRetries).
		Dur("wait", dur).
		Msg("unexpected error, backing off")
	return w.wait(ctx, "error", dur)
}

// ConsecutiveErrors returns the current consecutive error count.
func (w *DefaultWaiter) ConsecutiveErrors() int {
	return w.consecutiveErrors
}

// ConsecutiveRateLimits returns the current consecutive rate-limit count.
func (w *DefaultWaiter) ConsecutiveRateLimits() int {
	return w.consecutiveLimits
}

// resetCounters zeroes both counters together. Partial resets are not
// permitted; success and skip always clear the full backoff state.
func (w *DefaultWaiter) resetCounters() {
	w.consecutiveErrors = 0
	w.consecutiveLimits = 0
	w.recorder.SetConsecutiveErrors(0)
	w.recorder.SetConsecutiveRateLimits(0)
}

func (w *DefaultWaiter) wait(ctx context.Context, status string, d time.Duration) error {
	w.logger.Debug().
		Str("status", status).
		Dur("wait", d).
		Msg("waiting until next run")
	return w.sleeper.Sleep(ctx, d)
}

// Ensure DefaultWaiter implements Waiter.
var _ Waiter = (*DefaultWaiter)(nil)
