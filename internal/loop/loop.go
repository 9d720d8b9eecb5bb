package loop

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rekindle-bot/rekindle/internal/backoff"
	"github.com/rekindle-bot/rekindle/internal/clock"
	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
	"github.com/rekindle-bot/rekindle/internal/git"
	"github.com/rekindle-bot/rekindle/internal/metrics"
	"github.com/rekindle-bot/rekindle/internal/schedule"
)

// IterationRunner performs one full iteration for a label. Satisfied by
// *Orchestrator.
type IterationRunner interface {
	CauseNewRun(ctx context.Context, label string, prependPull bool) (bool, error)
}

// Loop drives iterations until the context ends, the backoff scheduler gives
// up, the working directory cannot be restored, or the label schedule runs
// out.
//
// The loop carries a single piece of state between iterations: a divergence
// flag, set when a push fails for a reason other than rate limiting. The flag
// makes the next iteration pull first so a local history that has drifted
// from the remote is repaired by taking the remote's. A successful push
// clears it; every other outcome leaves it alone, so the pull keeps being
// retried until a push settles the question.
type Loop struct {
	iteration IterationRunner
	runner    git.Runner
	labels    schedule.Provider
	waiter    backoff.Waiter
	clock     clock.Clock
	recorder  metrics.Recorder
	logger    zerolog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopLogger sets the logger; each iteration derives a sublogger with a
// fresh run id from it.
func WithLoopLogger(logger zerolog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithLoopClock replaces the time source used to measure iteration duration.
func WithLoopClock(c clock.Clock) LoopOption {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithLoopRecorder sets the metrics recorder.
func WithLoopRecorder(r metrics.Recorder) LoopOption {
	return func(l *Loop) {
		l.recorder = r
	}
}

// NewLoop creates a Loop. The runner is only used for the push-failure
// recovery reset; all regular git work goes through the iteration runner.
func NewLoop(iteration IterationRunner, runner git.Runner, labels schedule.Provider, waiter backoff.Waiter, opts ...LoopOption) *Loop {
	l := &Loop{
		iteration: iteration,
		runner:    runner,
		labels:    labels,
		waiter:    waiter,
		clock:     clock.RealClock{},
		recorder:  metrics.NoopRecorder{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run iterates until a terminal condition and reports why it stopped. It
// never returns nil: the loop's purpose is to run forever, so every return is
// a failure of some kind (including plain context cancellation).
func (l *Loop) Run(ctx context.Context) error {
	diverged := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		label, err := l.labels.Current()
		if err != nil {
			l.logger.Error().Err(err).Msg("no active run label, shutting down")
			return rkerrors.Wrap(err, "determining run label")
		}

		logger := l.logger.With().
			Str("run_id", uuid.NewString()).
			Str("label", label).
			Logger()
		logger.Info().Bool("pull_first", diverged).Msg("causing new run")

		start := l.clock.Now()
		pushed, err := l.iteration.CauseNewRun(ctx, label, diverged)
		elapsed := l.clock.Now().Sub(start)

		switch {
		case err == nil && pushed:
			diverged = false
			l.recorder.IterationFinished(metrics.OutcomeSuccess, elapsed)
			logger.Info().Msg("caused new run")
			if err := l.waiter.Success(ctx); err != nil {
				return err
			}

		case err == nil:
			l.recorder.IterationFinished(metrics.OutcomeSkipped, elapsed)
			logger.Info().Msg("nothing to change, skipping this run")
			if err := l.waiter.Skipped(ctx); err != nil {
				return err
			}

		case errors.Is(err, rkerrors.ErrResetFiles):
			// Without a clean working directory every later iteration
			// would commit garbage, so this one is fatal.
			l.recorder.IterationFinished(metrics.OutcomeError, elapsed)
			logger.Error().Err(err).Msg("resetting the working directory failed, shutting down")
			return err

		case errors.Is(err, rkerrors.ErrRateLimited):
			// The divergence flag stays untouched: a rate-limited attempt
			// says nothing about whether histories match.
			l.recorder.IterationFinished(metrics.OutcomeRateLimited, elapsed)
			logger.Warn().Err(err).Msg("remote rate limit reached")
			if err := l.waiter.RateLimited(ctx); err != nil {
				return err
			}

		case errors.Is(err, rkerrors.ErrPush):
			l.recoverFailedPush(ctx, logger)
			diverged = true
			l.recorder.IterationFinished(metrics.OutcomePushRecovered, elapsed)
			logger.Warn().Err(err).
				Msg("push failed for a reason other than rate limiting, pulling first next time in case the histories diverged")
			// A failed push is most likely the remote refusing the new
			// history, which the pull-retry cadence fits better than the
			// harsher error curve.
			if err := l.waiter.RateLimited(ctx); err != nil {
				return err
			}

		default:
			l.recorder.IterationFinished(metrics.OutcomeError, elapsed)
			logger.Error().Err(err).Msg("run attempt failed")
			if err := l.waiter.Error(ctx); err != nil {
				return err
			}
		}
	}
}

// recoverFailedPush drops the just-created local commit so the next iteration
// starts from the last state the remote knew about. Failure here is only
// logged; the reset --hard opening the next iteration gets another chance to
// clean up.
func (l *Loop) recoverFailedPush(ctx context.Context, logger zerolog.Logger) {
	if err := l.runner.ResetLastCommit(ctx); err != nil {
		logger.Error().Err(err).Msg("reverting the unpushed commit failed")
		return
	}
	logger.Info().Msg("reverted the unpushed commit")
}

var _ IterationRunner = (*Orchestrator)(nil)
