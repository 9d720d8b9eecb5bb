// Package loop contains the keep-alive core: the per-iteration orchestrator
// and the control loop that drives it forever.
//
// One iteration is reset → (optional pull) → edit → add → commit → push. The
// control loop classifies how the iteration ended, repairs local state after
// failed pushes, and consults the backoff scheduler before going again.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rekindle-bot/rekindle/internal/clock"
	"github.com/rekindle-bot/rekindle/internal/constants"
	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
	"github.com/rekindle-bot/rekindle/internal/git"
)

// ChangeMaker makes the per-iteration file edit. It reports whether any
// change was made; false means the iteration has nothing to commit and is
// skipped without touching git further.
type ChangeMaker interface {
	MakeChanges(label string) (bool, error)
}

// Orchestrator sequences one iteration of work against a single working
// directory. It performs no retries; classification and backoff happen in
// the control loop.
type Orchestrator struct {
	runner       git.Runner
	changes      ChangeMaker
	sleeper      clock.Sleeper
	logger       zerolog.Logger
	prePushDelay time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithSleeper replaces the sleeper used for the pre-push delay, mainly for
// tests.
func WithSleeper(s clock.Sleeper) OrchestratorOption {
	return func(o *Orchestrator) {
		o.sleeper = s
	}
}

// WithLogger sets the logger for iteration steps.
func WithLogger(logger zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithPrePushDelay overrides the pause between a pull-driven commit and its
// push.
func WithPrePushDelay(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.prePushDelay = d
	}
}

// NewOrchestrator creates an Orchestrator over the given git runner and edit
// operation.
func NewOrchestrator(runner git.Runner, changes ChangeMaker, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		runner:       runner,
		changes:      changes,
		sleeper:      clock.RealClock{},
		logger:       zerolog.Nop(),
		prePushDelay: constants.PrePushDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CauseNewRun performs one full iteration for the given label. It returns
// true when a push happened and false when the edit found nothing to do.
//
// Each step short-circuits into its own sentinel (ErrResetFiles, ErrPull,
// ErrMakeChanges, ErrAddAll, ErrCommit, ErrPush). A rate-limited pull or
// push is surfaced as the bare rate-limit error, independent of which step
// hit it, so the caller can match ErrRateLimited without caring about steps.
//
// When prependPull is set, the pull lets a diverged local history be fixed by
// taking the server's, and the push is delayed by a short fixed pause to stay
// out of the rate-limit window that follows a pull-driven commit.
func (o *Orchestrator) CauseNewRun(ctx context.Context, label string, prependPull bool) (bool, error) {
	o.logger.Debug().Msg("start causing new server run")

	if err := o.runner.ResetHard(ctx); err != nil {
		return false, fmt.Errorf("%w: %w", rkerrors.ErrResetFiles, err)
	}
	o.logger.Debug().Msg("git reset local directory")

	if prependPull {
		if err := o.runner.Pull(ctx); err != nil {
			return false, wrapServerErr(err, rkerrors.ErrPull)
		}
		o.logger.Info().Msg("git pull from remote")
	}

	changed, err := o.changes.MakeChanges(label)
	if err != nil {
		return false, fmt.Errorf("%w: %w", rkerrors.ErrMakeChanges, err)
	}
	if !changed {
		return false, nil
	}

	if err := o.runner.AddAll(ctx); err != nil {
		return false, fmt.Errorf("%w: %w", rkerrors.ErrAddAll, err)
	}
	o.logger.Debug().Msg("git add local changes")

	if err := o.runner.Commit(ctx, commitMessage(label)); err != nil {
		return false, fmt.Errorf("%w: %w", rkerrors.ErrCommit, err)
	}

	if prependPull {
		o.logger.Debug().
			Dur("delay", o.prePushDelay).
			Msg("git commit local changes, delaying push")
		if err := o.sleeper.Sleep(ctx, o.prePushDelay); err != nil {
			return false, err
		}
	} else {
		o.logger.Debug().Msg("git commit local changes")
	}

	if err := o.runner.Push(ctx); err != nil {
		return false, wrapServerErr(err, rkerrors.ErrPush)
	}
	o.logger.Debug().Msg("git push to remote")

	return true, nil
}

// commitMessage identifies the label and marks the commit as automatic.
func commitMessage(label string) string {
	return fmt.Sprintf("[automatic] push for rerun of %s", label)
}

// wrapServerErr wraps a server-command failure with its step sentinel, but
// lets rate-limit errors pass through bare so the caller sees the limit
// independent of the step that hit it.
func wrapServerErr(err error, step error) error {
	if errors.Is(err, rkerrors.ErrRateLimited) {
		return err
	}
	return fmt.Errorf("%w: %w", step, err)
}
