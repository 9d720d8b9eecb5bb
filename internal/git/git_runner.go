// Package git provides the git CLI layer for rekindle.
// This file implements the CLIRunner which wraps git CLI commands.
package git

import (
	"context"
	"fmt"

	"github.com/rekindle-bot/rekindle/internal/constants"
	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
)

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string // Working directory for git commands
	remote  string
	branch  string
	exec    Execer
}

// CLIRunnerOption configures a CLIRunner.
type CLIRunnerOption func(*CLIRunner)

// WithExecer replaces the process runner, mainly for tests.
func WithExecer(e Execer) CLIRunnerOption {
	return func(r *CLIRunner) {
		r.exec = e
	}
}

// WithRemote sets the remote name pushed to and pulled from.
func WithRemote(remote string) CLIRunnerOption {
	return func(r *CLIRunner) {
		r.remote = remote
	}
}

// WithBranch sets the branch pushed to and pulled from.
func WithBranch(branch string) CLIRunnerOption {
	return func(r *CLIRunner) {
		r.branch = branch
	}
}

// NewRunner creates a CLIRunner for the given working directory.
// Returns an error if the directory is not a git repository.
func NewRunner(ctx context.Context, workDir string, opts ...CLIRunnerOption) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", rkerrors.ErrEmptyValue)
	}

	r := &CLIRunner{
		workDir: workDir,
		remote:  constants.DefaultRemote,
		branch:  constants.DefaultBranch,
		exec:    SystemExecer{},
	}
	for _, opt := range opts {
		opt(r)
	}

	// Verify this is a git repository
	if err := r.runLocal(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %w", rkerrors.ErrNotGitRepo, err)
	}

	return r, nil
}

// ResetHard discards all uncommitted local changes.
func (r *CLIRunner) ResetHard(ctx context.Context) error {
	return r.runLocal(ctx, "reset", "--hard")
}

// ResetLastCommit drops the last local commit while keeping the working tree.
func (r *CLIRunner) ResetLastCommit(ctx context.Context) error {
	return r.runLocal(ctx, "reset", "HEAD~")
}

// AddAll stages every change in the working directory.
func (r *CLIRunner) AddAll(ctx context.Context) error {
	return r.runLocal(ctx, "add", "--all")
}

// Commit creates a commit with the given message.
func (r *CLIRunner) Commit(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("commit message cannot be empty: %w", rkerrors.ErrEmptyValue)
	}
	return r.runLocal(ctx, "commit", "-m", message)
}

// Pull fetches and merges the configured remote branch.
func (r *CLIRunner) Pull(ctx context.Context) error {
	return r.runServer(ctx, "pull", r.remote, r.branch)
}

// Push uploads local commits to the configured remote branch.
func (r *CLIRunner) Push(ctx context.Context) error {
	return r.runServer(ctx, "push", r.remote, r.branch)
}

// runLocal makes a single attempt at a git command that does not talk to the
// server. A non-zero exit becomes a CommandError; a launch failure is wrapped
// with ErrGitLaunch and is never rate-limit eligible.
func (r *CLIRunner) runLocal(ctx context.Context, args ...string) error {
	res, err := r.exec.Run(ctx, r.workDir, args...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: git %s: %w", rkerrors.ErrGitLaunch, args[0], err)
	}
	if res.ExitCode != 0 {
		return &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// runServer is runLocal plus rate-limit detection for commands that talk to
// the remote. The signature check runs before the generic failure is built,
// so a rate-limited push or pull never surfaces as a CommandError.
func (r *CLIRunner) runServer(ctx context.Context, args ...string) error {
	res, err := r.exec.Run(ctx, r.workDir, args...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: git %s: %w", rkerrors.ErrGitLaunch, args[0], err)
	}

	switch Classify(res.ExitCode, res.Stderr) {
	case OutcomeSuccess:
		return nil
	case OutcomeRateLimited:
		return &RateLimitError{Stderr: res.Stderr}
	default:
		return &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
}

// Ensure CLIRunner implements Runner.
var _ Runner = (*CLIRunner)(nil)
