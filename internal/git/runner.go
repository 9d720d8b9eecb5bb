// Package git provides the git CLI layer for rekindle.
// This file defines the Runner interface for the git operations the
// control loop drives.
package git

import "context"

// Runner defines the git operations one keep-alive iteration needs.
// All operations run in the runner's working directory and use context for
// cancellation. Pull and Push touch the remote and can surface a
// RateLimitError; the local operations never do.
type Runner interface {
	// ResetHard discards all uncommitted local changes (git reset --hard).
	ResetHard(ctx context.Context) error

	// ResetLastCommit drops the last local commit while keeping the
	// working tree (git reset HEAD~), so the server's history can be
	// adopted by a later pull.
	ResetLastCommit(ctx context.Context) error

	// AddAll stages every change in the working directory (git add --all).
	AddAll(ctx context.Context) error

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// Pull fetches and merges the configured remote branch.
	Pull(ctx context.Context) error

	// Push uploads local commits to the configured remote branch.
	Push(ctx context.Context) error
}
