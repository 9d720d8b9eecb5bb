// Package errors provides centralized error handling for rekindle.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrGitOperation indicates that a git command ran but exited non-zero.
	ErrGitOperation = errors.New("git operation failed")

	// ErrGitLaunch indicates that a git command could not be started at all
	// (binary missing, spawn failure). Distinct from a non-zero exit and
	// never eligible for rate-limit classification.
	ErrGitLaunch = errors.New("git command could not be launched")

	// ErrRateLimited indicates that the remote rejected a server-touching
	// git command because of rate limiting, inferred from stderr.
	ErrRateLimited = errors.New("server limit of requests reached")

	// ErrResetFiles indicates that cleaning the working directory with
	// git reset --hard failed. The local checkout can no longer be
	// trusted, so this is fatal to the control loop.
	ErrResetFiles = errors.New("cleaning of uncommitted changes failed")

	// ErrPull indicates that pulling remote changes failed.
	ErrPull = errors.New("pulling new changes failed")

	// ErrMakeChanges indicates that editing the label's files failed.
	ErrMakeChanges = errors.New("making changes to the label's files failed")

	// ErrAddAll indicates that staging changes failed.
	ErrAddAll = errors.New("adding new changes failed")

	// ErrCommit indicates that committing staged changes failed.
	ErrCommit = errors.New("committing new changes failed")

	// ErrPush indicates that pushing to the remote failed for a reason
	// other than rate limiting.
	ErrPush = errors.New("pushing new changes failed")

	// ErrGaveUp indicates that the backoff scheduler stopped retrying
	// after too many consecutive unexpected errors.
	ErrGaveUp = errors.New("gave up after consecutive errors")

	// ErrNoActiveLabel indicates that the label schedule has run out and
	// no run label applies to the current time.
	ErrNoActiveLabel = errors.New("no active run label")

	// ErrRepoPathMissing indicates that no repository path was configured,
	// or that the configured one does not exist. Commands that need the
	// repository treat this as invalid input (exit code 2), not a loop
	// failure.
	ErrRepoPathMissing = errors.New("repository path missing")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
