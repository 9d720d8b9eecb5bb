// Package git provides the git CLI layer for rekindle.
// This file defines the typed outcomes of individual git commands.
package git

import (
	"fmt"
	"strings"

	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
)

// CommandError is the failure of a single git command that ran but exited
// non-zero. It carries the exit status and the captured stderr text, both
// immutable once produced. Matches errors.Is(err, errors.ErrGitOperation).
type CommandError struct {
	// Args are the git arguments of the failed command (without "git").
	Args []string
	// ExitCode is the process exit status.
	ExitCode int
	// Stderr is the captured standard error text.
	Stderr string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("git %s failed: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("git %s failed: exit status %d: %s", strings.Join(e.Args, " "), e.ExitCode, stderr)
}

// Unwrap lets errors.Is(err, errors.ErrGitOperation) succeed.
func (e *CommandError) Unwrap() error {
	return rkerrors.ErrGitOperation
}

// RateLimitError is the failure of a server-touching git command (pull/push)
// whose stderr carries the remote rate-limit signature. It takes precedence
// over the generic CommandError. Matches errors.Is(err, errors.ErrRateLimited).
type RateLimitError struct {
	// Stderr is the raw captured standard error text.
	Stderr string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return "server limit of requests reached: " + strings.TrimSpace(e.Stderr)
}

// Unwrap lets errors.Is(err, errors.ErrRateLimited) succeed.
func (e *RateLimitError) Unwrap() error {
	return rkerrors.ErrRateLimited
}
