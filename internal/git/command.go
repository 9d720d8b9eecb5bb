// Package git provides the git CLI layer for rekindle.
// This file provides the process-runner capability behind the command layer.
package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Result is the raw outcome of one finished git subprocess: the exit status
// and the captured standard error text. Standard output is discarded.
type Result struct {
	// ExitCode is the process exit status. Zero means success.
	ExitCode int
	// Stderr is the captured standard error text.
	Stderr string
}

// Execer runs a single git subcommand against a working directory. It makes
// one deterministic attempt per call; retries happen strictly at the
// iteration granularity in the control loop.
//
// A non-nil error means the command could not even start (launch failure).
// A command that ran and exited non-zero is reported through Result, not
// through the error return.
type Execer interface {
	Run(ctx context.Context, workDir string, args ...string) (Result, error)
}

// SystemExecer implements Execer by spawning the real git binary.
type SystemExecer struct{}

// Run executes `git args...` with the working directory set to workDir.
// Stdout is captured and discarded; stderr is captured and returned.
func (SystemExecer) Run(ctx context.Context, workDir string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, "git", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0, Stderr: stderr.String()}, nil
	}

	// Surface context cancellation over the subprocess's own failure.
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
	}

	// The command never ran (binary missing, workdir invalid, ...).
	return Result{}, err
}

// Ensure SystemExecer implements Execer.
var _ Execer = SystemExecer{}
