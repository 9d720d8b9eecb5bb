package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
)

func TestCommandError(t *testing.T) {
	t.Run("matches ErrGitOperation", func(t *testing.T) {
		err := &CommandError{Args: []string{"push", "origin", "main"}, ExitCode: 1, Stderr: "boom"}
		assert.ErrorIs(t, err, rkerrors.ErrGitOperation)
		assert.NotErrorIs(t, err, rkerrors.ErrRateLimited)
	})

	t.Run("message includes command, status and stderr", func(t *testing.T) {
		err := &CommandError{Args: []string{"commit", "-m", "msg"}, ExitCode: 128, Stderr: "fatal: not a git repository\n"}
		msg := err.Error()
		assert.Contains(t, msg, "git commit")
		assert.Contains(t, msg, "exit status 128")
		assert.Contains(t, msg, "fatal: not a git repository")
	})

	t.Run("message without stderr", func(t *testing.T) {
		err := &CommandError{Args: []string{"add", "--all"}, ExitCode: 1}
		assert.Equal(t, "git add --all failed: exit status 1", err.Error())
	})
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{Stderr: "ssh: connect to host example.com port 22: Connection refused\n"}

	assert.ErrorIs(t, err, rkerrors.ErrRateLimited)
	assert.NotErrorIs(t, err, rkerrors.ErrGitOperation)
	assert.Contains(t, err.Error(), "Connection refused")

	var cmdErr *CommandError
	assert.False(t, errors.As(err, &cmdErr), "rate limit error must not be a CommandError")
}
