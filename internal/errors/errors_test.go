package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrGitOperation,
		ErrGitLaunch,
		ErrRateLimited,
		ErrResetFiles,
		ErrPull,
		ErrMakeChanges,
		ErrAddAll,
		ErrCommit,
		ErrPush,
		ErrGaveUp,
		ErrNoActiveLabel,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, stderrors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("preserves error chain", func(t *testing.T) {
		wrapped := Wrap(ErrPush, "iteration failed")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, ErrPush)
		assert.Contains(t, wrapped.Error(), "iteration failed")
	})

	t.Run("preserves nested chains", func(t *testing.T) {
		inner := fmt.Errorf("exit status 128: %w", ErrGitOperation)
		wrapped := Wrap(inner, "push step")
		assert.ErrorIs(t, wrapped, ErrGitOperation)
	})
}

func TestWrapf(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "label %s", "sheet03"))
	})

	t.Run("formats message and preserves chain", func(t *testing.T) {
		wrapped := Wrapf(ErrCommit, "label %s", "sheet03")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, ErrCommit)
		assert.Contains(t, wrapped.Error(), "label sheet03")
	})
}
