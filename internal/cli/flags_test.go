package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rekindle-bot/rekindle/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("xml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"generic error", stderrors.New("boom"), ExitError},
		{"loop gave up", errors.ErrGaveUp, ExitError},
		{"schedule ran out", errors.ErrNoActiveLabel, ExitError},
		{"missing repo path", errors.ErrRepoPathMissing, ExitInvalidInput},
		{"wrapped missing repo path", errors.Wrap(errors.ErrRepoPathMissing, "pass --repo"), ExitInvalidInput},
		{"invalid output format", errors.ErrInvalidOutputFormat, ExitInvalidInput},
		{"unknown flag", stderrors.New(`unknown flag: --bogus`), ExitInvalidInput},
		{"mutually exclusive flags", stderrors.New("if any flags in the group [verbose quiet] are set none of the others can be"), ExitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeForError(tt.err))
		})
	}
}
