package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekindle-bot/rekindle/internal/errors"
)

func TestLoadRunConfig(t *testing.T) {
	t.Run("missing repository path is invalid input", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("REPO_PATH", "")

		_, err := loadRunConfig(context.Background(), &RunFlags{})
		require.ErrorIs(t, err, errors.ErrRepoPathMissing)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("repo flag wins over environment", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("REPO_PATH", "/env/repo")

		cfg, err := loadRunConfig(context.Background(), &RunFlags{RepoPath: "/flag/repo"})
		require.NoError(t, err)
		assert.Equal(t, "/flag/repo", cfg.Repo.Path)
	})

	t.Run("metrics flag overrides config", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("REPO_PATH", "/env/repo")

		cfg, err := loadRunConfig(context.Background(), &RunFlags{MetricsAddr: ":9100"})
		require.NoError(t, err)
		assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
	})
}
