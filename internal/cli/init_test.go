package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekindle-bot/rekindle/internal/config"
	"github.com/rekindle-bot/rekindle/internal/errors"
)

func TestRunInit(t *testing.T) {
	t.Run("writes a project config that the loader accepts", func(t *testing.T) {
		chdir(t, t.TempDir())

		var out bytes.Buffer
		require.NoError(t, runInit(&out, &InitFlags{RepoPath: "/srv/exercises"}))

		path := filepath.Join(".rekindle", "config.yaml")
		require.FileExists(t, path)
		assert.Contains(t, out.String(), path)

		cfg, err := config.LoadFromPaths(context.Background(), path, "")
		require.NoError(t, err)
		assert.Equal(t, "/srv/exercises", cfg.Repo.Path)
		assert.Equal(t, config.DefaultConfig().Backoff, cfg.Backoff)
		assert.Equal(t, config.DefaultScheduleAnchor, cfg.Schedule.Anchor)
	})

	t.Run("durations are written human readable", func(t *testing.T) {
		chdir(t, t.TempDir())

		require.NoError(t, runInit(&bytes.Buffer{}, &InitFlags{}))

		data, err := os.ReadFile(filepath.Join(".rekindle", "config.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "success_interval: 7s")
		assert.Contains(t, string(data), "skipped_interval: 30m0s")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		chdir(t, t.TempDir())

		require.NoError(t, runInit(&bytes.Buffer{}, &InitFlags{}))
		err := runInit(&bytes.Buffer{}, &InitFlags{})
		require.ErrorIs(t, err, errors.ErrConfigInvalid)
	})

	t.Run("force overwrites", func(t *testing.T) {
		chdir(t, t.TempDir())

		require.NoError(t, runInit(&bytes.Buffer{}, &InitFlags{}))
		require.NoError(t, runInit(&bytes.Buffer{}, &InitFlags{Force: true, RepoPath: "/new/repo"}))

		data, err := os.ReadFile(filepath.Join(".rekindle", "config.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "/new/repo")
	})

	t.Run("global writes under the rekindle home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		require.NoError(t, runInit(&bytes.Buffer{}, &InitFlags{Global: true}))
		assert.FileExists(t, filepath.Join(home, ".rekindle", "config.yaml"))
	})
}
