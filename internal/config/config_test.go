package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekindle-bot/rekindle/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, Validate(cfg))

	assert.Empty(t, cfg.Repo.Path, "the repository path has no default")
	assert.Equal(t, "origin", cfg.Repo.Remote)
	assert.Equal(t, "main", cfg.Repo.Branch)
	assert.Equal(t, 10*time.Second, cfg.Repo.PrePushDelay)

	assert.Equal(t, 7*time.Second, cfg.Backoff.SuccessInterval)
	assert.Equal(t, 5*time.Minute, cfg.Backoff.ErrorInterval)
	assert.Equal(t, 30*time.Minute, cfg.Backoff.SkippedInterval)
	assert.Equal(t, 10, cfg.Backoff.MaxErrorRetries)

	assert.Equal(t, ".cpp", cfg.Swap.PrimaryExt)
	assert.Equal(t, ".other", cfg.Swap.SecondaryExt)

	assert.Equal(t, "sheet", cfg.Schedule.Prefix)
	assert.Equal(t, 3, cfg.Schedule.First)
	assert.Equal(t, 8, cfg.Schedule.Weeks)
	assert.Equal(t, DefaultScheduleAnchor, cfg.Schedule.Anchor)

	assert.Empty(t, cfg.Metrics.ListenAddr, "metrics endpoint defaults to disabled")
}

func TestValidate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
	})

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty remote", func(cfg *Config) { cfg.Repo.Remote = "" }},
		{"empty branch", func(cfg *Config) { cfg.Repo.Branch = "" }},
		{"negative pre-push delay", func(cfg *Config) { cfg.Repo.PrePushDelay = -time.Second }},
		{"zero success interval", func(cfg *Config) { cfg.Backoff.SuccessInterval = 0 }},
		{"zero error interval", func(cfg *Config) { cfg.Backoff.ErrorInterval = 0 }},
		{"zero skipped interval", func(cfg *Config) { cfg.Backoff.SkippedInterval = 0 }},
		{"negative max retries", func(cfg *Config) { cfg.Backoff.MaxErrorRetries = -1 }},
		{"empty primary extension", func(cfg *Config) { cfg.Swap.PrimaryExt = "" }},
		{"empty secondary extension", func(cfg *Config) { cfg.Swap.SecondaryExt = "" }},
		{"identical extensions", func(cfg *Config) { cfg.Swap.SecondaryExt = cfg.Swap.PrimaryExt }},
		{"empty schedule prefix", func(cfg *Config) { cfg.Schedule.Prefix = "" }},
		{"zero schedule weeks", func(cfg *Config) { cfg.Schedule.Weeks = 0 }},
		{"zero anchor", func(cfg *Config) { cfg.Schedule.Anchor = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.ErrorIs(t, Validate(cfg), errors.ErrConfigInvalid)
		})
	}

	t.Run("empty repo path is allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Repo.Path = ""
		require.NoError(t, Validate(cfg))
	})
}

func TestApplyOverrides(t *testing.T) {
	t.Run("non-zero values override", func(t *testing.T) {
		cfg := DefaultConfig()
		anchor := time.Date(2026, time.January, 6, 9, 0, 0, 0, time.UTC)

		applyOverrides(cfg, &Config{
			Repo: RepoConfig{
				Path:   "/srv/exercises",
				Remote: "upstream",
			},
			Backoff: BackoffConfig{
				SuccessInterval: 3 * time.Second,
			},
			Schedule: ScheduleConfig{
				Anchor: anchor,
				Weeks:  12,
			},
			Metrics: MetricsConfig{
				ListenAddr: ":9090",
			},
		})

		assert.Equal(t, "/srv/exercises", cfg.Repo.Path)
		assert.Equal(t, "upstream", cfg.Repo.Remote)
		assert.Equal(t, 3*time.Second, cfg.Backoff.SuccessInterval)
		assert.Equal(t, anchor, cfg.Schedule.Anchor)
		assert.Equal(t, 12, cfg.Schedule.Weeks)
		assert.Equal(t, ":9090", cfg.Metrics.ListenAddr)
	})

	t.Run("zero values leave the base alone", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Repo.Path = "/srv/exercises"

		applyOverrides(cfg, &Config{})

		assert.Equal(t, "/srv/exercises", cfg.Repo.Path)
		assert.Equal(t, "main", cfg.Repo.Branch)
		assert.Equal(t, 7*time.Second, cfg.Backoff.SuccessInterval)
	})
}
