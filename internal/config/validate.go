package config

import (
	"github.com/rekindle-bot/rekindle/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - backoff intervals must be positive and max retries non-negative
//   - remote and branch must not be empty
//   - pre-push delay must not be negative
//   - swap extensions must be non-empty and distinct
//   - schedule prefix must not be empty and length must be at least one week
//
// The repository path is deliberately not validated here: commands that do
// not touch the repository (init, version) must work without one, so the run
// command checks it separately.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateRepoConfig(&cfg.Repo); err != nil {
		return err
	}
	if err := validateBackoffConfig(&cfg.Backoff); err != nil {
		return err
	}
	if err := validateSwapConfig(&cfg.Swap); err != nil {
		return err
	}
	return validateScheduleConfig(&cfg.Schedule)
}

// validateRepoConfig checks repository-specific configuration values.
func validateRepoConfig(cfg *RepoConfig) error {
	if cfg.Remote == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "repo.remote must not be empty")
	}
	if cfg.Branch == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "repo.branch must not be empty")
	}
	if cfg.PrePushDelay < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"repo.pre_push_delay must not be negative, got %s", cfg.PrePushDelay)
	}
	return nil
}

// validateBackoffConfig checks the wait intervals.
func validateBackoffConfig(cfg *BackoffConfig) error {
	if cfg.SuccessInterval <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"backoff.success_interval must be positive, got %s", cfg.SuccessInterval)
	}
	if cfg.ErrorInterval <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"backoff.error_interval must be positive, got %s", cfg.ErrorInterval)
	}
	if cfg.SkippedInterval <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"backoff.skipped_interval must be positive, got %s", cfg.SkippedInterval)
	}
	if cfg.MaxErrorRetries < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"backoff.max_error_retries cannot be negative, got %d", cfg.MaxErrorRetries)
	}
	return nil
}

// validateSwapConfig checks the swapped pair extensions.
func validateSwapConfig(cfg *SwapConfig) error {
	if cfg.PrimaryExt == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "swap.primary_ext must not be empty")
	}
	if cfg.SecondaryExt == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "swap.secondary_ext must not be empty")
	}
	if cfg.PrimaryExt == cfg.SecondaryExt {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"swap extensions must differ, both are %q", cfg.PrimaryExt)
	}
	return nil
}

// validateScheduleConfig checks the label schedule.
func validateScheduleConfig(cfg *ScheduleConfig) error {
	if cfg.Prefix == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "schedule.prefix must not be empty")
	}
	if cfg.Weeks < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"schedule.weeks must be at least 1, got %d", cfg.Weeks)
	}
	if cfg.Anchor.IsZero() {
		return errors.Wrap(errors.ErrConfigInvalid, "schedule.anchor must be set")
	}
	return nil
}
