// Package config provides configuration management for rekindle with layered
// precedence.
//
// Configuration sources are loaded in the following order (highest precedence
// first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (REKINDLE_* prefix, plus REPO_PATH from the
//     environment or a .env file)
//  3. Project config (.rekindle/config.yaml)
//  4. Global config (~/.rekindle/config.yaml)
//  5. Built-in defaults
//
// Each higher level overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for rekindle.
type Config struct {
	// Repo contains the target repository and its remote coordinates.
	Repo RepoConfig `yaml:"repo" mapstructure:"repo"`

	// Backoff contains the wait intervals between loop iterations.
	Backoff BackoffConfig `yaml:"backoff" mapstructure:"backoff"`

	// Swap contains settings for the per-iteration file edit.
	Swap SwapConfig `yaml:"swap" mapstructure:"swap"`

	// Schedule contains settings for the weekly run label schedule.
	Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`

	// Metrics contains settings for the optional Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// RepoConfig contains the repository the loop operates on.
type RepoConfig struct {
	// Path is the local working directory of the pushed repository.
	// There is no default; without it the process cannot start.
	// Also readable from the plain REPO_PATH environment variable (or a
	// .env file next to the process) for compatibility with existing
	// deployments.
	Path string `yaml:"path" mapstructure:"path"`

	// Remote is the name of the pushed remote.
	// Default: "origin"
	Remote string `yaml:"remote" mapstructure:"remote"`

	// Branch is the pushed branch.
	// Default: "main"
	Branch string `yaml:"branch" mapstructure:"branch"`

	// PrePushDelay is the pause between a pull-driven commit and its push,
	// keeping the push out of the rate-limit window that follows a pull.
	// Default: 10s
	PrePushDelay time.Duration `yaml:"pre_push_delay" mapstructure:"pre_push_delay"`
}

// BackoffConfig contains the wait intervals consulted between iterations.
type BackoffConfig struct {
	// SuccessInterval is the wait after a successful push. It is also the
	// base of the rate-limit curve: the n-th consecutive rate limit waits
	// success_interval × (n + 1).
	// Default: 7s
	SuccessInterval time.Duration `yaml:"success_interval" mapstructure:"success_interval"`

	// ErrorInterval is the base wait after an unexpected error; the n-th
	// consecutive error waits error_interval × (n + 1).
	// Default: 5m
	ErrorInterval time.Duration `yaml:"error_interval" mapstructure:"error_interval"`

	// SkippedInterval is the wait after an iteration with nothing to do.
	// Default: 30m
	SkippedInterval time.Duration `yaml:"skipped_interval" mapstructure:"skipped_interval"`

	// MaxErrorRetries is how many consecutive unexpected errors are
	// tolerated before the loop gives up. Rate limits never count.
	// Default: 10
	MaxErrorRetries int `yaml:"max_error_retries" mapstructure:"max_error_retries"`
}

// SwapConfig contains settings for the swapped file pair.
type SwapConfig struct {
	// PrimaryExt is the extension of the first swapped file.
	// Default: ".cpp"
	PrimaryExt string `yaml:"primary_ext" mapstructure:"primary_ext"`

	// SecondaryExt is the extension of the second swapped file.
	// Default: ".other"
	SecondaryExt string `yaml:"secondary_ext" mapstructure:"secondary_ext"`
}

// ScheduleConfig describes the weekly label schedule. Labels advance once a
// week from the anchor; before the anchor the label preceding the first one
// applies, after the final week the process shuts down.
type ScheduleConfig struct {
	// Anchor is the start of the first scheduled label (RFC 3339 in YAML).
	Anchor time.Time `yaml:"anchor" mapstructure:"anchor"`

	// Prefix is the label prefix, e.g. "sheet" → "sheet03".
	// Default: "sheet"
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// First is the number of the label active during the anchor week.
	// Default: 3
	First int `yaml:"first" mapstructure:"first"`

	// Weeks is how many weekly labels the schedule covers.
	// Default: 8
	Weeks int `yaml:"weeks" mapstructure:"weeks"`
}

// MetricsConfig contains settings for the Prometheus endpoint.
type MetricsConfig struct {
	// ListenAddr is the address the /metrics endpoint listens on,
	// e.g. ":9090". Empty disables the endpoint.
	// Default: "" (disabled)
	ListenAddr string `yaml:"listen_addr" mapstructure:"listen_addr"`
}
