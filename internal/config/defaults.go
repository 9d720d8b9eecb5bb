package config

import (
	"time"

	"github.com/rekindle-bot/rekindle/internal/constants"
)

// DefaultScheduleAnchor is the built-in start of the first scheduled label.
var DefaultScheduleAnchor = time.Date(2025, time.May, 6, 9, 0, 0, 0, time.UTC)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are the base layer that config files, environment variables
// and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			// Path has no default; the loop refuses to start without it.
			Path:         "",
			Remote:       constants.DefaultRemote,
			Branch:       constants.DefaultBranch,
			PrePushDelay: constants.PrePushDelay,
		},
		Backoff: BackoffConfig{
			SuccessInterval: constants.DefaultSuccessInterval,
			ErrorInterval:   constants.DefaultErrorInterval,
			SkippedInterval: constants.DefaultSkippedInterval,
			MaxErrorRetries: constants.DefaultMaxErrorRetries,
		},
		Swap: SwapConfig{
			PrimaryExt:   ".cpp",
			SecondaryExt: ".other",
		},
		Schedule: ScheduleConfig{
			Anchor: DefaultScheduleAnchor,
			Prefix: "sheet",
			First:  3,
			Weeks:  8,
		},
		Metrics: MetricsConfig{
			// Disabled unless an address is configured.
			ListenAddr: "",
		},
	}
}
