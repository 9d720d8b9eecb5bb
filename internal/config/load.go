package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/rekindle-bot/rekindle/internal/errors"
)

// newViperInstance creates a new Viper instance with standard rekindle
// configuration: environment variable prefix (REKINDLE_), key replacer, and
// defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("REKINDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	applyEnvFallbacks(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (REKINDLE_* prefix, plus plain REPO_PATH)
//  2. Project config (.rekindle/config.yaml)
//  3. Global config (~/.rekindle/config.yaml)
//  4. Built-in defaults
//
// A .env file in the working directory is loaded first, without overriding
// variables already present in the environment. Deployments that predate the
// config file can keep pointing at the repository with just REPO_PATH.
//
// The function returns an error only for actual configuration problems, not
// for missing config or .env files.
func Load(ctx context.Context) (*Config, error) {
	loadDotEnv(ctx)

	v := newViperInstance()

	// Global config first (lower precedence), project config merges over it.
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("repo.path", cfg.Repo.Path).
		Dur("backoff.success_interval", cfg.Backoff.SuccessInterval).
		Dur("backoff.error_interval", cfg.Backoff.ErrorInterval).
		Dur("backoff.skipped_interval", cfg.Backoff.SkippedInterval).
		Msg("configuration loaded and unmarshaled")

	return cfg, nil
}

// loadDotEnv loads a .env file from the working directory if one exists.
// Existing environment variables win over file entries.
func loadDotEnv(ctx context.Context) {
	if !fileExists(".env") {
		return
	}
	if err := godotenv.Load(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to load .env file")
	}
}

// applyEnvFallbacks fills settings readable from plain (unprefixed)
// environment variables when the layered sources left them empty.
func applyEnvFallbacks(cfg *Config) {
	if cfg.Repo.Path == "" {
		cfg.Repo.Path = os.Getenv("REPO_PATH")
	}
}

// loadGlobalConfig attempts to load the global config file
// (~/.rekindle/config.yaml). Returns nil if the file doesn't exist or the
// home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
func getGlobalConfigPathIfExists() (string, bool) {
	globalDir, err := GlobalConfigDir()
	if err != nil {
		return "", false
	}

	globalConfigPath := filepath.Join(globalDir, "config.yaml")
	if _, err := os.Stat(globalConfigPath); err != nil {
		return "", false
	}

	return globalConfigPath, true
}

// loadProjectConfig attempts to load the project config file
// (.rekindle/config.yaml). Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied, allowing partial overrides.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
// projectConfigPath has the higher priority; either path can be empty to skip
// that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Repo defaults
	v.SetDefault("repo.path", d.Repo.Path)
	v.SetDefault("repo.remote", d.Repo.Remote)
	v.SetDefault("repo.branch", d.Repo.Branch)
	v.SetDefault("repo.pre_push_delay", d.Repo.PrePushDelay)

	// Backoff defaults
	v.SetDefault("backoff.success_interval", d.Backoff.SuccessInterval)
	v.SetDefault("backoff.error_interval", d.Backoff.ErrorInterval)
	v.SetDefault("backoff.skipped_interval", d.Backoff.SkippedInterval)
	v.SetDefault("backoff.max_error_retries", d.Backoff.MaxErrorRetries)

	// Swap defaults
	v.SetDefault("swap.primary_ext", d.Swap.PrimaryExt)
	v.SetDefault("swap.secondary_ext", d.Swap.SecondaryExt)

	// Schedule defaults
	v.SetDefault("schedule.anchor", d.Schedule.Anchor.Format(time.RFC3339))
	v.SetDefault("schedule.prefix", d.Schedule.Prefix)
	v.SetDefault("schedule.first", d.Schedule.First)
	v.SetDefault("schedule.weeks", d.Schedule.Weeks)

	// Metrics defaults
	v.SetDefault("metrics.listen_addr", d.Metrics.ListenAddr)
}

// applyOverrides merges non-zero override values into the config.
//
// IMPORTANT: there are no boolean settings here on purpose; zero values are
// simply skipped, so partial overrides stay unambiguous.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Repo.Path != "" {
		cfg.Repo.Path = overrides.Repo.Path
	}
	if overrides.Repo.Remote != "" {
		cfg.Repo.Remote = overrides.Repo.Remote
	}
	if overrides.Repo.Branch != "" {
		cfg.Repo.Branch = overrides.Repo.Branch
	}
	if overrides.Repo.PrePushDelay != 0 {
		cfg.Repo.PrePushDelay = overrides.Repo.PrePushDelay
	}

	if overrides.Backoff.SuccessInterval != 0 {
		cfg.Backoff.SuccessInterval = overrides.Backoff.SuccessInterval
	}
	if overrides.Backoff.ErrorInterval != 0 {
		cfg.Backoff.ErrorInterval = overrides.Backoff.ErrorInterval
	}
	if overrides.Backoff.SkippedInterval != 0 {
		cfg.Backoff.SkippedInterval = overrides.Backoff.SkippedInterval
	}
	if overrides.Backoff.MaxErrorRetries != 0 {
		cfg.Backoff.MaxErrorRetries = overrides.Backoff.MaxErrorRetries
	}

	if overrides.Swap.PrimaryExt != "" {
		cfg.Swap.PrimaryExt = overrides.Swap.PrimaryExt
	}
	if overrides.Swap.SecondaryExt != "" {
		cfg.Swap.SecondaryExt = overrides.Swap.SecondaryExt
	}

	if !overrides.Schedule.Anchor.IsZero() {
		cfg.Schedule.Anchor = overrides.Schedule.Anchor
	}
	if overrides.Schedule.Prefix != "" {
		cfg.Schedule.Prefix = overrides.Schedule.Prefix
	}
	if overrides.Schedule.First != 0 {
		cfg.Schedule.First = overrides.Schedule.First
	}
	if overrides.Schedule.Weeks != 0 {
		cfg.Schedule.Weeks = overrides.Schedule.Weeks
	}

	if overrides.Metrics.ListenAddr != "" {
		cfg.Metrics.ListenAddr = overrides.Metrics.ListenAddr
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to convert strings into time.Duration and
// RFC 3339 time.Time values.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	)
}
