// Package cli provides the command-line interface for rekindle.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rekindle-bot/rekindle/internal/config"
	"github.com/rekindle-bot/rekindle/internal/errors"
)

// InitFlags holds flags specific to the init command.
type InitFlags struct {
	// Global writes the starter config to ~/.rekindle instead of the
	// project directory.
	Global bool
	// Force overwrites an existing config file.
	Force bool
	// RepoPath pre-fills the repository path in the starter config.
	RepoPath string
}

// starterConfig is the YAML shape written by init. Durations are strings so
// the generated file reads "7s" rather than nanosecond integers; the loader
// parses both.
type starterConfig struct {
	Repo struct {
		Path         string `yaml:"path"`
		Remote       string `yaml:"remote"`
		Branch       string `yaml:"branch"`
		PrePushDelay string `yaml:"pre_push_delay"`
	} `yaml:"repo"`
	Backoff struct {
		SuccessInterval string `yaml:"success_interval"`
		ErrorInterval   string `yaml:"error_interval"`
		SkippedInterval string `yaml:"skipped_interval"`
		MaxErrorRetries int    `yaml:"max_error_retries"`
	} `yaml:"backoff"`
	Swap struct {
		PrimaryExt   string `yaml:"primary_ext"`
		SecondaryExt string `yaml:"secondary_ext"`
	} `yaml:"swap"`
	Schedule struct {
		Anchor string `yaml:"anchor"`
		Prefix string `yaml:"prefix"`
		First  int    `yaml:"first"`
		Weeks  int    `yaml:"weeks"`
	} `yaml:"schedule"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
}

const starterConfigHeader = `# rekindle configuration
# Precedence: flags > REKINDLE_* environment variables > this file > defaults.
`

// AddInitCommand adds the init command to the root command.
func AddInitCommand(root *cobra.Command) {
	flags := &InitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Init writes a config.yaml with the default settings, either to the
project directory (.rekindle/config.yaml) or, with --global, to
~/.rekindle/config.yaml. Existing files are left alone unless --force is
given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Global, "global", false, "write to ~/.rekindle/config.yaml")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&flags.RepoPath, "repo", "", "repository path to pre-fill")

	root.AddCommand(cmd)
}

// runInit writes the starter config file.
func runInit(out io.Writer, flags *InitFlags) error {
	path, err := initTargetPath(flags.Global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !flags.Force {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s already exists, pass --force to overwrite", path)
	}

	data, err := renderStarterConfig(flags.RepoPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	_, _ = fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}

// initTargetPath returns where init should write the config.
func initTargetPath(global bool) (string, error) {
	if global {
		return config.GlobalConfigPath()
	}
	return config.ProjectConfigPath(), nil
}

// renderStarterConfig produces the YAML for a fresh config file, seeded from
// the built-in defaults.
func renderStarterConfig(repoPath string) ([]byte, error) {
	d := config.DefaultConfig()

	var sc starterConfig
	sc.Repo.Path = repoPath
	sc.Repo.Remote = d.Repo.Remote
	sc.Repo.Branch = d.Repo.Branch
	sc.Repo.PrePushDelay = d.Repo.PrePushDelay.String()
	sc.Backoff.SuccessInterval = d.Backoff.SuccessInterval.String()
	sc.Backoff.ErrorInterval = d.Backoff.ErrorInterval.String()
	sc.Backoff.SkippedInterval = d.Backoff.SkippedInterval.String()
	sc.Backoff.MaxErrorRetries = d.Backoff.MaxErrorRetries
	sc.Swap.PrimaryExt = d.Swap.PrimaryExt
	sc.Swap.SecondaryExt = d.Swap.SecondaryExt
	sc.Schedule.Anchor = d.Schedule.Anchor.Format(time.RFC3339)
	sc.Schedule.Prefix = d.Schedule.Prefix
	sc.Schedule.First = d.Schedule.First
	sc.Schedule.Weeks = d.Schedule.Weeks
	sc.Metrics.ListenAddr = d.Metrics.ListenAddr

	body, err := yaml.Marshal(&sc)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling starter config")
	}
	return append([]byte(starterConfigHeader), body...), nil
}
