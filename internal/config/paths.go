package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rekindle-bot/rekindle/internal/constants"
	"github.com/rekindle-bot/rekindle/internal/errors"
)

// GlobalConfigDir returns the path to the global rekindle configuration
// directory, typically ~/.rekindle on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.RekindleHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration
// directory, always .rekindle relative to the working directory.
func ProjectConfigDir() string {
	return constants.RekindleHome
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.rekindle/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file, always .rekindle/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yaml")
}
