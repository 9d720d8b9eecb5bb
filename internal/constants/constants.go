// Package constants provides centralized constant values used throughout rekindle.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by rekindle for organizing data.
const (
	// RekindleHome is the hidden directory name where rekindle stores its data.
	// This directory is created in the user's home directory.
	RekindleHome = ".rekindle"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "rekindle.log"
)

// Wait intervals for the backoff scheduler. The success interval doubles as
// the base of the rate-limit curve: a consecutive rate limit waits
// success × (count + 1).
const (
	// DefaultSuccessInterval is the pause after a successful push.
	DefaultSuccessInterval = 7 * time.Second

	// DefaultErrorInterval is the base pause after an unexpected error.
	DefaultErrorInterval = 5 * time.Minute

	// DefaultSkippedInterval is the pause after an iteration that had
	// nothing to do. Skips repeat until the label's files appear, so the
	// interval is deliberately long.
	DefaultSkippedInterval = 30 * time.Minute

	// DefaultMaxErrorRetries is how many consecutive unexpected errors are
	// tolerated before the scheduler gives up. Rate limits never count
	// against this ceiling.
	DefaultMaxErrorRetries = 10
)

// Git operation defaults.
const (
	// DefaultRemote is the remote pushed to and pulled from.
	DefaultRemote = "origin"

	// DefaultBranch is the branch pushed to and pulled from.
	DefaultBranch = "main"

	// PrePushDelay is the fixed pause between a pull-driven commit and its
	// push. Pushing immediately after a pull tends to land inside the
	// server's rate-limit window.
	PrePushDelay = 10 * time.Second
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
