// Package git provides the git CLI layer for rekindle.
// This file contains the heuristic outcome classification for command results.
package git

import "strings"

// OutcomeKind classifies the result of a finished git command.
type OutcomeKind int

const (
	// OutcomeSuccess indicates the command exited zero. Captured text is
	// irrelevant for successful commands.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure indicates a non-zero exit with no recognized signature.
	OutcomeFailure
	// OutcomeRateLimited indicates a non-zero exit whose stderr matches the
	// remote rate-limit signature. Only meaningful for server commands.
	OutcomeRateLimited
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "failure"
	}
}

// Signature checks whether a string contains every one of a list of
// substrings. Unlike a single-pattern matcher, all parts must be present for
// a match. Matching is case-sensitive: the git/ssh error text the signatures
// target has a fixed casing.
type Signature struct {
	parts []string
}

// NewSignature creates a Signature requiring all given substrings.
func NewSignature(parts ...string) *Signature {
	return &Signature{parts: parts}
}

// Matches returns true if s contains every part of the signature.
func (sig *Signature) Matches(s string) bool {
	for _, part := range sig.parts {
		if !strings.Contains(s, part) {
			return false
		}
	}
	return true
}

// rateLimitSignature is the stderr fingerprint of the remote refusing an ssh
// connection because of rate limiting. Both substrings must be present; a
// plain "Connection refused" from an unrelated proxy does not qualify.
//
// The match is a heuristic over free-form error text; false positives and
// negatives are an accepted limitation.
//
//nolint:gochecknoglobals // Package-level immutable signature for reuse
var rateLimitSignature = NewSignature("Connection refused", "ssh:")

// Classify maps the exit status and captured stderr of a finished server
// command to an outcome kind. It is a pure function so it can be tested
// without spawning subprocesses.
//
// Zero exit status is always a success regardless of captured text. The
// rate-limit signature takes precedence over generic failure.
func Classify(exitCode int, stderr string) OutcomeKind {
	if exitCode == 0 {
		return OutcomeSuccess
	}
	if rateLimitSignature.Matches(stderr) {
		return OutcomeRateLimited
	}
	return OutcomeFailure
}
