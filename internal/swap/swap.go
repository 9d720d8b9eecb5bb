// Package swap implements the trivial file edit that gives each iteration
// something to commit: swapping the contents of a pair of files inside the
// current label's subdirectory. The downstream server only cares that a push
// happened, so the change just has to be real, small, and reversible.
package swap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
)

// Default file extensions of the swapped pair.
const (
	DefaultPrimaryExt   = ".cpp"
	DefaultSecondaryExt = ".other"
)

// Swapper swaps the contents of exactly one primary-extension file and one
// secondary-extension file under <workDir>/<label>/.
type Swapper struct {
	workDir      string
	primaryExt   string
	secondaryExt string
	logger       zerolog.Logger
}

// Option configures a Swapper.
type Option func(*Swapper)

// WithExtensions overrides the extensions of the swapped pair.
func WithExtensions(primary, secondary string) Option {
	return func(s *Swapper) {
		s.primaryExt = primary
		s.secondaryExt = secondary
	}
}

// WithLogger sets the logger for edit decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Swapper) {
		s.logger = logger
	}
}

// New creates a Swapper rooted at workDir.
func New(workDir string, opts ...Option) *Swapper {
	s := &Swapper{
		workDir:      workDir,
		primaryExt:   DefaultPrimaryExt,
		secondaryExt: DefaultSecondaryExt,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MakeChanges swaps the candidate pair under the label's subdirectory.
// It returns true when a change was made, and false (without error) when the
// iteration should be skipped: the subdirectory is missing, holds fewer than
// two files, or lacks a candidate for either extension.
func (s *Swapper) MakeChanges(label string) (bool, error) {
	dir := filepath.Join(s.workDir, label)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("dir", dir).Msg("label directory does not exist, skipping")
			return false, nil
		}
		return false, rkerrors.Wrapf(err, "reading label directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	if len(files) < 2 {
		s.logger.Debug().
			Str("dir", dir).
			Strs("files", files).
			Msg("label directory does not contain enough files, skipping")
		return false, nil
	}

	primary := findByExt(files, s.primaryExt)
	secondary := findByExt(files, s.secondaryExt)
	if primary == "" || secondary == "" {
		s.logger.Debug().
			Str("dir", dir).
			Msg("required files for swapping not found, skipping")
		return false, nil
	}

	primaryPath := filepath.Join(dir, primary)
	secondaryPath := filepath.Join(dir, secondary)

	primaryContent, err := os.ReadFile(primaryPath) //#nosec G304 -- path is inside the configured workdir
	if err != nil {
		return false, rkerrors.Wrapf(err, "reading %s", primary)
	}
	secondaryContent, err := os.ReadFile(secondaryPath) //#nosec G304 -- path is inside the configured workdir
	if err != nil {
		return false, rkerrors.Wrapf(err, "reading %s", secondary)
	}

	if err := os.WriteFile(primaryPath, secondaryContent, 0o600); err != nil {
		return false, rkerrors.Wrapf(err, "writing %s", primary)
	}
	if err := os.WriteFile(secondaryPath, primaryContent, 0o600); err != nil {
		return false, rkerrors.Wrapf(err, "writing %s", secondary)
	}

	s.logger.Debug().
		Str("primary", primary).
		Str("secondary", secondary).
		Msg("swapped file contents")
	return true, nil
}

// findByExt returns the first file name with the given suffix, or "".
func findByExt(files []string, ext string) string {
	for _, f := range files {
		if strings.HasSuffix(f, ext) {
			return f
		}
	}
	return ""
}
