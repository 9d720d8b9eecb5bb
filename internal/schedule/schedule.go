// Package schedule derives the human-readable run label from the current
// date. Labels advance weekly from an anchor date; once the schedule runs
// out, the provider fails and the process has no reason to keep running.
package schedule

import (
	"fmt"
	"time"

	"github.com/rekindle-bot/rekindle/internal/clock"
	rkerrors "github.com/rekindle-bot/rekindle/internal/errors"
)

// Provider returns the label identifying the current run.
type Provider interface {
	Current() (string, error)
}

// Weekly is a Provider whose labels advance once a week starting at an
// anchor time. Before the anchor the label preceding the first scheduled one
// applies; after the final week there is no active label.
type Weekly struct {
	anchor time.Time
	prefix string
	first  int
	weeks  int
	clock  clock.Clock
}

// WeeklyOption configures a Weekly provider.
type WeeklyOption func(*Weekly)

// WithClock replaces the time source, mainly for tests.
func WithClock(c clock.Clock) WeeklyOption {
	return func(w *Weekly) {
		w.clock = c
	}
}

// NewWeekly creates a weekly label schedule.
// anchor is the start of the first scheduled label; prefix and first name it
// (prefix "sheet", first 3 → "sheet03"); weeks is how many labels follow the
// anchor before the schedule runs out.
func NewWeekly(anchor time.Time, prefix string, first, weeks int, opts ...WeeklyOption) (*Weekly, error) {
	if prefix == "" {
		return nil, fmt.Errorf("label prefix: %w", rkerrors.ErrEmptyValue)
	}
	if weeks < 1 {
		return nil, fmt.Errorf("schedule length %d: %w", weeks, rkerrors.ErrValueOutOfRange)
	}

	w := &Weekly{
		anchor: anchor,
		prefix: prefix,
		first:  first,
		weeks:  weeks,
		clock:  clock.RealClock{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Current returns the label active right now, or ErrNoActiveLabel once the
// schedule has run out. The failure is deliberately not recovered anywhere:
// with no active label the keep-alive loop has nothing left to keep alive.
func (w *Weekly) Current() (string, error) {
	now := w.clock.Now()

	if now.Before(w.anchor) {
		return w.format(w.first - 1), nil
	}

	week := int(now.Sub(w.anchor) / (7 * 24 * time.Hour))
	if week >= w.weeks {
		return "", fmt.Errorf("schedule ended %s: %w", w.anchor.Add(time.Duration(w.weeks)*7*24*time.Hour).Format(time.DateOnly), rkerrors.ErrNoActiveLabel)
	}

	return w.format(w.first + week), nil
}

func (w *Weekly) format(index int) string {
	return fmt.Sprintf("%s%02d", w.prefix, index)
}

// Ensure Weekly implements Provider.
var _ Provider = (*Weekly)(nil)
