// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// options.go — Tuner construction and functional options.
//
// Design:
//   - Option constructors panic on nonsense (workers < 1, nil table, nil clock).
//   - Defaults: seed rng.DefaultSeed, one worker per level up to 4, the
//     built-in profile table, a logger that discards everything.

package tuner

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/rng"
	"github.com/katalvlaran/lvspiro/selector"
)

// DefaultWorkers bounds the RunAll and AutoTune fan-out.
const DefaultWorkers = 4

// Tuner runs calibration trials against a profile table.
// A Tuner is safe for concurrent use: every trial builds its own Selector.
type Tuner struct {
	seed    int64
	workers int
	log     *slog.Logger
	table   profile.Table
	selOpts []selector.Option
	now     func() time.Time
}

// Option configures a Tuner.
type Option func(*Tuner)

// WithSeed sets the root seed (0 ⇒ rng.DefaultSeed). Levels derive their own
// streams from it.
func WithSeed(seed int64) Option {
	return func(t *Tuner) {
		t.seed = seed
	}
}

// WithWorkers bounds concurrent trials. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("tuner: WithWorkers requires n ≥ 1")
	}

	return func(t *Tuner) {
		t.workers = n
	}
}

// WithLogger installs a logger for progress records. nil restores the
// discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tuner) {
		if l == nil {
			l = discard()
		}
		t.log = l.With(slog.String("component", "tuner"))
	}
}

// WithTable replaces the profile table. The table is copied. Panics on nil.
func WithTable(tbl profile.Table) Option {
	if tbl == nil {
		panic("tuner: WithTable(nil)")
	}
	cp := tbl.Clone()

	return func(t *Tuner) {
		t.table = cp
	}
}

// WithSelectorOptions forwards options to every Selector a trial builds
// (shaping, fixed-radius range). A source or seed given here is overridden by
// the per-level stream.
func WithSelectorOptions(opts ...selector.Option) Option {
	return func(t *Tuner) {
		t.selOpts = append(t.selOpts, opts...)
	}
}

// WithClock overrides the clock stamping Report.CreatedAt. Panics on nil.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("tuner: WithClock(nil)")
	}

	return func(t *Tuner) {
		t.now = now
	}
}

// New builds a Tuner. Later options override earlier ones.
func New(opts ...Option) *Tuner {
	t := &Tuner{
		seed:    rng.DefaultSeed,
		workers: DefaultWorkers,
		log:     discard(),
		table:   profile.Defaults(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Table returns a copy of the profile table in force.
func (t *Tuner) Table() profile.Table {
	return t.table.Clone()
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
