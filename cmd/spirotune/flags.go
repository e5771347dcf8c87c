// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"io"
	"log/slog"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
	"github.com/katalvlaran/lvspiro/store"
	"github.com/katalvlaran/lvspiro/tuner"
)

const (
	defaultSamples = 500
	defaultDBPath  = "spirotune.db"
)

// storeFlags locate the report store.
type storeFlags struct {
	kind   string
	dbPath string
}

func (s *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.kind, "store", store.KindSQLite, "store backend: memory|sqlite")
	fs.StringVar(&s.dbPath, "db-path", defaultDBPath, "sqlite database path")
}

// trialFlags are shared by run and autotune.
type trialFlags struct {
	storeFlags
	samples    int
	seed       int64
	constraint string
	evolution  string
	only       string
	profiles   string
	workers    int
	verbose    bool
	save       bool
}

func (t *trialFlags) register(fs *flag.FlagSet) {
	t.storeFlags.register(fs)
	fs.IntVar(&t.samples, "samples", defaultSamples, "samples per level")
	fs.Int64Var(&t.seed, "seed", 0, "root seed (0 = default)")
	fs.StringVar(&t.constraint, "constraint", selector.Extended.String(), "constraint mode: physical|extended|wild")
	fs.StringVar(&t.evolution, "evolution", evolve.Random.String(), "evolution mode: random|drift|jump")
	fs.StringVar(&t.only, "only", "", "run a single level: simple|medium|complex|dense")
	fs.StringVar(&t.profiles, "profiles", "", "JSON file with profile overrides")
	fs.IntVar(&t.workers, "workers", tuner.DefaultWorkers, "levels processed concurrently")
	fs.BoolVar(&t.verbose, "v", false, "debug logging")
	fs.BoolVar(&t.save, "save", false, "persist reports to the store")
}

// settings is the parsed, validated form of trialFlags.
type settings struct {
	levels     []profile.Level
	table      profile.Table
	constraint selector.ConstraintMode
	evolution  evolve.Mode
}

func (t *trialFlags) resolve() (settings, error) {
	var (
		s   settings
		err error
	)
	if s.constraint, err = selector.ParseConstraint(t.constraint); err != nil {
		return settings{}, err
	}
	if s.evolution, err = evolve.ParseMode(t.evolution); err != nil {
		return settings{}, err
	}

	s.levels = profile.Levels()
	if t.only != "" {
		level, err := profile.ParseLevel(t.only)
		if err != nil {
			return settings{}, err
		}
		s.levels = []profile.Level{level}
	}

	s.table = profile.Defaults()
	if t.profiles != "" {
		if s.table, err = profile.LoadTable(t.profiles); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}

func (t *trialFlags) newTuner(log *slog.Logger, tbl profile.Table) *tuner.Tuner {
	return tuner.New(
		tuner.WithSeed(t.seed),
		tuner.WithWorkers(max(1, t.workers)),
		tuner.WithLogger(log),
		tuner.WithTable(tbl),
	)
}

// newLogger writes text records to w; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With(slog.String("component", "spirotune"))
}
