// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// run.go — single-level trials and the concurrent per-level batch.

package tuner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/rng"
	"github.com/katalvlaran/lvspiro/selector"
)

// trial fixes the session settings shared by every sample of a run.
type trial struct {
	samples    int
	constraint selector.ConstraintMode
	evolution  evolve.Mode
}

// Run simulates samples "generate next" actions at one level and reports on
// them. Every sample hands the previous triple to the selectors as hint.
//
// Errors: ErrBadSamples, profile.ErrUnknownLevel, selector errors for an
// invalid profile or mode, ctx.Err() on cancellation (all wrapped).
func (t *Tuner) Run(ctx context.Context, level profile.Level, samples int, constraint selector.ConstraintMode, evolution evolve.Mode) (Report, error) {
	p, err := t.table.Lookup(level)
	if err != nil {
		return Report{}, fmt.Errorf("Run: %w", err)
	}

	return t.run(ctx, level, p, trial{samples: samples, constraint: constraint, evolution: evolution})
}

// RunAll runs one trial per level concurrently (bounded by WithWorkers) and
// returns the reports in the order of levels. The first failure cancels the
// remaining trials.
func (t *Tuner) RunAll(ctx context.Context, levels []profile.Level, samples int, constraint selector.ConstraintMode, evolution evolve.Mode) ([]Report, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("RunAll: %w", ErrNoLevels)
	}

	reports := make([]Report, len(levels))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(t.workers).WithCancelOnError().WithFirstError()
	for i, level := range levels {
		p.Go(func(ctx context.Context) error {
			rep, err := t.Run(ctx, level, samples, constraint, evolution)
			if err != nil {
				return err
			}
			reports[i] = rep

			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("RunAll: %w", err)
	}

	return reports, nil
}

// run executes a trial for an explicit profile. AutoTune calls it with
// candidate profiles that are not in the table.
func (t *Tuner) run(ctx context.Context, level profile.Level, p profile.Profile, tr trial) (Report, error) {
	if tr.samples < 1 {
		return Report{}, fmt.Errorf("Run: %s: samples=%d: %w", level, tr.samples, ErrBadSamples)
	}

	params := selector.Params{Profile: p, Constraint: tr.constraint, Evolution: tr.evolution}
	opts := append(slices.Clone(t.selOpts), selector.WithSource(rng.Derive(t.seed, uint64(level))))
	sel := selector.New(opts...)

	offsetMul := 1.0
	if tr.constraint == selector.Wild {
		offsetMul = sel.Shaping().WildOffsetMul
	}
	col := newCollector(p, offsetMul)

	var prev *selector.Triple
	for i := range tr.samples {
		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("Run: %s: sample %d: %w", level, i, err)
		}
		gen, err := sel.Next(prev, params)
		if err != nil {
			return Report{}, fmt.Errorf("Run: %s: %w", level, err)
		}
		col.add(gen)
		prev = &gen.Triple
	}

	rep := col.report()
	rep.ID = uuid.New().String()
	rep.CreatedAt = t.now().UTC()
	rep.Level = level
	rep.Constraint = tr.constraint
	rep.Evolution = tr.evolution
	rep.Seed = t.seed
	rep.Samples = tr.samples

	t.log.Debug("trial finished",
		slog.String("level", level.String()),
		slog.Int("samples", tr.samples),
		slog.Float64("lobes_outside_pct", rep.Violations.LobesOutside),
		slog.Float64("ratio_outside_pct", rep.Violations.RatioOutside),
	)

	return rep, nil
}
