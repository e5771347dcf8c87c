// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// autotune.go — bounded neighbourhood search over the search-effort knobs.
//
// Algorithm (per level):
//  1. Score the base profile with a trial of Limits.Samples samples.
//  2. Build the neighbourhood of the current best: every combination of
//     {−step, 0, +step} on (m candidates, top N, sample count), except all-zero,
//     crossed with {−step, 0, +step} on the retry count. Each knob is clamped to
//     [base value, max]; duplicates and the current best are dropped.
//  3. Score every neighbour; a neighbour replaces the best only when its score
//     is strictly lower. Stop when an iteration improves nothing, the
//     neighbourhood is empty, or Limits.Iterations is reached.
//
// Every trial of a level uses the same derived stream, so candidates are
// compared on identical random draws.

package tuner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
)

// Limits bound an AutoTune search.
type Limits struct {
	Samples    int `json:"samples"`
	Iterations int `json:"iterations"`

	StepMCandidates int `json:"step_m_candidates"`
	StepTopN        int `json:"step_top_n"`
	StepSamples     int `json:"step_samples"`
	StepRetry       int `json:"step_lobes_retry"`

	MaxMCandidates int `json:"max_m_candidates"`
	MaxTopN        int `json:"max_top_n"`
	MaxSamples     int `json:"max_samples"`
	MaxRetry       int `json:"max_lobes_retry"`
}

// DefaultLimits returns the stock search bounds.
func DefaultLimits() Limits {
	return Limits{
		Samples:    400,
		Iterations: 4,

		StepMCandidates: 6,
		StepTopN:        4,
		StepSamples:     50,
		StepRetry:       1,

		MaxMCandidates: 60,
		MaxTopN:        30,
		MaxSamples:     600,
		MaxRetry:       8,
	}
}

// Validate reports ErrBadSamples or ErrBadLimits for unusable bounds.
func (l Limits) Validate() error {
	if l.Samples < 1 {
		return fmt.Errorf("samples=%d: %w", l.Samples, ErrBadSamples)
	}
	if l.Iterations < 0 {
		return fmt.Errorf("iterations=%d: %w", l.Iterations, ErrBadLimits)
	}
	if l.StepMCandidates < 0 || l.StepTopN < 0 || l.StepSamples < 0 || l.StepRetry < 0 {
		return fmt.Errorf("negative step: %w", ErrBadLimits)
	}

	return nil
}

// Tuned records the search for one level.
type Tuned struct {
	Level      profile.Level   `json:"complexity"`
	Base       profile.Profile `json:"base"`
	Best       profile.Profile `json:"best"`
	Baseline   Score           `json:"baseline"`
	Final      Score           `json:"final"`
	Iterations int             `json:"iterations"`
	Evaluated  int             `json:"evaluated"`
}

// Improved reports whether the search moved away from the base profile.
func (t Tuned) Improved() bool { return t.Final.Less(t.Baseline) }

// knobs are the four tunable effort fields.
type knobs struct{ m, top, samples, retry int }

func knobsOf(p profile.Profile) knobs {
	return knobs{p.ConstructedMCandidates, p.ConstructedTopN, p.SampleCount, p.LobesRetryCount}
}

func (k knobs) apply(p profile.Profile) profile.Profile {
	p.ConstructedMCandidates, p.ConstructedTopN, p.SampleCount, p.LobesRetryCount = k.m, k.top, k.samples, k.retry

	return p
}

var stepSigns = [3]int{1, -1, 0}

// AutoTune searches each level concurrently and returns a copy of the
// table with the tuned profiles, plus one Tuned record per level.
// The Tuner's own table is not modified.
func (t *Tuner) AutoTune(ctx context.Context, levels []profile.Level, lim Limits, constraint selector.ConstraintMode, evolution evolve.Mode) (profile.Table, []Tuned, error) {
	if len(levels) == 0 {
		return nil, nil, fmt.Errorf("AutoTune: %w", ErrNoLevels)
	}
	if err := lim.Validate(); err != nil {
		return nil, nil, fmt.Errorf("AutoTune: %w", err)
	}

	tuned := make([]Tuned, len(levels))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(t.workers).WithCancelOnError().WithFirstError()
	for i, level := range levels {
		p.Go(func(ctx context.Context) error {
			res, err := t.tuneLevel(ctx, level, lim, trial{samples: lim.Samples, constraint: constraint, evolution: evolution})
			if err != nil {
				return err
			}
			tuned[i] = res

			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, nil, fmt.Errorf("AutoTune: %w", err)
	}

	out := t.table.Clone()
	for _, res := range tuned {
		out[res.Level] = res.Best
	}

	return out, tuned, nil
}

func (t *Tuner) tuneLevel(ctx context.Context, level profile.Level, lim Limits, tr trial) (Tuned, error) {
	base, err := t.table.Lookup(level)
	if err != nil {
		return Tuned{}, err
	}

	rep, err := t.run(ctx, level, base, tr)
	if err != nil {
		return Tuned{}, err
	}
	res := Tuned{Level: level, Base: base, Best: base, Baseline: rep.Score(), Final: rep.Score(), Evaluated: 1}
	log := t.log.With(slog.String("level", level.String()))

	for res.Iterations < lim.Iterations {
		cands := neighbours(knobsOf(base), knobsOf(res.Best), lim)
		if len(cands) == 0 {
			break
		}
		res.Iterations++

		improved := false
		for _, k := range cands {
			cand := k.apply(res.Best)
			rep, err := t.run(ctx, level, cand, tr)
			if err != nil {
				return Tuned{}, err
			}
			res.Evaluated++
			if score := rep.Score(); score.Less(res.Final) {
				res.Best, res.Final, improved = cand, score, true
				log.Debug("auto-tune improvement",
					slog.Int("iteration", res.Iterations),
					slog.Float64("lobes_outside_pct", score.LobesOutside),
					slog.Float64("ratio_outside_pct", score.RatioOutside),
				)
			}
		}
		if !improved {
			break
		}
	}

	log.Info("auto-tune finished",
		slog.Int("iterations", res.Iterations),
		slog.Int("evaluated", res.Evaluated),
		slog.Bool("improved", res.Improved()),
	)

	return res, nil
}

// neighbours lists the distinct clamped moves away from cur, in a fixed order.
func neighbours(base, cur knobs, lim Limits) []knobs {
	seen := map[knobs]bool{cur: true}
	var out []knobs
	for _, sm := range stepSigns {
		for _, st := range stepSigns {
			for _, ss := range stepSigns {
				if sm == 0 && st == 0 && ss == 0 {
					continue
				}
				for _, sr := range stepSigns {
					k := knobs{
						m:       intmath.Clamp(cur.m+sm*lim.StepMCandidates, base.m, lim.MaxMCandidates),
						top:     intmath.Clamp(cur.top+st*lim.StepTopN, base.top, lim.MaxTopN),
						samples: intmath.Clamp(cur.samples+ss*lim.StepSamples, base.samples, lim.MaxSamples),
						retry:   intmath.Clamp(cur.retry+sr*lim.StepRetry, base.retry, lim.MaxRetry),
					}
					if seen[k] {
						continue
					}
					seen[k] = true
					out = append(out, k)
				}
			}
		}
	}

	return out
}
