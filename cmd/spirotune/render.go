// SPDX-License-Identifier: MIT

package main

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/lvspiro/store"
	"github.com/katalvlaran/lvspiro/tuner"
)

const rule = "================================================================================"

func writeReport(w io.Writer, rep tuner.Report) {
	v, sel, st := rep.Violations, rep.Selection, rep.Stats

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "complexity=%s constraint=%s evolution=%s samples=%s id=%s\n",
		rep.Level, rep.Constraint, rep.Evolution, humanize.Comma(int64(rep.Samples)), rep.ID)
	fmt.Fprintf(w, "violations: ratio_outside=%s lobes_outside=%s diff_below=%s offset_outside=%s laps_over_cap=%s\n",
		pct(v.RatioOutside), pct(v.LobesOutside), pct(v.DiffBelow), pct(v.OffsetOutside), pct(v.LapsOverCap))
	fmt.Fprintf(w, "offsets:    small=%s near_one=%s prolate=%s large=%s ring_like=%s visual_ring_like=%s gcd_eq_1=%s\n",
		pct(v.OffsetSmall), pct(v.OffsetNearOne), pct(v.OffsetProlate), pct(v.OffsetLarge),
		pct(v.RingLike), pct(v.VisualRingLike), pct(v.GCDOne))
	fmt.Fprintf(w, "selection:  constructed=%s sampled=%s fallback=%s attempts_avg=%.2f winning_attempt_avg=%.2f stages=%s\n",
		pct(sel.ConstructedPct), pct(sel.SampledPct), pct(sel.FallbackUsedPct), sel.AttemptsAvg, sel.WinningAttemptAvg,
		counts(sel.FallbackStages))
	fmt.Fprintf(w, "pen:        full_range_fallback=%s diff_band=%s regions=%s\n",
		pct(sel.PenFullRangeFallbackPct), pct(sel.DiffBandPct), counts(sel.Regions))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "metric\tmean\tp05\tp50\tp95\tmin\tmax\t")
	for _, row := range []struct {
		name string
		s    tuner.Summary
	}{
		{"R", st.FixedRadius}, {"r", st.RollingRadius}, {"d", st.PenOffset},
		{"ratio", st.Ratio}, {"gcd", st.GCD}, {"lobes", st.Lobes}, {"lobe_err", st.LobeError},
		{"laps", st.Laps}, {"diff", st.Diff}, {"d/r", st.OffsetFactor}, {"ringness", st.Ringness},
		{"radial_span", st.RadialSpan}, {"rho_min/max", st.RhoMinOverMax}, {"sharpness_p95", st.SharpnessP95},
	} {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			row.name, row.s.Mean, row.s.P05, row.s.P50, row.s.P95, row.s.Min, row.s.Max)
	}
	_ = tw.Flush()
}

// writeCorrelationRanking lists each correlation across levels, strongest first.
func writeCorrelationRanking(w io.Writer, reports []tuner.Report) {
	if len(reports) == 0 {
		return
	}

	for _, c := range []struct {
		name string
		get  func(tuner.Correlations) *float64
	}{
		{"rho_min_over_max_vs_offset_factor", func(c tuner.Correlations) *float64 { return c.RhoVsOffset }},
		{"sharpness_vs_rho_min_over_max", func(c tuner.Correlations) *float64 { return c.SharpnessVsRho }},
		{"sharpness_vs_offset_factor", func(c tuner.Correlations) *float64 { return c.SharpnessVsOffset }},
	} {
		type ranked struct {
			level string
			corr  *float64
		}
		rows := make([]ranked, 0, len(reports))
		for _, rep := range reports {
			rows = append(rows, ranked{rep.Level.String(), c.get(rep.Stats.Correlations)})
		}
		slices.SortStableFunc(rows, func(a, b ranked) int {
			return cmp.Compare(strength(b.corr), strength(a.corr))
		})

		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "corr_%s_ranked (abs desc):\n", c.name)
		for _, r := range rows {
			if r.corr == nil {
				fmt.Fprintf(w, "  %s: n/a\n", r.level)
				continue
			}
			fmt.Fprintf(w, "  %s: %+.4f\n", r.level, *r.corr)
		}
	}
}

func writeEntries(w io.Writer, entries []store.Entry, sf storeFlags) {
	if sf.kind == store.KindSQLite {
		if fi, err := os.Stat(sf.dbPath); err == nil {
			fmt.Fprintf(w, "%s (%s)\n", sf.dbPath, humanize.Bytes(uint64(fi.Size())))
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tLEVEL\tCONSTRAINT\tEVOLUTION\tSAMPLES\tLOBES_OUT\tRATIO_OUT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, humanize.RelTime(e.CreatedAt, time.Now(), "ago", "from now"), e.Level, e.Constraint, e.Evolution,
			humanize.Comma(int64(e.Samples)), pct(e.Score.LobesOutside), pct(e.Score.RatioOutside))
	}
	_ = tw.Flush()
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// counts renders a tally as k=v pairs in key order.
func counts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}

	return strings.Join(parts, ",")
}

func strength(c *float64) float64 {
	if c == nil {
		return -1
	}

	return math.Abs(*c)
}
