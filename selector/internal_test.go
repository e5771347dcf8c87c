package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/interval"
	"github.com/katalvlaran/lvspiro/profile"
)

// TestRegionWeights checks both ends of the interpolation and normalization.
func TestRegionWeights(t *testing.T) {
	sh := DefaultShaping()

	lo := regionWeights(0, sh)
	assert.InDelta(t, 0.78, lo.Main, 1e-12)
	assert.InDelta(t, 0.05, lo.Diff, 1e-12)
	assert.InDelta(t, 0.17, lo.Mid, 1e-12)

	hi := regionWeights(1, sh)
	assert.InDelta(t, 0.30, hi.Main, 1e-12)
	assert.InDelta(t, 0.18, hi.Diff, 1e-12)
	assert.InDelta(t, 0.52, hi.Mid, 1e-12)

	for _, rt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		w := regionWeights(rt, sh)
		assert.InDelta(t, 1.0, w.Main+w.Mid+w.Diff, 1e-12)
	}

	assert.Equal(t, RegionMain, lo.pick(0.10))
	assert.Equal(t, RegionMid, lo.pick(0.80))
	assert.Equal(t, RegionDiff, lo.pick(0.99))
}

// TestRegionSet_Resolve walks the substitution table.
func TestRegionSet_Resolve(t *testing.T) {
	empty := interval.Interval{Lo: 1, Hi: 0}
	full := interval.Interval{Lo: 1, Hi: 10}

	tests := []struct {
		name string
		set  regionSet
		want Region
		got  Region
	}{
		{"available stays", regionSet{RegionMain: full, RegionMid: full, RegionDiff: full}, RegionDiff, RegionDiff},
		{"mid falls to main", regionSet{RegionMain: full, RegionMid: empty, RegionDiff: full}, RegionMid, RegionMain},
		{"diff falls to mid", regionSet{RegionMain: full, RegionMid: full, RegionDiff: empty}, RegionDiff, RegionMid},
		{"diff skips empty mid", regionSet{RegionMain: full, RegionMid: empty, RegionDiff: empty}, RegionDiff, RegionMain},
		{"main falls to mid", regionSet{RegionMain: empty, RegionMid: full, RegionDiff: full}, RegionMain, RegionMid},
		{"main falls to diff", regionSet{RegionMain: empty, RegionMid: empty, RegionDiff: full}, RegionMain, RegionDiff},
		{"nothing left", regionSet{RegionMain: empty, RegionMid: empty, RegionDiff: empty}, RegionMid, RegionMid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.got, tc.set.resolve(tc.want))
		})
	}
}

// TestEffectiveHighPref covers the share scaling and the narrow-left caps.
func TestEffectiveHighPref(t *testing.T) {
	sh := DefaultShaping()
	assert.InDelta(t, 0.65, effectiveHighPref(0.70, 0.9, 10, sh), 1e-12)
	assert.InDelta(t, 0.55, effectiveHighPref(0.70, 0.9, 2, sh), 1e-12)
	assert.InDelta(t, 0.60, effectiveHighPref(0.70, 0.9, 4, sh), 1e-12)
	assert.InDelta(t, 0.525, effectiveHighPref(0.55, 0.5, 10, sh), 1e-12)
}

// TestRadiusMul checks the small-radius widening ramp.
func TestRadiusMul(t *testing.T) {
	sh := DefaultShaping()
	assert.Equal(t, 1.25, radiusMul(10, sh))
	assert.Equal(t, 1.25, radiusMul(18, sh))
	assert.InDelta(t, 1.125, radiusMul(24, sh), 1e-12)
	assert.Equal(t, 1.0, radiusMul(30, sh))
	assert.Equal(t, 1.0, radiusMul(400, sh))
}

// TestKValues covers the full and the sparse enumeration.
func TestKValues(t *testing.T) {
	assert.Nil(t, kValues(5, 4))
	assert.Equal(t, []int{3, 4, 5}, kValues(3, 5))
	assert.Len(t, kValues(1, 17), 17)
	assert.Equal(t, []int{1, 2, 3, 6, 8, 9, 10, 11, 12, 14, 18, 19, 20}, kValues(1, 20))
}

// TestInsertRanked keeps ties in arrival order and truncates.
func TestInsertRanked(t *testing.T) {
	var tier []scoredR
	tier = insertRanked(tier, scoredR{key: ConstructKey{LapsErr: 2}, r: 1}, 3)
	tier = insertRanked(tier, scoredR{key: ConstructKey{LapsErr: 1}, r: 2}, 3)
	tier = insertRanked(tier, scoredR{key: ConstructKey{LapsErr: 2}, r: 3}, 3)
	tier = insertRanked(tier, scoredR{key: ConstructKey{LapsErr: 0}, r: 4}, 3)

	got := make([]int, len(tier))
	for i, c := range tier {
		got[i] = c.r
	}
	assert.Equal(t, []int{4, 2, 1}, got)
}

// TestFixedHelpers pins scoring, feasibility and snapping.
func TestFixedHelpers(t *testing.T) {
	medium := profile.Defaults().MustLookup(profile.Medium)

	lobeErr, lapsErr := scoreFixedRadius(120, medium)
	assert.Equal(t, 0.0, lobeErr)
	assert.Equal(t, 1.0, lapsErr)

	assert.True(t, fixedFeasible(120, medium))
	assert.True(t, fixedFeasible(128, medium))
	assert.False(t, fixedFeasible(127, medium))

	assert.Equal(t, 125, snapRadius(123, 100, 320, 5))
	assert.Equal(t, 120, snapRadius(122, 100, 320, 5))
	assert.Equal(t, 120, snapRadius(125, 100, 320, 10), "half to even")
	assert.Equal(t, 320, snapRadius(400, 100, 320, 10))
	assert.Equal(t, 211, snapRadius(211, 100, 320, 0))

	top := rankPreferred(200, 100, 320, medium)
	require.Len(t, top, preferredFanout)
	for _, r := range top {
		assert.Contains(t, divisorRichRadii, r)
	}
	assert.Nil(t, rankPreferred(50, 10, 60, medium))
}

// scripted replays fixed draws; Intn results are reduced mod n.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scripted) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// TestReroll moves draws between the two main pieces.
func TestReroll(t *testing.T) {
	tiny := interval.Interval{Lo: 10, Hi: 11}
	wide := interval.Interval{Lo: 10, Hi: 19}
	right := interval.Interval{Lo: 60, Hi: 80}

	tests := []struct {
		name       string
		left       interval.Interval
		d          int
		rr         float64
		src        *scripted
		want       int
		wantReroll bool
	}{
		// cap ⌊40·1.55⌋ = 62 ⇒ right.Lo + 1.
		{"tiny left moves right", tiny, 10, 40, &scripted{floats: []float64{0.1}, ints: []int{1}}, 61, true},
		{"tiny left kept on miss", tiny, 11, 40, &scripted{floats: []float64{0.9}}, 11, false},
		// cap ⌊30·1.55⌋ = 46 < right.Lo.
		{"tiny left capped below right", tiny, 10, 30, &scripted{floats: []float64{0.1}}, 10, false},
		{"wide left pulls back", wide, 70, 40, &scripted{floats: []float64{0.1}, ints: []int{3}}, 13, true},
		{"wide left kept on miss", wide, 70, 40, &scripted{floats: []float64{0.5}}, 70, false},
		{"tiny left never pulls back", tiny, 70, 40, &scripted{}, 70, false},
		{"wide left never pushes", wide, 12, 40, &scripted{}, 12, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(WithSource(tc.src))
			tr := &PenTrace{WidthLeft: tc.left.Width(), WidthRight: right.Width()}

			got := s.reroll(tc.d, tc.left, right, tc.rr, tr)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantReroll, tr.Rerolled)
			assert.Empty(t, tc.src.floats, "unused draws")
			assert.Empty(t, tc.src.ints, "unused draws")
		})
	}
}
