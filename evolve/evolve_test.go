package evolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/rng"
)

// TestNext_DriftBound pins the drift radius: 0.25·100 = 25 around 50.
func TestNext_DriftBound(t *testing.T) {
	src := rng.New(11)
	for i := 0; i < 5000; i++ {
		v := evolve.Next(src, evolve.From(50), 0, 100, evolve.Drift)
		require.GreaterOrEqual(t, v, 25)
		require.LessOrEqual(t, v, 75)
	}
}

// TestNext_DriftFloorOnNarrowRange uses the MinDrift floor (span 4 → drift 3).
func TestNext_DriftFloorOnNarrowRange(t *testing.T) {
	assert.Equal(t, 3, evolve.DriftRadius(10, 14))
	assert.Equal(t, 25, evolve.DriftRadius(0, 100))

	src := rng.New(5)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := evolve.Next(src, evolve.From(12), 10, 14, evolve.Drift)
		require.GreaterOrEqual(t, v, 10)
		require.LessOrEqual(t, v, 14)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "all values of the narrow range are reachable")
}

// TestNext_RandomUniform runs a chi-square goodness-of-fit test over [0,100].
// 101 bins → 100 degrees of freedom; the 0.999 quantile is ≈ 149.4.
func TestNext_RandomUniform(t *testing.T) {
	const (
		lo, hi   = 0, 100
		draws    = 101 * 200
		critical = 149.4
	)
	src := rng.New(2024)
	counts := make([]int, hi-lo+1)
	for i := 0; i < draws; i++ {
		v := evolve.Next(src, evolve.None, lo, hi, evolve.Random)
		require.GreaterOrEqual(t, v, lo)
		require.LessOrEqual(t, v, hi)
		counts[v-lo]++
	}

	expected := float64(draws) / float64(len(counts))
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	assert.Less(t, chi2, critical, "chi-square statistic too large for a uniform draw")
}

// TestNext_RandomIgnoresPrevious: RANDOM mode with a hint still spans the range.
func TestNext_RandomIgnoresPrevious(t *testing.T) {
	src := rng.New(9)
	far := false
	for i := 0; i < 500; i++ {
		v := evolve.Next(src, evolve.From(50), 0, 100, evolve.Random)
		if v < 20 || v > 80 {
			far = true
		}
	}
	assert.True(t, far)
}

// TestNext_JumpReachesBeyondDrift checks that long jumps happen but stay clamped.
func TestNext_JumpReachesBeyondDrift(t *testing.T) {
	src := rng.New(77)
	beyond := 0
	for i := 0; i < 4000; i++ {
		v := evolve.Next(src, evolve.From(50), 0, 100, evolve.Jump)
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, 100)
		if v < 25 || v > 75 {
			beyond++
		}
	}
	assert.Greater(t, beyond, 100, "jump mode must sometimes leave the drift window")
	assert.Less(t, beyond, 1000, "jumps happen with probability 0.25 and half land inside the window")
}

// TestNext_JumpScaleZeroBehavesLikeStay ensures the option is honored.
func TestNext_JumpScaleZero(t *testing.T) {
	src := rng.New(1)
	for i := 0; i < 500; i++ {
		v := evolve.Next(src, evolve.From(50), 0, 100, evolve.Jump, evolve.WithJumpScale(0))
		require.GreaterOrEqual(t, v, 25)
		require.LessOrEqual(t, v, 75)
	}
	assert.Panics(t, func() { evolve.WithJumpScale(-1) })
}

// TestNext_InvertedRange collapses to lo.
func TestNext_InvertedRange(t *testing.T) {
	src := rng.New(1)
	assert.Equal(t, 7, evolve.Next(src, evolve.None, 7, 3, evolve.Random))
	assert.Equal(t, 7, evolve.Next(src, evolve.From(1), 7, 3, evolve.Drift))
}

// TestNext_Deterministic: same seed, same sequence.
func TestNext_Deterministic(t *testing.T) {
	a, b := rng.New(99), rng.New(99)
	prevA, prevB := evolve.None, evolve.None
	for i := 0; i < 200; i++ {
		va := evolve.Next(a, prevA, 100, 320, evolve.Jump)
		vb := evolve.Next(b, prevB, 100, 320, evolve.Jump)
		require.Equal(t, va, vb)
		prevA, prevB = evolve.From(va), evolve.From(vb)
	}
}

// TestMode_Text round-trips the text form and rejects unknown names.
func TestMode_Text(t *testing.T) {
	for _, m := range []evolve.Mode{evolve.Random, evolve.Drift, evolve.Jump} {
		b, err := m.MarshalText()
		require.NoError(t, err)
		var back evolve.Mode
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, m, back)
	}
	_, err := evolve.ParseMode("sideways")
	assert.Error(t, err)
	assert.False(t, evolve.Mode(9).Valid())
	assert.Equal(t, "Mode(9)", evolve.Mode(9).String())
}
