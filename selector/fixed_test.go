package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
)

// TestFixedRadius_Bounds checks range, sources and candidate provenance.
func TestFixedRadius_Bounds(t *testing.T) {
	rich := selector.DivisorRichRadii()
	s := selector.New(selector.WithSeed(17))

	for _, level := range profile.Levels() {
		for _, e := range allEvolutions {
			p := params(t, level, selector.Physical, e)
			prev := evolve.None
			for range 200 {
				f, err := s.FixedRadius(prev, p)
				require.NoError(t, err)
				require.GreaterOrEqual(t, f.R, selector.DefaultFixedMin)
				require.LessOrEqual(t, f.R, selector.DefaultFixedMax)
				require.Equal(t, f.R, f.Trace.Chosen)
				require.LessOrEqual(t, len(f.Trace.Candidates), 6)
				for _, c := range f.Trace.Candidates {
					require.Contains(t, rich, c)
				}
				switch f.Trace.Source {
				case selector.FixedForced:
					require.False(t, f.Trace.ClampedFeasible)
					require.Contains(t, f.Trace.Candidates, f.R)
				case selector.FixedPreferred:
					require.Contains(t, f.Trace.Candidates, f.R)
				case selector.FixedSnapped:
					require.True(t, f.Trace.ClampedFeasible)
					if step := p.Profile.FixedRadiusStep; step > 0 && f.R != selector.DefaultFixedMax {
						require.Zero(t, f.R%step, "R=%d step=%d", f.R, step)
					}
				default:
					t.Fatalf("unexpected source %q", f.Trace.Source)
				}
				prev = evolve.From(f.R)
			}
		}
	}
}

// TestFixedRadius_ForcesDivisorRich narrows the range to {127, 128}: 127 is
// prime and has no on-target solution, so it is always replaced by 128.
func TestFixedRadius_ForcesDivisorRich(t *testing.T) {
	p := params(t, profile.Medium, selector.Physical, evolve.Random)
	forced := 0
	for seed := int64(1); seed <= 40; seed++ {
		s := selector.New(selector.WithSeed(seed), selector.WithFixedRadiusRange(127, 128))
		f, err := s.FixedRadius(evolve.None, p)
		require.NoError(t, err)
		require.Equal(t, 128, f.R)
		if f.Trace.Source == selector.FixedForced {
			forced++
			assert.Equal(t, 127, f.Trace.Clamped)
		}
	}
	assert.Positive(t, forced)
}

// TestFixedRadius_NoPreferredInRange falls back to snapping.
func TestFixedRadius_NoPreferredInRange(t *testing.T) {
	p := params(t, profile.Medium, selector.Physical, evolve.Random)
	s := selector.New(selector.WithSeed(3), selector.WithFixedRadiusRange(10, 50))
	for range 100 {
		f, err := s.FixedRadius(evolve.None, p)
		require.NoError(t, err)
		assert.Empty(t, f.Trace.Candidates)
		assert.Equal(t, selector.FixedSnapped, f.Trace.Source)
		assert.Zero(t, f.R%5)
		assert.GreaterOrEqual(t, f.R, 10)
		assert.LessOrEqual(t, f.R, 50)
	}
}

// TestDivisorRichRadii_Copy guards the package table against mutation.
func TestDivisorRichRadii_Copy(t *testing.T) {
	a := selector.DivisorRichRadii()
	a[0] = -1
	assert.Equal(t, 120, selector.DivisorRichRadii()[0])
}
