package tuner_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvspiro/tuner"
)

// TestShapeOf_Hypotrochoid pins R=120, r=30, d=30:
// ρ² = 9000 + 5400·cos 4t, so ρ spans [60, 120].
func TestShapeOf_Hypotrochoid(t *testing.T) {
	s := tuner.ShapeOf(120, 30, 30)
	assert.InDelta(t, 0.5, s.RadialSpan, 1e-9)
	assert.InDelta(t, 0.5, s.RhoMinOverMax, 1e-9)
	assert.Greater(t, s.SharpnessP95, 0.0)
	assert.LessOrEqual(t, s.SharpnessP95, math.Pi)
}

// TestShapeOf_Epitrochoid pins R=30, r=60, d=60 (r > R, two laps):
// ρ² = 11700 − 10800·cos(t/2), so ρ spans [30, 150].
func TestShapeOf_Epitrochoid(t *testing.T) {
	s := tuner.ShapeOf(30, 60, 60)
	assert.InDelta(t, 0.8, s.RadialSpan, 1e-9)
	assert.InDelta(t, 0.2, s.RhoMinOverMax, 1e-9)
}

// TestShapeOf_Invalid checks that non-positive inputs are unmeasurable.
func TestShapeOf_Invalid(t *testing.T) {
	for _, in := range [][3]int{{0, 30, 10}, {120, 0, 10}, {120, 30, 0}, {-1, 30, 10}} {
		s := tuner.ShapeOf(in[0], in[1], in[2])
		assert.True(t, math.IsNaN(s.RadialSpan), "%v", in)
		assert.True(t, math.IsNaN(s.RhoMinOverMax), "%v", in)
		assert.True(t, math.IsNaN(s.SharpnessP95), "%v", in)
	}
}

// TestShapeOf_RingLike checks that a small pen offset yields a thin ring.
func TestShapeOf_RingLike(t *testing.T) {
	s := tuner.ShapeOf(200, 20, 2)
	assert.InDelta(t, 4.0/182.0, s.RadialSpan, 1e-9)
	assert.Less(t, s.RadialSpan, 0.12)
}

// TestRingness checks |d−r|/(d+r).
func TestRingness(t *testing.T) {
	assert.Zero(t, tuner.Ringness(30, 30))
	assert.InDelta(t, 0.5, tuner.Ringness(30, 10), 1e-12)
	assert.InDelta(t, 0.5, tuner.Ringness(10, 30), 1e-12)
	assert.True(t, math.IsNaN(tuner.Ringness(0, 0)))
}
