package intmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/intmath"
)

// TestDivisors_Table checks ordering and completeness on representative inputs.
func TestDivisors_Table(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{name: "negative", n: -12, want: nil},
		{name: "zero", n: 0, want: nil},
		{name: "one", n: 1, want: []int{1}},
		{name: "prime", n: 13, want: []int{1, 13}},
		{name: "square", n: 36, want: []int{1, 2, 3, 4, 6, 9, 12, 18, 36}},
		{name: "divisor-rich", n: 120, want: []int{1, 2, 3, 4, 5, 6, 8, 10, 12, 15, 20, 24, 30, 40, 60, 120}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, intmath.Divisors(tc.n))
		})
	}
}

// TestDivisors_EveryValueDivides cross-checks against a brute-force count.
func TestDivisors_EveryValueDivides(t *testing.T) {
	for n := 1; n <= 500; n++ {
		divs := intmath.Divisors(n)
		count := 0
		for d := 1; d <= n; d++ {
			if n%d == 0 {
				count++
			}
		}
		require.Len(t, divs, count, "n=%d", n)
		for i, d := range divs {
			require.Zero(t, n%d, "n=%d d=%d", n, d)
			if i > 0 {
				require.Less(t, divs[i-1], d, "ascending order for n=%d", n)
			}
		}
	}
}

// TestGCD covers signs and zero conventions.
func TestGCD(t *testing.T) {
	assert.Equal(t, 30, intmath.GCD(120, 30))
	assert.Equal(t, 1, intmath.GCD(120, 7))
	assert.Equal(t, 6, intmath.GCD(-18, 24))
	assert.Equal(t, 5, intmath.GCD(0, 5))
	assert.Equal(t, 0, intmath.GCD(0, 0))
	assert.True(t, intmath.Coprime(4, 9))
	assert.False(t, intmath.Coprime(4, 6))
}

// TestClosest verifies the stable tie order and the count floor.
func TestClosest(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6, 8, 10, 12}
	assert.Equal(t, []int{6, 8, 5}, intmath.Closest(values, 7, 3), "6 and 8 tie; input order decides")
	assert.Equal(t, []int{10}, intmath.Closest(values, 11, 0))
	assert.Nil(t, intmath.Closest(nil, 3, 2))
	assert.Len(t, intmath.Closest(values, 100, 50), len(values))
}

// TestRoundingHelpers pins the rounding policy.
func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 27, intmath.CeilDiv(120/4.5))
	assert.Equal(t, 54, intmath.FloorDiv(120/2.2))
	assert.Equal(t, 2, intmath.Round(2.5))
	assert.Equal(t, 4, intmath.Round(3.5))
	assert.Equal(t, 7, intmath.Clamp(9, 2, 7))
	assert.Equal(t, 2, intmath.Clamp(-1, 2, 7))
	assert.Equal(t, 5, intmath.Abs(-5))
}
