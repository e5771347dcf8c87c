package profile_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/profile"
)

// TestDefaults_Valid ensures every built-in profile passes validation.
func TestDefaults_Valid(t *testing.T) {
	tbl := profile.Defaults()
	require.Len(t, tbl, len(profile.Levels()))
	for _, level := range profile.Levels() {
		p, err := tbl.Lookup(level)
		require.NoError(t, err, level.String())
		require.NoError(t, p.Validate(), level.String())
		assert.True(t, p.EnforceDiffMinInFallback, level.String())
		assert.True(t, p.AvoidGCDOne, level.String())
	}
	require.NoError(t, tbl.Validate())
}

// TestDefaults_Values pins a few table values that downstream tuning relies on.
func TestDefaults_Values(t *testing.T) {
	tbl := profile.Defaults()

	m := tbl.MustLookup(profile.Medium)
	assert.Equal(t, 2.2, m.RatioMin)
	assert.Equal(t, 4.5, m.RatioMax)
	assert.Equal(t, []profile.LobeRange{{10, 26}}, m.LobeRanges)
	assert.Equal(t, 12, m.DiffMin)
	assert.Equal(t, 5, m.FixedRadiusStep)

	d := tbl.MustLookup(profile.Dense)
	assert.Equal(t, 0, d.FixedRadiusStep)
	assert.Equal(t, 450, d.SampleCount)
	assert.Equal(t, 96, d.LapsMaxHard)
}

// TestDefaults_FreshCopy checks that callers cannot corrupt the built-ins.
func TestDefaults_FreshCopy(t *testing.T) {
	a := profile.Defaults()
	p := a[profile.Simple]
	p.LobeRanges[0] = profile.LobeRange{1, 2}
	a[profile.Simple] = p

	b := profile.Defaults()
	assert.Equal(t, profile.LobeRange{6, 14}, b[profile.Simple].LobeRanges[0])
}

// TestTable_Clone deep-copies lobe ranges.
func TestTable_Clone(t *testing.T) {
	a := profile.Defaults()
	b := a.Clone()
	b[profile.Dense].LobeRanges[0] = profile.LobeRange{3, 4}
	assert.Equal(t, profile.LobeRange{20, 100}, a[profile.Dense].LobeRanges[0])
}

// TestLookup_Unknown wraps ErrUnknownLevel.
func TestLookup_Unknown(t *testing.T) {
	tbl := profile.Table{}
	_, err := tbl.Lookup(profile.Dense)
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrUnknownLevel))
	assert.Panics(t, func() { tbl.MustLookup(profile.Dense) })
}

// TestValidate_Violations walks each invariant once.
func TestValidate_Violations(t *testing.T) {
	base := profile.Defaults()[profile.Medium]
	tests := []struct {
		name   string
		mutate func(p *profile.Profile)
	}{
		{"inverted ratio", func(p *profile.Profile) { p.RatioMin, p.RatioMax = 5, 2 }},
		{"zero ratio", func(p *profile.Profile) { p.RatioMin = 0 }},
		{"no lobes", func(p *profile.Profile) { p.LobeRanges = nil }},
		{"inverted lobes", func(p *profile.Profile) { p.LobeRanges = []profile.LobeRange{{9, 3}} }},
		{"zero lobe", func(p *profile.Profile) { p.LobeRanges = []profile.LobeRange{{0, 3}} }},
		{"laps hard below target", func(p *profile.Profile) { p.LapsMaxHard = 3 }},
		{"negative tolerance", func(p *profile.Profile) { p.LapsTolerance = -1 }},
		{"offset inverted", func(p *profile.Profile) { p.OffsetMinFactor = 2 }},
		{"offset zero", func(p *profile.Profile) { p.OffsetMaxFactor = 0 }},
		{"negative diff", func(p *profile.Profile) { p.DiffMin = -1 }},
		{"negative step", func(p *profile.Profile) { p.FixedRadiusStep = -5 }},
		{"slack eats ratio", func(p *profile.Profile) { p.FallbackRatioSlack = 3 }},
		{"bias above one", func(p *profile.Profile) { p.PreferredRadiusBias = 1.5 }},
		{"ratio bias NaN", func(p *profile.Profile) { p.RatioSampleBias = math.NaN() }},
		{"top n zero", func(p *profile.Profile) { p.ConstructedTopN = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			p.LobeRanges = append([]profile.LobeRange(nil), base.LobeRanges...)
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, profile.ErrInvalidProfile)
		})
	}
}

// TestLobesError covers inside, below, above and multi-range profiles.
func TestLobesError(t *testing.T) {
	p := profile.Profile{LobeRanges: []profile.LobeRange{{10, 20}, {40, 50}}}
	assert.Equal(t, 0.0, p.LobesError(15))
	assert.Equal(t, 0.0, p.LobesError(40))
	assert.Equal(t, 3.0, p.LobesError(7))
	assert.Equal(t, 5.0, p.LobesError(25))
	assert.Equal(t, 10.0, p.LobesError(30))
	assert.Equal(t, 2.0, p.LobesError(52))
	assert.True(t, p.LobesInRange(45))
	assert.False(t, p.LobesInRange(30))

	empty := profile.Profile{}
	assert.True(t, math.IsInf(empty.LobesError(3), 1))
}

// TestLobesAnchorAndTargets checks the constructive-phase aim points.
func TestLobesAnchorAndTargets(t *testing.T) {
	m := profile.Defaults()[profile.Medium]
	assert.Equal(t, 18, m.LobesAnchor())
	assert.Equal(t, []int{10, 16, 18, 20, 26}, m.MTargets())

	narrow := profile.Profile{LobeRanges: []profile.LobeRange{{4, 5}}}
	assert.Equal(t, []int{4, 5}, narrow.MTargets())

	multi := profile.Profile{LobeRanges: []profile.LobeRange{{10, 20}, {40, 50}}}
	assert.Equal(t, 30, multi.LobesAnchor())
	assert.Equal(t, []int{10, 13, 15, 17, 20, 40, 43, 45, 47, 50}, multi.MTargets())
}

// TestRatioHelpers checks penalties and the slack window.
func TestRatioHelpers(t *testing.T) {
	m := profile.Defaults()[profile.Medium]
	assert.Equal(t, 0.0, m.RatioPenalty(3))
	assert.InDelta(t, 0.2, m.RatioPenalty(2.0), 1e-12)
	assert.InDelta(t, 0.5, m.RatioPenalty(5.0), 1e-12)

	lo, hi := m.SlackWindow()
	assert.InDelta(t, 1.85, lo, 1e-12)
	assert.InDelta(t, 4.85, hi, 1e-12)

	assert.Equal(t, 10, m.LapsTargetInt())
	assert.Equal(t, 4.0, m.LapsError(14))
}

// TestLevel_Text round-trips names and rejects unknown ones.
func TestLevel_Text(t *testing.T) {
	for _, level := range profile.Levels() {
		b, err := level.MarshalText()
		require.NoError(t, err)
		var back profile.Level
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, level, back)
	}
	l, err := profile.ParseLevel("DENSE")
	require.NoError(t, err)
	assert.Equal(t, profile.Dense, l)

	_, err = profile.ParseLevel("baroque")
	assert.ErrorIs(t, err, profile.ErrUnknownLevel)
	assert.Equal(t, "Level(9)", profile.Level(9).String())
}

// TestParseTable_Overrides merges partial documents onto the defaults.
func TestParseTable_Overrides(t *testing.T) {
	doc := []byte(`{
		"medium": {"diff_min": 14, "lobe_ranges": [[12, 24]]},
		"Dense":  {"sample_count": 600}
	}`)
	tbl, err := profile.ParseTable(doc)
	require.NoError(t, err)

	m := tbl.MustLookup(profile.Medium)
	assert.Equal(t, 14, m.DiffMin)
	assert.Equal(t, []profile.LobeRange{{12, 24}}, m.LobeRanges)
	assert.Equal(t, 2.2, m.RatioMin, "untouched fields keep defaults")

	assert.Equal(t, 600, tbl.MustLookup(profile.Dense).SampleCount)
	assert.Equal(t, profile.Defaults()[profile.Simple], tbl.MustLookup(profile.Simple))
}

// TestParseTable_Errors covers syntax, unknown levels and invariant breaks.
func TestParseTable_Errors(t *testing.T) {
	_, err := profile.ParseTable([]byte(`{`))
	require.Error(t, err)

	_, err = profile.ParseTable([]byte(`{"rococo": {}}`))
	assert.ErrorIs(t, err, profile.ErrUnknownLevel)

	_, err = profile.ParseTable([]byte(`{"simple": {"ratio_min": 9}}`))
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)
}

// TestLoadTable_RoundTrip writes the marshalled defaults and loads them back.
func TestLoadTable_RoundTrip(t *testing.T) {
	data, err := profile.MarshalTable(profile.Defaults())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"medium"`)
	assert.Contains(t, string(data), `"avoid_gcd_eq_1"`)

	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	tbl, err := profile.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, profile.Defaults(), tbl)

	_, err = profile.LoadTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
