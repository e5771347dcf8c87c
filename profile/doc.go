// Package profile holds the complexity profiles that steer parameter
// selection: how many lobes a curve should show, how fast it should close,
// how spiky it may get, and how much search effort the selectors may spend.
//
// Four levels ship by default (Simple, Medium, Complex, Dense). A profile is an
// immutable value; callers obtain one from a Table:
//
//	tbl := profile.Defaults()
//	p, err := tbl.Lookup(profile.Medium)
//
// Tables can be overridden from JSON (see LoadTable), e.g.
//
//	{"medium": {"diff_min": 14, "lobe_ranges": [[12, 24]]}}
//
// Every profile entering a selector is validated (Validate); invalid profiles
// are a programming error and surface as ErrInvalidProfile.
package profile
