// Package interval provides closed integer intervals, disjoint unions of them,
// and the weighted draws the pen-offset selector uses to sample "everything in
// the feasible range except the degenerate bands".
//
//	u := interval.Union{{Lo: 0, Hi: 100}}
//	u = interval.Subtract(u, interval.Interval{Lo: 40, Hi: 60})
//	// u == [[0,39] [61,100]]
//	v, ok := interval.DrawWithHighBias(src, u, 0.6)
//
// Draw policy (DrawWithHighBias):
//   - one interval:  uniform inside it;
//   - two intervals: the one with the larger upper bound wins with
//     probability clamp01(highPref), then uniform inside the winner;
//   - more:          keep the three with the largest upper bounds; the top one
//     wins with probability highPref, otherwise pick among the rest
//     proportionally to width.
//
// All operations are deterministic for a given random stream.
package interval
