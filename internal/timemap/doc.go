// Package timemap computes which parts of a recorded video carry no
// narration and how timestamps move when those parts are sped up.
//
// DeriveGaps complements a set of protected (narration-bearing) ranges
// against the video duration. Build produces a piecewise-linear Mapping from
// original time to post-speed-up time: gap sub-intervals compress by the
// speed factor, protected sub-intervals stay at 1x. Because speed is constant
// inside each sub-interval, linear interpolation between breakpoints is
// exact, so any absolute time computed against the original timeline can be
// projected onto the edited one without re-deriving it from markers.
package timemap
