package timemap

import "sort"

// Breakpoint is one (original time, new time) pair of a piecewise-linear
// time mapping.
type Breakpoint struct {
	Original float64
	New      float64
}

// Mapping projects original-video timestamps onto the sped-up timeline.
// Breakpoints are strictly increasing in both coordinates and cover
// [0, OriginalDuration].
type Mapping struct {
	Breakpoints      []Breakpoint
	OriginalDuration float64
	NewDuration      float64
	Factor           float64
}

// Identity returns the mapping of an untouched video.
func Identity(duration float64) Mapping {
	return Mapping{
		Breakpoints:      []Breakpoint{{0, 0}, {duration, duration}},
		OriginalDuration: duration,
		NewDuration:      duration,
		Factor:           1,
	}
}

// IsIdentity reports whether the mapping changes nothing.
func (m Mapping) IsIdentity() bool {
	return m.NewDuration == m.OriginalDuration
}

// Build walks the sorted union of all gap and protected boundaries from 0 to
// videoDuration, compressing sub-intervals that fall inside a gap by factor
// and passing everything else through at 1x. With no gaps the result is the
// identity mapping.
func Build(gaps, protected []Interval, videoDuration, factor float64) Mapping {
	if len(gaps) == 0 || factor <= 1 {
		return Identity(videoDuration)
	}

	boundaries := map[float64]struct{}{0: {}, videoDuration: {}}
	for _, interval := range gaps {
		boundaries[interval.Start] = struct{}{}
		boundaries[interval.End] = struct{}{}
	}
	for _, interval := range protected {
		boundaries[interval.Start] = struct{}{}
		boundaries[interval.End] = struct{}{}
	}
	times := make([]float64, 0, len(boundaries))
	for t := range boundaries {
		times = append(times, t)
	}
	sort.Float64s(times)

	breakpoints := []Breakpoint{{0, 0}}
	var elapsed float64
	for i := 0; i < len(times)-1; i++ {
		span := times[i+1] - times[i]
		if span <= 0 {
			continue
		}
		if insideGap(gaps, times[i], times[i+1]) {
			elapsed += span / factor
		} else {
			elapsed += span
		}
		breakpoints = append(breakpoints, Breakpoint{Original: times[i+1], New: elapsed})
	}

	return Mapping{
		Breakpoints:      breakpoints,
		OriginalDuration: videoDuration,
		NewDuration:      elapsed,
		Factor:           factor,
	}
}

func insideGap(gaps []Interval, start, end float64) bool {
	for _, gap := range gaps {
		if gap.Start <= start && gap.End >= end {
			return true
		}
	}
	return false
}

// Map converts an original timestamp to its position on the sped-up
// timeline by interpolating between the bracketing breakpoints. Timestamps
// beyond the last breakpoint clamp to the final new time; they only occur
// when a caller asks about a moment past the video's end.
func (m Mapping) Map(original float64) float64 {
	if len(m.Breakpoints) == 0 {
		return original
	}
	prev := m.Breakpoints[0]
	if original <= prev.Original {
		return prev.New
	}
	for _, bp := range m.Breakpoints[1:] {
		if original <= bp.Original {
			if bp.Original == prev.Original {
				return bp.New
			}
			ratio := (original - prev.Original) / (bp.Original - prev.Original)
			return prev.New + ratio*(bp.New-prev.New)
		}
		prev = bp
	}
	return prev.New
}

// MapInterval projects both endpoints of an interval.
func (m Mapping) MapInterval(interval Interval) Interval {
	return Interval{Start: m.Map(interval.Start), End: m.Map(interval.End)}
}
