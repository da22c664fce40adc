package timemap

import "sort"

// Interval is a half-open-ish span of video time in seconds with End > Start.
// Intervals are always derived from other entities (placements, gap
// computation) and never stored long term.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// DeriveGaps finds the video spans with no narration. Protected ranges are
// the placed voiceover intervals; minGap filters out spans too short to be
// worth compressing. Leading and trailing candidates must strictly exceed
// minGap, interior candidates qualify at exactly minGap. With no protected
// ranges the whole video is one gap (if long enough); with no qualifying
// spans the result is empty and the speed-up becomes a no-op.
func DeriveGaps(protected []Interval, videoDuration, minGap float64) []Interval {
	if videoDuration <= 0 {
		return nil
	}
	if len(protected) == 0 {
		if videoDuration > minGap {
			return []Interval{{Start: 0, End: videoDuration}}
		}
		return nil
	}

	ranges := append([]Interval(nil), protected...)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	var gaps []Interval
	if first := ranges[0].Start; first > minGap {
		gaps = append(gaps, Interval{Start: 0, End: first})
	}
	for i := 0; i < len(ranges)-1; i++ {
		start := ranges[i].End
		end := ranges[i+1].Start
		if end-start >= minGap {
			gaps = append(gaps, Interval{Start: start, End: end})
		}
	}
	if last := ranges[len(ranges)-1].End; videoDuration-last > minGap {
		gaps = append(gaps, Interval{Start: last, End: videoDuration})
	}
	return gaps
}

// TotalDuration sums interval lengths.
func TotalDuration(intervals []Interval) float64 {
	var total float64
	for _, interval := range intervals {
		total += interval.Duration()
	}
	return total
}
