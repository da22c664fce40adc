package narration

// overlapGap is the breathing room inserted when a segment has to be delayed
// past the previous segment's end.
const overlapGap = 0.3

// Adjustment records one overlap fix for the run report.
type Adjustment struct {
	ID            string
	OriginalStart float64
	NewStart      float64
}

// Delta returns how far the segment was pushed, in seconds.
func (a Adjustment) Delta() float64 {
	return a.NewStart - a.OriginalStart
}

// FixOverlaps guarantees a non-overlapping schedule with a single
// left-to-right cascading pass over segments already sorted by start time.
// A segment that would begin before the previous one ends is delayed to the
// previous end plus 300 ms; segments are never moved earlier. The input is
// not mutated; adjusted copies are returned alongside a description of every
// shift.
func FixOverlaps(segments []PositionedSegment) ([]PositionedSegment, []Adjustment) {
	if len(segments) < 2 {
		return append([]PositionedSegment(nil), segments...), nil
	}

	fixed := make([]PositionedSegment, 0, len(segments))
	fixed = append(fixed, segments[0])
	var adjustments []Adjustment

	for _, seg := range segments[1:] {
		prev := fixed[len(fixed)-1]
		if prevEnd := prev.End(); seg.Start < prevEnd {
			adjustments = append(adjustments, Adjustment{
				ID:            seg.ID,
				OriginalStart: seg.Start,
				NewStart:      prevEnd + overlapGap,
			})
			seg.Start = prevEnd + overlapGap
		}
		fixed = append(fixed, seg)
	}
	return fixed, adjustments
}
