package captions

import "sort"

// SpeedSection describes one span of the original timeline that was played
// back at a different speed during editing.
type SpeedSection struct {
	Start float64
	End   float64
	Speed float64
}

// AdjustForEdits re-expresses caption timing after a trim and/or speed
// sections. Captions that end at or before the trimmed-away region are
// dropped; every surviving caption is returned as a new Entry, the inputs
// are never modified. With trimStart zero and no sections the output equals
// the input.
func AdjustForEdits(entries []Entry, trimStart float64, sections []SpeedSection) []Entry {
	adjusted := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		start := entry.Start - trimStart
		end := entry.End - trimStart
		if end <= 0 {
			continue
		}
		if start < 0 {
			start = 0
		}
		if len(sections) > 0 {
			start = adjustForSpeed(start, sections)
			end = adjustForSpeed(end, sections)
		}
		adjusted = append(adjusted, Entry{
			Start:     start,
			End:       end,
			Text:      entry.Text,
			SegmentID: entry.SegmentID,
		})
	}
	return adjusted
}

// adjustForSpeed moves a single timestamp through the speed sections in
// chronological order. Time inside a section compresses by that section's
// speed; time after a section shifts back by the seconds the section saved.
func adjustForSpeed(t float64, sections []SpeedSection) float64 {
	ordered := append([]SpeedSection(nil), sections...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	var shift float64
	for _, section := range ordered {
		if t < section.Start {
			break
		}
		if t <= section.End {
			return section.Start - shift + (t-section.Start)/section.Speed
		}
		saved := (section.End - section.Start) * (1 - 1/section.Speed)
		shift += saved
	}
	return t - shift
}
