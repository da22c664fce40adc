package captions

import (
	"fmt"
	"sort"

	"demoreel/internal/narration"
	"demoreel/internal/timeline"
)

// Skip explains why a segment produced no caption.
type Skip struct {
	SegmentID string
	Reason    string
}

// CalculateTimes derives a caption for every segment whose anchor and audio
// duration are known: start at marker time + offset, end after the audio
// runs out. Segments with missing pieces are skipped and reported so one bad
// segment cannot sink the whole subtitle file. The result is sorted by start
// time.
func CalculateTimes(segments []narration.Segment, markers timeline.Markers, audioDurations map[string]float64) ([]Entry, []Skip) {
	var entries []Entry
	var skipped []Skip

	for _, seg := range segments {
		if seg.ID == "" || seg.Anchor == "" || seg.Text == "" {
			continue
		}
		duration, ok := audioDurations[seg.ID]
		if !ok || duration <= 0 {
			skipped = append(skipped, Skip{SegmentID: seg.ID, Reason: "audio duration unavailable"})
			continue
		}
		anchorTime, ok := markers.Time(seg.Anchor)
		if !ok {
			skipped = append(skipped, Skip{
				SegmentID: seg.ID,
				Reason:    fmt.Sprintf("anchor marker %q not in timeline", seg.Anchor),
			})
			continue
		}
		start := anchorTime + seg.Offset
		entries = append(entries, Entry{
			Start:     start,
			End:       start + duration,
			Text:      seg.Text,
			SegmentID: seg.ID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Start < entries[j].Start })
	return entries, skipped
}
