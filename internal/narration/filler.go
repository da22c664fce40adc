package narration

import (
	"fmt"

	"demoreel/internal/timeline"
)

// fillerTailGuard keeps a filler line from starting so late it would run past
// the end of the monitored window.
const fillerTailGuard = 0.5

// InjectFillers evaluates conditional segments against a frozen marker
// snapshot and appends the fillers whose conditions hold. Each conditional is
// evaluated exactly once. Repeatable fillers materialize at offset,
// offset+interval, ... capped by MaxRepeats and by how many fit inside the
// monitored window. Ids already present in the base set are skipped.
//
// The input slice is not modified; the combined set and the added fillers are
// returned separately so callers can report what was injected.
func InjectFillers(segments []Segment, conditionals []ConditionalSegment, markers timeline.Markers) ([]Segment, []Segment) {
	existing := make(map[string]struct{}, len(segments))
	for _, seg := range segments {
		existing[seg.ID] = struct{}{}
	}

	var added []Segment
	for _, cond := range conditionals {
		if !conditionMet(cond.Condition, markers) {
			continue
		}
		anchor, window, bounded := monitoredWindow(cond.Condition, markers)
		if bounded && cond.Offset >= window-fillerTailGuard {
			continue
		}

		repeats := 1
		if cond.Repeatable && cond.RepeatInterval > 0 {
			repeats = cond.MaxRepeats
			if bounded {
				maxByTime := int((window-cond.Offset)/cond.RepeatInterval) + 1
				if maxByTime < repeats {
					repeats = maxByTime
				}
			}
		}
		if repeats < 1 {
			continue
		}

		for i := 0; i < repeats; i++ {
			id := cond.ID
			if repeats > 1 {
				id = fmt.Sprintf("%s_%d", cond.ID, i+1)
			}
			if _, dup := existing[id]; dup {
				continue
			}
			offset := cond.Offset + float64(i)*cond.RepeatInterval
			if bounded && offset >= window-fillerTailGuard {
				continue
			}
			existing[id] = struct{}{}
			added = append(added, Segment{
				ID:     id,
				Anchor: anchor,
				Offset: offset,
				Text:   cond.Text,
			})
		}
	}

	if len(added) == 0 {
		return segments, nil
	}
	combined := make([]Segment, 0, len(segments)+len(added))
	combined = append(combined, segments...)
	combined = append(combined, added...)
	return combined, added
}

func conditionMet(cond Condition, markers timeline.Markers) bool {
	switch cond.Kind {
	case ConditionMarkerExists:
		_, ok := markers.Time(markerName(cond))
		return ok
	case ConditionDurationBetween, "":
		start, okStart := markers.Time(cond.StartMarker)
		end, okEnd := markers.Time(cond.EndMarker)
		if !okStart || !okEnd {
			return false
		}
		duration := end - start
		if duration < cond.MinDuration {
			return false
		}
		if cond.MaxDuration > 0 && duration > cond.MaxDuration {
			return false
		}
		return true
	default:
		return false
	}
}

// monitoredWindow returns the anchor marker the filler attaches to and the
// window length it must fit inside. A marker-existence condition has no end
// marker, so its window is unbounded.
func monitoredWindow(cond Condition, markers timeline.Markers) (anchor string, window float64, bounded bool) {
	anchor = markerName(cond)
	start, _ := markers.Time(anchor)
	if cond.Kind == ConditionMarkerExists || cond.EndMarker == "" {
		return anchor, 0, false
	}
	end, ok := markers.Time(cond.EndMarker)
	if !ok {
		return anchor, 0, false
	}
	return anchor, end - start, true
}

func markerName(cond Condition) string {
	if cond.StartMarker != "" {
		return cond.StartMarker
	}
	return cond.Marker
}
