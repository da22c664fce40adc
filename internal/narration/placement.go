package narration

import (
	"fmt"
	"sort"
	"strings"

	"demoreel/internal/timeline"
)

// MissingAnchorError reports a strict resolution failure. It names the first
// missing anchor and every marker that was available so the operator can fix
// the request or re-record.
type MissingAnchorError struct {
	Anchor    string
	Available []string
}

func (e *MissingAnchorError) Error() string {
	return fmt.Sprintf("timeline marker %q not found; available markers: %s",
		e.Anchor, strings.Join(e.Available, ", "))
}

// ResolveStrict maps each segment to an absolute start time requiring an
// exact anchor match. Any missing anchor fails the whole batch; no partial
// result is returned. Start times clamp at zero and the result is sorted
// ascending.
func ResolveStrict(segments []Segment, markers timeline.Markers) ([]PositionedSegment, error) {
	positioned := make([]PositionedSegment, 0, len(segments))
	for _, seg := range segments {
		anchorTime, ok := markers.Time(seg.Anchor)
		if !ok {
			return nil, &MissingAnchorError{Anchor: seg.Anchor, Available: markers.Names()}
		}
		positioned = append(positioned, position(seg, anchorTime))
	}
	sortByStart(positioned)
	return positioned, nil
}

// LenientResult carries the placements the lenient resolver produced plus the
// anchors (or segment ids, when the segment had no anchor) it had to give up
// on.
type LenientResult struct {
	Positioned []PositionedSegment
	Missing    []string
	Matches    []FuzzyMatch
}

// FuzzyMatch records a non-exact anchor resolution for diagnostics.
type FuzzyMatch struct {
	SegmentID string
	Anchor    string
	Marker    string
	Strategy  string
}

// ResolveLenient maps segments to start times with ranked fallback matching:
// exact anchor, fuzzy name containment, then inference from the segment id.
// It never fails; unplaceable segments are dropped and reported. The matching
// is heuristic and can false-positive on pathological marker names.
func ResolveLenient(segments []Segment, markers timeline.Markers) LenientResult {
	var result LenientResult
	for _, seg := range segments {
		marker, strategy, ok := matchAnchor(seg, markers)
		if !ok {
			name := seg.Anchor
			if name == "" {
				name = fmt.Sprintf("(segment: %s)", strings.ToLower(seg.ID))
			}
			result.Missing = append(result.Missing, name)
			continue
		}
		anchorTime, _ := markers.Time(marker)
		result.Positioned = append(result.Positioned, position(seg, anchorTime))
		if strategy != "exact" {
			result.Matches = append(result.Matches, FuzzyMatch{
				SegmentID: seg.ID,
				Anchor:    seg.Anchor,
				Marker:    marker,
				Strategy:  strategy,
			})
		}
	}
	sortByStart(result.Positioned)
	return result
}

// anchorMatcher attempts one resolution strategy. Strategies run in order;
// the first hit wins.
type anchorMatcher struct {
	name  string
	match func(seg Segment, markers timeline.Markers) (string, bool)
}

var anchorMatchers = []anchorMatcher{
	{name: "exact", match: matchExact},
	{name: "fuzzy", match: matchFuzzy},
	{name: "inference", match: matchInference},
}

func matchAnchor(seg Segment, markers timeline.Markers) (marker, strategy string, ok bool) {
	for _, m := range anchorMatchers {
		if found, hit := m.match(seg, markers); hit {
			return found, m.name, true
		}
	}
	return "", "", false
}

func matchExact(seg Segment, markers timeline.Markers) (string, bool) {
	if seg.Anchor == "" {
		return "", false
	}
	_, ok := markers.Time(seg.Anchor)
	return seg.Anchor, ok
}

// Suffixes stripped from an anchor before fuzzy containment. An anchor like
// t_dashboards_view then matches markers such as t_dashboards_screenshot.
var fuzzySuffixes = []string{"_view", "_loaded", "_ready"}

func matchFuzzy(seg Segment, markers timeline.Markers) (string, bool) {
	if seg.Anchor == "" {
		return "", false
	}
	base := seg.Anchor
	for _, suffix := range fuzzySuffixes {
		base = strings.ReplaceAll(base, suffix, "")
	}
	// Markers are scanned in time order so the earliest candidate wins
	// deterministically.
	for _, marker := range markers.Sorted() {
		if strings.Contains(marker.Name, base) || strings.Contains(seg.Anchor, marker.Name) {
			return marker.Name, true
		}
	}
	return "", false
}

func matchInference(seg Segment, markers timeline.Markers) (string, bool) {
	id := strings.ToLower(seg.ID)
	if id == "" {
		return "", false
	}
	for _, marker := range markers.Sorted() {
		if strings.Contains(strings.ToLower(marker.Name), id) {
			return marker.Name, true
		}
	}
	return "", false
}

func position(seg Segment, anchorTime float64) PositionedSegment {
	start := anchorTime + seg.Offset
	if start < 0 {
		start = 0
	}
	return PositionedSegment{
		ID:        seg.ID,
		Text:      seg.Text,
		Start:     start,
		AudioPath: seg.AudioPath,
		Duration:  seg.Duration,
	}
}

func sortByStart(segments []PositionedSegment) {
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
}
