package captions

import (
	"math"
	"strings"
	"testing"

	"demoreel/internal/narration"
	"demoreel/internal/timeline"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateTimes(t *testing.T) {
	markers := timeline.Markers{
		"t_page_loaded":   2.0,
		"t_prompt1_focus": 5.0,
	}
	segments := []narration.Segment{
		{ID: "prompt1", Anchor: "t_prompt1_focus", Offset: 0.2, Text: "go"},
		{ID: "intro", Anchor: "t_page_loaded", Offset: 0.5, Text: "hi"},
	}
	durations := map[string]float64{"intro": 4.0, "prompt1": 3.0}

	entries, skipped := CalculateTimes(segments, markers, durations)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(entries))
	}
	if entries[0].SegmentID != "intro" || !approx(entries[0].Start, 2.5) || !approx(entries[0].End, 6.5) {
		t.Fatalf("unexpected first caption: %+v", entries[0])
	}
	if entries[1].SegmentID != "prompt1" || !approx(entries[1].Start, 5.2) || !approx(entries[1].End, 8.2) {
		t.Fatalf("unexpected second caption: %+v", entries[1])
	}
}

func TestCalculateTimesSkipsGracefully(t *testing.T) {
	markers := timeline.Markers{"t_page_loaded": 2.0}
	segments := []narration.Segment{
		{ID: "intro", Anchor: "t_page_loaded", Offset: 0.5, Text: "hi"},
		{ID: "noaudio", Anchor: "t_page_loaded", Offset: 1.0, Text: "quiet"},
		{ID: "nomarker", Anchor: "t_absent", Offset: 0.0, Text: "lost"},
	}
	durations := map[string]float64{"intro": 4.0, "nomarker": 2.0}

	entries, skipped := CalculateTimes(segments, markers, durations)
	if len(entries) != 1 || entries[0].SegmentID != "intro" {
		t.Fatalf("expected only intro, got %v", entries)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skips, got %v", skipped)
	}
	reasons := map[string]string{}
	for _, skip := range skipped {
		reasons[skip.SegmentID] = skip.Reason
	}
	if !strings.Contains(reasons["noaudio"], "audio") {
		t.Fatalf("unexpected reason for noaudio: %q", reasons["noaudio"])
	}
	if !strings.Contains(reasons["nomarker"], "t_absent") {
		t.Fatalf("unexpected reason for nomarker: %q", reasons["nomarker"])
	}
}

func TestCalculateTimesIgnoresIncompleteSegments(t *testing.T) {
	markers := timeline.Markers{"t_x": 1.0}
	segments := []narration.Segment{
		{ID: "", Anchor: "t_x", Text: "no id"},
		{ID: "no_text", Anchor: "t_x", Text: ""},
	}
	entries, skipped := CalculateTimes(segments, markers, map[string]float64{"no_text": 2.0})
	if len(entries) != 0 || len(skipped) != 0 {
		t.Fatalf("incomplete segments should be ignored silently, got %v %v", entries, skipped)
	}
}

func TestValidateDetectsOverlap(t *testing.T) {
	entries := []Entry{
		{Start: 0, End: 5, Text: "a"},
		{Start: 3, End: 8, Text: "b"},
	}
	result := Validate(entries)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected exactly one issue, got %v", result.Issues)
	}
	if !strings.Contains(result.Issues[0], "2.00s") {
		t.Fatalf("issue should quantify the overlap: %q", result.Issues[0])
	}
}

func TestValidateWarnsOnGapsAndSpeed(t *testing.T) {
	entries := []Entry{
		{Start: 0, End: 2, Text: strings.Repeat("x", 80)}, // 40 chars/sec
		{Start: 10, End: 12, Text: "slow and short"},      // 8s gap before
	}
	result := Validate(entries)
	if !result.Valid {
		t.Fatalf("warnings must not invalidate: %v", result.Issues)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestValidateEmpty(t *testing.T) {
	result := Validate(nil)
	if !result.Valid || result.TotalCaptions != 0 || result.TotalDuration != 0 {
		t.Fatalf("unexpected empty validation: %+v", result)
	}
}
