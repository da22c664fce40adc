package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"demoreel/internal/narration"
	"demoreel/internal/runstore"
	"demoreel/internal/timemap"
)

// narrationManifest records the synthesized segments the narrate stage
// produced; later stages read it instead of re-resolving the request.
type narrationManifest struct {
	Segments []manifestSegment `json:"segments"`
	Fillers  []string          `json:"fillers,omitempty"`
}

type manifestSegment struct {
	ID        string  `json:"id"`
	Anchor    string  `json:"anchor"`
	Offset    float64 `json:"offset"`
	Text      string  `json:"text"`
	AudioPath string  `json:"audio_path"`
	Duration  float64 `json:"duration"`
}

func (m narrationManifest) toSegments() []narration.Segment {
	segments := make([]narration.Segment, 0, len(m.Segments))
	for _, seg := range m.Segments {
		segments = append(segments, narration.Segment{
			ID:        seg.ID,
			Anchor:    seg.Anchor,
			Offset:    seg.Offset,
			Text:      seg.Text,
			AudioPath: seg.AudioPath,
			Duration:  seg.Duration,
		})
	}
	return segments
}

func manifestFromSegments(segments []narration.Segment, fillerIDs []string) narrationManifest {
	manifest := narrationManifest{Fillers: fillerIDs}
	for _, seg := range segments {
		manifest.Segments = append(manifest.Segments, manifestSegment{
			ID:        seg.ID,
			Anchor:    seg.Anchor,
			Offset:    seg.Offset,
			Text:      seg.Text,
			AudioPath: seg.AudioPath,
			Duration:  seg.Duration,
		})
	}
	return manifest
}

// placementArtifact is the JSON stored on the run after the place stage.
type placementArtifact struct {
	Segments    []placedSegment    `json:"segments"`
	Adjustments []adjustmentRecord `json:"adjustments,omitempty"`
	Missing     []string           `json:"missing,omitempty"`
}

type placedSegment struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	AudioPath string  `json:"audio_path"`
	Duration  float64 `json:"duration"`
}

type adjustmentRecord struct {
	ID            string  `json:"id"`
	OriginalStart float64 `json:"original_start"`
	NewStart      float64 `json:"new_start"`
}

func (a placementArtifact) toPositioned() []narration.PositionedSegment {
	positioned := make([]narration.PositionedSegment, 0, len(a.Segments))
	for _, seg := range a.Segments {
		positioned = append(positioned, narration.PositionedSegment{
			ID:        seg.ID,
			Text:      seg.Text,
			Start:     seg.Start,
			AudioPath: seg.AudioPath,
			Duration:  seg.Duration,
		})
	}
	return positioned
}

// timeMapArtifact is the JSON stored on the run after the speedup stage.
// Gaps plus the factor are enough to rebuild the mapping and the caption
// speed sections.
type timeMapArtifact struct {
	Factor        float64            `json:"factor"`
	VideoDuration float64            `json:"video_duration"`
	Gaps          []intervalArtifact `json:"gaps,omitempty"`
}

type intervalArtifact struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (t timeMapArtifact) gapIntervals() []timemap.Interval {
	intervals := make([]timemap.Interval, 0, len(t.Gaps))
	for _, gap := range t.Gaps {
		intervals = append(intervals, timemap.Interval{Start: gap.Start, End: gap.End})
	}
	return intervals
}

// DecodePlacement rebuilds the placement result and overlap adjustments from
// the run's stored artifact, for report rendering.
func DecodePlacement(run *runstore.Run) (narration.LenientResult, []narration.Adjustment, error) {
	var artifact placementArtifact
	if err := decodeJSON(run.PlacementJSON, &artifact); err != nil {
		return narration.LenientResult{}, nil, fmt.Errorf("placement artifact: %w", err)
	}
	result := narration.LenientResult{
		Positioned: artifact.toPositioned(),
		Missing:    artifact.Missing,
	}
	adjustments := make([]narration.Adjustment, 0, len(artifact.Adjustments))
	for _, adj := range artifact.Adjustments {
		adjustments = append(adjustments, narration.Adjustment{
			ID:            adj.ID,
			OriginalStart: adj.OriginalStart,
			NewStart:      adj.NewStart,
		})
	}
	return result, adjustments, nil
}

// DecodeTimeMap rebuilds the gap list and mapping from the run's stored
// artifact, for report rendering.
func DecodeTimeMap(run *runstore.Run) ([]timemap.Interval, timemap.Mapping, error) {
	var artifact timeMapArtifact
	if err := decodeJSON(run.TimeMapJSON, &artifact); err != nil {
		return nil, timemap.Mapping{}, fmt.Errorf("time map artifact: %w", err)
	}
	gaps := artifact.gapIntervals()
	if len(gaps) == 0 {
		return nil, timemap.Identity(artifact.VideoDuration), nil
	}
	return gaps, timemap.Build(gaps, nil, artifact.VideoDuration, artifact.Factor), nil
}

func writeJSONFile(path string, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSONFile(path string, value any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, value); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func encodeJSON(value any) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}
	return string(encoded), nil
}

func decodeJSON(data string, value any) error {
	if data == "" {
		return fmt.Errorf("artifact is empty")
	}
	return json.Unmarshal([]byte(data), value)
}
