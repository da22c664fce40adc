package request

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"demoreel/internal/narration"
)

// Request describes one demo video to build.
type Request struct {
	Version   string            `yaml:"version"`
	Title     string            `yaml:"title"`
	Video     string            `yaml:"video"`
	Markers   string            `yaml:"markers"`
	Template  string            `yaml:"template,omitempty"`
	Overrides map[string]string `yaml:"overrides,omitempty"`
	Segments  []Segment         `yaml:"segments,omitempty"`
	Fillers   []Filler          `yaml:"fillers,omitempty"`
	Editing   *Editing          `yaml:"editing,omitempty"`
}

// Segment is one scripted narration line in a request file.
type Segment struct {
	ID     string  `yaml:"id"`
	Anchor string  `yaml:"anchor"`
	Offset float64 `yaml:"offset"`
	Text   string  `yaml:"text"`
}

// Filler is a conditional narration line injected into quiet stretches.
type Filler struct {
	ID         string    `yaml:"id"`
	Text       string    `yaml:"text"`
	Offset     float64   `yaml:"offset"`
	Condition  Condition `yaml:"condition"`
	Repeatable bool      `yaml:"repeatable,omitempty"`
	MaxRepeats int       `yaml:"max_repeats,omitempty"`
	Interval   float64   `yaml:"interval,omitempty"`
}

// Condition is the trigger for a filler.
type Condition struct {
	Kind        string  `yaml:"kind"`
	Marker      string  `yaml:"marker,omitempty"`
	StartMarker string  `yaml:"start_marker,omitempty"`
	EndMarker   string  `yaml:"end_marker,omitempty"`
	MinDuration float64 `yaml:"min_duration,omitempty"`
	MaxDuration float64 `yaml:"max_duration,omitempty"`
}

// Editing carries per-run overrides of the configured editing settings.
// Nil pointer fields mean "use the config value".
type Editing struct {
	SpeedupFactor  *float64 `yaml:"speedup_factor,omitempty"`
	MinGapSeconds  *float64 `yaml:"min_gap_seconds,omitempty"`
	DisableSpeedup *bool    `yaml:"disable_speedup,omitempty"`
}

// Read loads and validates a request file.
func Read(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request %s: %w", path, err)
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, err)
	}
	req.normalize()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	return &req, nil
}

// normalize fills in defaults the YAML may omit. A repeatable filler without
// max_repeats materializes once.
func (r *Request) normalize() {
	for i := range r.Fillers {
		if r.Fillers[i].MaxRepeats < 1 {
			r.Fillers[i].MaxRepeats = 1
		}
	}
}

// Write serializes a request to a YAML file.
func Write(req *Request, path string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write request %s: %w", path, err)
	}
	return nil
}

// Validate checks the request for structural problems before any pipeline
// work starts.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Template) == "" && len(r.Segments) == 0 {
		return fmt.Errorf("either template or segments must be set")
	}
	if strings.TrimSpace(r.Template) != "" && len(r.Segments) > 0 {
		return fmt.Errorf("template and inline segments are mutually exclusive")
	}

	seen := make(map[string]struct{}, len(r.Segments))
	for i, seg := range r.Segments {
		if strings.TrimSpace(seg.ID) == "" {
			return fmt.Errorf("segments[%d]: id must be set", i)
		}
		if _, dup := seen[seg.ID]; dup {
			return fmt.Errorf("segments[%d]: duplicate id %q", i, seg.ID)
		}
		seen[seg.ID] = struct{}{}
		if strings.TrimSpace(seg.Anchor) == "" {
			return fmt.Errorf("segment %q: anchor must be set", seg.ID)
		}
		if strings.TrimSpace(seg.Text) == "" {
			return fmt.Errorf("segment %q: text must be set", seg.ID)
		}
	}

	for i, filler := range r.Fillers {
		if strings.TrimSpace(filler.ID) == "" {
			return fmt.Errorf("fillers[%d]: id must be set", i)
		}
		if strings.TrimSpace(filler.Text) == "" {
			return fmt.Errorf("filler %q: text must be set", filler.ID)
		}
		switch filler.Condition.Kind {
		case "marker_exists":
			if strings.TrimSpace(filler.Condition.Marker) == "" {
				return fmt.Errorf("filler %q: marker_exists condition needs marker", filler.ID)
			}
		case "", "duration_between":
			if strings.TrimSpace(filler.Condition.StartMarker) == "" {
				return fmt.Errorf("filler %q: duration_between condition needs start_marker", filler.ID)
			}
		default:
			return fmt.Errorf("filler %q: unknown condition kind %q", filler.ID, filler.Condition.Kind)
		}
		if filler.Repeatable && filler.Interval <= 0 {
			return fmt.Errorf("filler %q: repeatable fillers need a positive interval", filler.ID)
		}
	}

	return nil
}

// Resolve produces the narration plan: either the rendered template or the
// request's inline segments.
func (r *Request) Resolve() ([]narration.Segment, []narration.ConditionalSegment, error) {
	if strings.TrimSpace(r.Template) != "" {
		tpl, err := narration.LoadTemplate(r.Template)
		if err != nil {
			return nil, nil, err
		}
		segments, conditionals := tpl.Render(r.Overrides)
		return segments, conditionals, nil
	}

	segments := make([]narration.Segment, len(r.Segments))
	for i, seg := range r.Segments {
		segments[i] = narration.Segment{
			ID:     seg.ID,
			Anchor: seg.Anchor,
			Offset: seg.Offset,
			Text:   seg.Text,
		}
	}

	conditionals := make([]narration.ConditionalSegment, len(r.Fillers))
	for i, filler := range r.Fillers {
		conditionals[i] = narration.ConditionalSegment{
			ID:     filler.ID,
			Text:   filler.Text,
			Offset: filler.Offset,
			Condition: narration.Condition{
				Kind:        narration.ConditionKind(filler.Condition.Kind),
				Marker:      filler.Condition.Marker,
				StartMarker: filler.Condition.StartMarker,
				EndMarker:   filler.Condition.EndMarker,
				MinDuration: filler.Condition.MinDuration,
				MaxDuration: filler.Condition.MaxDuration,
			},
			Repeatable:     filler.Repeatable,
			MaxRepeats:     filler.MaxRepeats,
			RepeatInterval: filler.Interval,
		}
	}
	return segments, conditionals, nil
}
