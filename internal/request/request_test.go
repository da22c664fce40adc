package request_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"demoreel/internal/request"
)

const sampleRequest = `version: "1"
title: Checkout demo
video: recordings/checkout.mp4
markers: recordings/checkout.md
segments:
  - id: intro
    anchor: t_page_loaded
    offset: 0.5
    text: Welcome to the checkout flow.
  - id: submit
    anchor: t_order_submitted
    offset: 0.2
    text: One click places the order.
fillers:
  - id: processing_filler
    text: The agent is still working.
    offset: 4
    condition:
      kind: duration_between
      start_marker: t_processing_started
      end_marker: t_processing_done
      min_duration: 8
    repeatable: true
    max_repeats: 2
    interval: 6
editing:
  speedup_factor: 2.5
`

func writeRequest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write request: %v", err)
	}
	return path
}

func TestReadInlineRequest(t *testing.T) {
	req, err := request.Read(writeRequest(t, sampleRequest))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if req.Title != "Checkout demo" {
		t.Fatalf("unexpected title: %q", req.Title)
	}
	if len(req.Segments) != 2 || req.Segments[0].ID != "intro" {
		t.Fatalf("unexpected segments: %+v", req.Segments)
	}
	if req.Editing == nil || req.Editing.SpeedupFactor == nil || *req.Editing.SpeedupFactor != 2.5 {
		t.Fatalf("unexpected editing overrides: %+v", req.Editing)
	}

	segments, conditionals, err := req.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(segments) != 2 || segments[1].Anchor != "t_order_submitted" {
		t.Fatalf("unexpected resolved segments: %+v", segments)
	}
	if len(conditionals) != 1 {
		t.Fatalf("expected 1 conditional, got %d", len(conditionals))
	}
	cond := conditionals[0]
	if cond.ID != "processing_filler" || !cond.Repeatable || cond.MaxRepeats != 2 || cond.RepeatInterval != 6 {
		t.Fatalf("unexpected conditional: %+v", cond)
	}
	if cond.Condition.StartMarker != "t_processing_started" || cond.Condition.MinDuration != 8 {
		t.Fatalf("unexpected condition: %+v", cond.Condition)
	}
}

func TestReadTemplateRequest(t *testing.T) {
	content := `version: "1"
title: Agent demo
video: agent.mp4
markers: agent.md
template: ai_agent_default
overrides:
  prompt_text: build me a revenue dashboard
  followup_prompt: add a regional breakdown
`
	req, err := request.Read(writeRequest(t, content))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	segments, _, err := req.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(segments) == 0 {
		t.Fatal("expected template segments")
	}
	var sawOverride bool
	for _, seg := range segments {
		if strings.Contains(seg.Text, "{prompt_text}") {
			t.Fatalf("placeholder not substituted in %q", seg.Text)
		}
		if strings.Contains(seg.Text, "build me a revenue dashboard") {
			sawOverride = true
		}
	}
	if !sawOverride {
		t.Fatal("expected override text in rendered segments")
	}
}

func TestReadDefaultsFillerMaxRepeats(t *testing.T) {
	content := `version: "1"
title: Demo
video: v.mp4
markers: m.md
segments:
  - id: intro
    anchor: t_start
    text: Hello.
fillers:
  - id: waiting
    text: Still working.
    offset: 4
    condition:
      kind: duration_between
      start_marker: t_a
      end_marker: t_b
      min_duration: 8
    repeatable: true
    interval: 6
`
	req, err := request.Read(writeRequest(t, content))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if req.Fillers[0].MaxRepeats != 1 {
		t.Fatalf("expected omitted max_repeats to default to 1, got %d", req.Fillers[0].MaxRepeats)
	}
}

func TestReadRejectsInvalidRequests(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no segments or template",
			content: "version: \"1\"\nvideo: a.mp4\nmarkers: a.md\n",
			wantErr: "either template or segments",
		},
		{
			name: "template and segments",
			content: `template: ai_agent_default
segments:
  - id: a
    anchor: t_x
    text: hi
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "duplicate ids",
			content: `segments:
  - id: a
    anchor: t_x
    text: hi
  - id: a
    anchor: t_y
    text: again
`,
			wantErr: "duplicate id",
		},
		{
			name: "missing anchor",
			content: `segments:
  - id: a
    text: hi
`,
			wantErr: "anchor must be set",
		},
		{
			name: "bad condition kind",
			content: `segments:
  - id: a
    anchor: t_x
    text: hi
fillers:
  - id: f
    text: filler
    condition:
      kind: phase_of_moon
`,
			wantErr: "unknown condition kind",
		},
		{
			name: "repeatable without interval",
			content: `segments:
  - id: a
    anchor: t_x
    text: hi
fillers:
  - id: f
    text: filler
    repeatable: true
    condition:
      kind: marker_exists
      marker: t_x
`,
			wantErr: "positive interval",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := request.Read(writeRequest(t, tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	original, err := request.Read(writeRequest(t, sampleRequest))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	path := filepath.Join(t.TempDir(), "copy.yaml")
	if err := request.Write(original, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reread, err := request.Read(path)
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if reread.Title != original.Title || len(reread.Segments) != len(original.Segments) {
		t.Fatalf("round trip mismatch: %+v vs %+v", reread, original)
	}
}
