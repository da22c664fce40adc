package narration

import (
	"strings"
	"testing"
)

func TestBuiltinTemplatesAreSelfConsistent(t *testing.T) {
	for id, template := range BuiltinTemplates() {
		if template.ID != id {
			t.Fatalf("template %q has mismatched id %q", id, template.ID)
		}
		if len(template.Segments) == 0 {
			t.Fatalf("template %q has no segments", id)
		}
		known := make(map[string]struct{}, len(template.WorkflowMarkers))
		for _, marker := range template.WorkflowMarkers {
			known[marker] = struct{}{}
		}
		for _, seg := range template.Segments {
			if _, ok := known[seg.Anchor]; !ok {
				t.Fatalf("template %q: segment %q anchors unknown marker %q", id, seg.ID, seg.Anchor)
			}
		}
	}
}

func TestRenderAppliesOverrides(t *testing.T) {
	template, err := LoadTemplate("ai_agent_default")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	segments, _ := template.Render(map[string]string{
		"prompt_text":     "Build me a revenue dashboard",
		"followup_prompt": "Add churn KPIs",
	})
	var prompt1 Segment
	for _, seg := range segments {
		if seg.ID == "prompt1" {
			prompt1 = seg
		}
	}
	if !strings.Contains(prompt1.Text, "Build me a revenue dashboard") {
		t.Fatalf("override not applied: %q", prompt1.Text)
	}
	if strings.Contains(prompt1.Text, "{prompt_text}") {
		t.Fatalf("placeholder left behind: %q", prompt1.Text)
	}
}

func TestRenderLeavesTemplateUntouched(t *testing.T) {
	template, err := LoadTemplate("ai_agent_default")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	template.Render(map[string]string{"prompt_text": "X"})
	for _, seg := range template.Segments {
		if seg.ID == "prompt1" && !strings.Contains(seg.Text, "{prompt_text}") {
			t.Fatalf("template mutated by render: %q", seg.Text)
		}
	}
}

func TestLoadTemplateUnknown(t *testing.T) {
	_, err := LoadTemplate("nope")
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !strings.Contains(err.Error(), "ai_agent_default") {
		t.Fatalf("error should list available templates: %v", err)
	}
}
