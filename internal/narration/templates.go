package narration

import (
	"fmt"
	"sort"
	"strings"
)

// Template is a reusable narration script for a class of demo recordings.
// Segment texts may contain {placeholder} tokens filled in at render time.
type Template struct {
	ID              string
	Name            string
	Description     string
	WorkflowMarkers []string
	Segments        []Segment
	Conditionals    []ConditionalSegment
}

// Render substitutes placeholder overrides into every segment text and
// returns independent copies, leaving the template untouched.
func (t Template) Render(overrides map[string]string) ([]Segment, []ConditionalSegment) {
	segments := make([]Segment, len(t.Segments))
	for i, seg := range t.Segments {
		seg.Text = applyOverrides(seg.Text, overrides)
		segments[i] = seg
	}
	conditionals := make([]ConditionalSegment, len(t.Conditionals))
	for i, cond := range t.Conditionals {
		cond.Text = applyOverrides(cond.Text, overrides)
		conditionals[i] = cond
	}
	return segments, conditionals
}

func applyOverrides(text string, overrides map[string]string) string {
	for key, value := range overrides {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	return text
}

// BuiltinTemplates returns the narration scripts that ship with the tool,
// keyed by template id.
func BuiltinTemplates() map[string]Template {
	templates := map[string]Template{}

	templates["ai_agent_default"] = Template{
		ID:          "ai_agent_default",
		Name:        "AI Agent Dashboard Demo",
		Description: "Interactive AI agent building dashboards from natural-language prompts",
		WorkflowMarkers: []string{
			"t_page_loaded", "t_prompt1_focus", "t_prompt1_submitted",
			"t_processing1_started", "t_agent_done_1", "t_prompt2_focus",
			"t_processing2_started", "t_agent_done_2", "t_scroll_start",
		},
		Segments: []Segment{
			{
				ID:     "intro",
				Anchor: "t_page_loaded",
				Offset: 0.5,
				Text:   "Connect any marketing or sales data source. Automatically pulled, cleaned, structured, and instantly ready.",
			},
			{
				ID:     "prompt1",
				Anchor: "t_prompt1_focus",
				Offset: 0.2,
				Text:   "Open the AI agent and type exactly what you need: '{prompt_text}'",
			},
			{
				ID:     "processing1",
				Anchor: "t_processing1_started",
				Offset: 2.0,
				Text:   "While the agent works, it discovers your data and builds a fully editable dashboard automatically.",
			},
			{
				ID:     "reveal1",
				Anchor: "t_agent_done_1",
				Offset: 0.5,
				Text:   "Done. Chat on the left, your generated dashboard on the right, ready to edit.",
			},
			{
				ID:     "prompt2",
				Anchor: "t_prompt2_focus",
				Offset: 0.3,
				Text:   "Just keep talking to the agent. Now add more: '{followup_prompt}'",
			},
			{
				ID:     "outro",
				Anchor: "t_scroll_start",
				Offset: 0.5,
				Text:   "From raw data to a finished dashboard in one conversation.",
			},
		},
		Conditionals: []ConditionalSegment{
			{
				ID: "processing1_filler",
				Condition: Condition{
					Kind:        ConditionDurationBetween,
					StartMarker: "t_processing1_started",
					EndMarker:   "t_agent_done_1",
					MinDuration: 8.0,
				},
				Offset:         4.0,
				Text:           "The agent is analyzing your connected data sources and laying out the dashboard.",
				Repeatable:     true,
				MaxRepeats:     2,
				RepeatInterval: 6.0,
			},
			{
				ID: "processing2_filler",
				Condition: Condition{
					Kind:        ConditionDurationBetween,
					StartMarker: "t_processing2_started",
					EndMarker:   "t_agent_done_2",
					MinDuration: 6.0,
				},
				Offset: 3.0,
				Text:   "Adding those KPIs while preserving all your existing work.",
			},
		},
	}

	templates["feature_walkthrough"] = Template{
		ID:          "feature_walkthrough",
		Name:        "Feature Walkthrough",
		Description: "Linear walkthrough of a single product feature",
		WorkflowMarkers: []string{
			"t_page_loaded", "t_feature_opened", "t_action_done",
		},
		Segments: []Segment{
			{
				ID:     "intro",
				Anchor: "t_page_loaded",
				Offset: 0.5,
				Text:   "Here's {feature_name} in action.",
			},
			{
				ID:     "feature",
				Anchor: "t_feature_opened",
				Offset: 0.3,
				Text:   "{feature_description}",
			},
			{
				ID:     "outro",
				Anchor: "t_action_done",
				Offset: 0.5,
				Text:   "That's it. No setup, no configuration.",
			},
		},
	}

	return templates
}

// LoadTemplate returns a builtin template by id.
func LoadTemplate(id string) (Template, error) {
	templates := BuiltinTemplates()
	template, ok := templates[id]
	if !ok {
		ids := make([]string, 0, len(templates))
		for key := range templates {
			ids = append(ids, key)
		}
		sort.Strings(ids)
		return Template{}, fmt.Errorf("unknown narration template %q; available: %s", id, strings.Join(ids, ", "))
	}
	return template, nil
}
