package captions

import "fmt"

const (
	// maxCharsPerSecond is the reading speed above which a caption is
	// flagged as probably unreadable.
	maxCharsPerSecond = 20.0
	// maxQuietGap is the silence between captions above which a pacing
	// warning is emitted.
	maxQuietGap = 5.0
)

// Validation is the report produced by Validate. Issues affect Valid;
// warnings are informational.
type Validation struct {
	Valid         bool
	Issues        []string
	Warnings      []string
	TotalCaptions int
	TotalDuration float64
}

// Validate checks caption timing for overlaps (issues), oversized gaps and
// reading-speed problems (warnings). It never mutates timing; callers decide
// what to do with the report.
func Validate(entries []Entry) Validation {
	result := Validation{TotalCaptions: len(entries)}

	for i, entry := range entries {
		if entry.Duration() > 0 {
			charsPerSec := float64(len(entry.Text)) / entry.Duration()
			if charsPerSec > maxCharsPerSecond {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"caption %d (%q) is too fast: %.1f chars/sec", i+1, truncate(entry.Text, 30), charsPerSec))
			}
		}
		if i == len(entries)-1 {
			continue
		}
		next := entries[i+1]
		if entry.End > next.Start {
			result.Issues = append(result.Issues, fmt.Sprintf(
				"caption %d overlaps with %d by %.2fs", i+1, i+2, entry.End-next.Start))
		} else if gap := next.Start - entry.End; gap > maxQuietGap {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"large gap (%.1fs) between caption %d and %d", gap, i+1, i+2))
		}
	}

	if len(entries) > 0 {
		result.TotalDuration = entries[len(entries)-1].End - entries[0].Start
	}
	result.Valid = len(result.Issues) == 0
	return result
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
