package report

import (
	"fmt"
	"strings"

	"demoreel/internal/captions"
	"demoreel/internal/narration"
	"demoreel/internal/runstore"
	"demoreel/internal/timemap"
)

func seconds(v float64) string {
	return fmt.Sprintf("%.2fs", v)
}

// Placements renders the resolved narration schedule plus any anchors the
// lenient resolver could not match.
func Placements(result narration.LenientResult) string {
	rows := make([][]string, 0, len(result.Positioned))
	strategies := make(map[string]string, len(result.Matches))
	markers := make(map[string]string, len(result.Matches))
	for _, match := range result.Matches {
		strategies[match.SegmentID] = match.Strategy
		markers[match.SegmentID] = match.Marker
	}
	for _, seg := range result.Positioned {
		strategy := strategies[seg.ID]
		if strategy == "" {
			strategy = "exact"
		}
		marker := markers[seg.ID]
		rows = append(rows, []string{
			DisplayName(seg.ID),
			marker,
			strategy,
			seconds(seg.Start),
			seconds(seg.End()),
		})
	}

	var b strings.Builder
	b.WriteString(renderTable(
		[]string{"Segment", "Matched Marker", "Strategy", "Start", "End"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
	if len(result.Missing) > 0 {
		b.WriteString("\n\nUnplaced: ")
		b.WriteString(strings.Join(result.Missing, ", "))
	}
	return b.String()
}

// Adjustments renders the overlap fixes applied to the schedule.
func Adjustments(adjustments []narration.Adjustment) string {
	if len(adjustments) == 0 {
		return "No overlap adjustments."
	}
	rows := make([][]string, 0, len(adjustments))
	for _, adj := range adjustments {
		rows = append(rows, []string{
			DisplayName(adj.ID),
			seconds(adj.OriginalStart),
			seconds(adj.NewStart),
			fmt.Sprintf("+%.2fs", adj.Delta()),
		})
	}
	return renderTable(
		[]string{"Segment", "Original", "Adjusted", "Shift"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}

// Gaps renders the quiet spans selected for speed-up together with their
// compressed durations.
func Gaps(gaps []timemap.Interval, mapping timemap.Mapping) string {
	if len(gaps) == 0 || mapping.IsIdentity() {
		return "No gaps to compress."
	}
	rows := make([][]string, 0, len(gaps))
	for _, gap := range gaps {
		mapped := mapping.MapInterval(gap)
		rows = append(rows, []string{
			seconds(gap.Start),
			seconds(gap.End),
			seconds(gap.Duration()),
			seconds(mapped.Duration()),
		})
	}
	return renderTable(
		[]string{"Gap Start", "Gap End", "Duration", "After Speed-Up"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	)
}

// Captions renders the caption validation outcome.
func Captions(validation captions.Validation) string {
	var b strings.Builder
	state := "valid"
	if !validation.Valid {
		state = "invalid"
	}
	fmt.Fprintf(&b, "%d captions, %s total, %s", validation.TotalCaptions, seconds(validation.TotalDuration), state)
	for _, issue := range validation.Issues {
		b.WriteString("\n  issue: " + issue)
	}
	for _, warning := range validation.Warnings {
		b.WriteString("\n  warning: " + warning)
	}
	return b.String()
}

// Runs renders the run ledger.
func Runs(runs []runstore.Run) string {
	if len(runs) == 0 {
		return "No runs recorded."
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.RunID),
			run.Title,
			string(run.Status),
			run.Template,
			run.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return renderTable(
		[]string{"Run", "Title", "Status", "Template", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

// Health renders the aggregate run counts.
func Health(summary runstore.HealthSummary) string {
	rows := [][]string{
		{"Total", fmt.Sprintf("%d", summary.Total)},
		{"Pending", fmt.Sprintf("%d", summary.Pending)},
		{"Active", fmt.Sprintf("%d", summary.Active)},
		{"Completed", fmt.Sprintf("%d", summary.Completed)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
	}
	return renderTable(
		[]string{"Runs", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
