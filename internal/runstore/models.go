package runstore

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a pipeline run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRecorded  Status = "recorded"
	StatusNarrated  Status = "narrated"
	StatusPlaced    Status = "placed"
	StatusEdited    Status = "edited"
	StatusCaptioned Status = "captioned"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusRecorded,
	StatusNarrated,
	StatusPlaced,
	StatusEdited,
	StatusCaptioned,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Run represents a pipeline run persisted in SQLite.
type Run struct {
	ID            int64
	RunID         string
	Title         string
	Status        Status
	Template      string
	VideoFile     string
	MarkersFile   string
	RequestFile   string
	PlacementJSON string
	TimeMapJSON   string
	CaptionsFile  string
	OutputFile    string
	ErrorMessage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HealthSummary describes aggregated run counts per key lifecycle states.
type HealthSummary struct {
	Total     int
	Pending   int
	Active    int
	Failed    int
	Completed int
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a run needs no further pipeline work.
func (r Run) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}
