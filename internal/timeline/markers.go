package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Markers maps marker names to timestamps in seconds from recording start.
// Keys are unique; values are non-negative and relative to a single epoch.
type Markers map[string]float64

// Marker is a single named timestamp, used when callers need time ordering.
type Marker struct {
	Name    string
	Seconds float64
}

// Time returns the timestamp for a marker name.
func (m Markers) Time(name string) (float64, bool) {
	value, ok := m[name]
	return value, ok
}

// Sorted returns all markers ordered by timestamp ascending. Ties keep a
// stable name order so output is deterministic.
func (m Markers) Sorted() []Marker {
	sorted := make([]Marker, 0, len(m))
	for name, seconds := range m {
		sorted = append(sorted, Marker{Name: name, Seconds: seconds})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Seconds == sorted[j].Seconds {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Seconds < sorted[j].Seconds
	})
	return sorted
}

// Names returns marker names ordered by timestamp ascending.
func (m Markers) Names() []string {
	sorted := m.Sorted()
	names := make([]string, len(sorted))
	for i, marker := range sorted {
		names[i] = marker.Name
	}
	return names
}

// Clone returns an independent copy so one stage's snapshot cannot be
// mutated by another.
func (m Markers) Clone() Markers {
	cloned := make(Markers, len(m))
	for name, seconds := range m {
		cloned[name] = seconds
	}
	return cloned
}

// Containing returns every marker whose name contains the pattern,
// case-insensitively. Useful for discovering related events such as all
// "agent_done" markers.
func (m Markers) Containing(pattern string) Markers {
	lowered := strings.ToLower(pattern)
	matched := make(Markers)
	for name, seconds := range m {
		if strings.Contains(strings.ToLower(name), lowered) {
			matched[name] = seconds
		}
	}
	return matched
}

// Summary describes a marker set for reporting.
type Summary struct {
	Count             int
	First             Marker
	Last              Marker
	EstimatedDuration float64
}

// Summarize computes ordering metadata for a marker set. The estimated
// duration is the last marker's timestamp; the true video duration comes from
// the recorded file and is usually a little longer.
func (m Markers) Summarize() Summary {
	sorted := m.Sorted()
	summary := Summary{Count: len(sorted)}
	if len(sorted) > 0 {
		summary.First = sorted[0]
		summary.Last = sorted[len(sorted)-1]
		summary.EstimatedDuration = sorted[len(sorted)-1].Seconds
	}
	return summary
}

// Recorder accumulates markers while a recording session is live. It is the
// only writer; recording mirrors a single browser session's real-time event
// stream, so access is strictly sequential and needs no locking.
type Recorder struct {
	start   time.Time
	now     func() time.Time
	markers Markers
}

// NewRecorder starts a marker capture session anchored at the given start
// instant (t=0 for every recorded timestamp).
func NewRecorder(start time.Time) *Recorder {
	return &Recorder{start: start, now: time.Now, markers: make(Markers)}
}

// Mark records the named event at the current wall-clock offset from the
// session start. Re-marking an existing name moves it; names stay unique.
func (r *Recorder) Mark(name string) error {
	return r.MarkAt(name, r.now().Sub(r.start).Seconds())
}

// MarkAt records the named event at an explicit offset in seconds. Offsets
// before the session start are rejected.
func (r *Recorder) MarkAt(name string, seconds float64) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("marker name required")
	}
	if seconds < 0 {
		return fmt.Errorf("marker %q: negative timestamp %.2f", trimmed, seconds)
	}
	r.markers[trimmed] = seconds
	return nil
}

// Snapshot returns a frozen copy of everything recorded so far. Downstream
// stages receive the snapshot; the recorder keeps exclusive ownership of the
// live map.
func (r *Recorder) Snapshot() Markers {
	return r.markers.Clone()
}
