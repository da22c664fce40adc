package narration

// Segment is a scripted voiceover line anchored to a timeline marker. Offset
// and Duration are in seconds. Duration and AudioPath stay zero-valued until
// the narration audio has been synthesized.
type Segment struct {
	ID        string
	Anchor    string
	Offset    float64
	Text      string
	AudioPath string
	Duration  float64
}

// PositionedSegment is the resolved placement of a Segment at an absolute
// start time. Values are derived, never aliased back to the source Segment;
// overlap fixing produces adjusted copies rather than mutating in place.
type PositionedSegment struct {
	ID        string
	Text      string
	Start     float64
	AudioPath string
	Duration  float64
}

// End returns the placement's end time in seconds.
func (p PositionedSegment) End() float64 {
	return p.Start + p.Duration
}

// ConditionKind selects how a conditional segment's trigger is evaluated.
type ConditionKind string

const (
	// ConditionMarkerExists fires when the named marker was recorded at all.
	ConditionMarkerExists ConditionKind = "marker_exists"
	// ConditionDurationBetween fires when the time between two markers falls
	// inside the configured window.
	ConditionDurationBetween ConditionKind = "duration_between"
)

// Condition is the trigger for a conditional filler segment. MaxDuration <= 0
// means no upper bound.
type Condition struct {
	Kind        ConditionKind
	Marker      string
	StartMarker string
	EndMarker   string
	MinDuration float64
	MaxDuration float64
}

// ConditionalSegment is a filler template evaluated once against a frozen
// marker snapshot. When repeatable, up to MaxRepeats copies are spaced
// RepeatInterval seconds apart inside the monitored window.
type ConditionalSegment struct {
	ID             string
	Condition      Condition
	Offset         float64
	Text           string
	Repeatable     bool
	MaxRepeats     int
	RepeatInterval float64
}
