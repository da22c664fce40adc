// Package narration turns scripted voiceover segments into concrete,
// non-overlapping audio placements on the recorded timeline.
//
// Segments are authored against marker names (anchor + offset). The strict
// resolver requires exact markers and fails all-or-nothing; the lenient
// resolver falls back through fuzzy and inference matching and reports what
// it could not place. FixOverlaps applies the cascading 300 ms delay pass,
// and InjectFillers materializes conditional filler lines when a monitored
// marker-to-marker window runs long.
//
// Everything here is a pure function over in-memory values; audio synthesis
// and file probing happen at the boundary before these are called.
package narration
