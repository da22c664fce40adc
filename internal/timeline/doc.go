// Package timeline models the named event markers captured during a demo
// recording session.
//
// A Markers value is the frozen, read-only snapshot every downstream stage
// (placement, captions, gap speed-up) computes against. The Recorder is the
// single sequential writer used while a session is live; once recording stops
// the snapshot is persisted as a markdown table and never mutated again.
//
// Marker names prefixed with an underscore are internal bookkeeping and are
// excluded from the persisted table.
package timeline
