// Package pipeline drives a demo run through its stages: record, narrate,
// place, speedup, captions, and finish. Each stage reads the artifacts the
// previous stage left in the run's workspace directory, advances the run's
// status in the store, and is safe to re-execute after a failure.
package pipeline
