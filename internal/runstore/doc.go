// Package runstore persists demo pipeline runs in SQLite.
//
// Each run tracks one recording from capture through narration, editing,
// and final composition. The store records per-stage artifacts (marker
// files, placement results, caption files) so interrupted pipelines can be
// resumed and finished runs can be reported on.
package runstore
