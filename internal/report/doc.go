// Package report renders human-readable tables for run status, placement
// results, gap compression, and caption validation.
package report
