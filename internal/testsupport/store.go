package testsupport

import (
	"context"
	"testing"

	"demoreel/internal/config"
	"demoreel/internal/runstore"
)

// MustOpenStore opens a runstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *runstore.Store {
	t.Helper()

	store, err := runstore.Open(cfg)
	if err != nil {
		t.Fatalf("runstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRun creates a new run for tests using the provided store.
func NewRun(t testing.TB, store *runstore.Store, title, videoFile string) *runstore.Run {
	t.Helper()

	run, err := store.NewRun(context.Background(), title, videoFile, "ai_agent_default")
	if err != nil {
		t.Fatalf("store.NewRun: %v", err)
	}
	return run
}
