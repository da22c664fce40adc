package runstore_test

import (
	"context"
	"testing"

	"demoreel/internal/runstore"
	"demoreel/internal/testsupport"
)

func TestNewRunAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "checkout demo", "/tmp/demo.mp4", "ai_agent_default")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if run.RunID == "" {
		t.Fatal("expected generated run id")
	}
	if run.Status != runstore.StatusPending {
		t.Fatalf("expected pending status, got %q", run.Status)
	}
	if run.CreatedAt.IsZero() || run.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	fetched, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil || fetched.Title != "checkout demo" || fetched.VideoFile != "/tmp/demo.mp4" {
		t.Fatalf("unexpected fetched run: %+v", fetched)
	}
}

func TestGetByRunIDPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	run := testsupport.NewRun(t, store, "demo", "/tmp/a.mp4")

	fetched, err := store.GetByRunID(ctx, run.RunID[:8])
	if err != nil {
		t.Fatalf("GetByRunID: %v", err)
	}
	if fetched == nil || fetched.ID != run.ID {
		t.Fatalf("prefix lookup failed: %+v", fetched)
	}

	missing, err := store.GetByRunID(ctx, "ffffffff")
	if err != nil {
		t.Fatalf("GetByRunID: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown prefix, got %+v", missing)
	}
}

func TestUpdatePersistsArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	run := testsupport.NewRun(t, store, "demo", "/tmp/a.mp4")
	run.Status = runstore.StatusPlaced
	run.MarkersFile = "/tmp/timeline.md"
	run.PlacementJSON = `[{"id":"intro","start":2.5}]`

	if err := store.Update(ctx, run); err != nil {
		t.Fatalf("Update: %v", err)
	}

	fetched, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Status != runstore.StatusPlaced {
		t.Fatalf("status not persisted: %q", fetched.Status)
	}
	if fetched.MarkersFile != "/tmp/timeline.md" {
		t.Fatalf("markers file not persisted: %q", fetched.MarkersFile)
	}
	if fetched.PlacementJSON == "" {
		t.Fatal("placement json not persisted")
	}
	if !fetched.UpdatedAt.After(fetched.CreatedAt) {
		t.Fatal("expected updated_at to advance")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewRun(t, store, "one", "/tmp/1.mp4")
	second := testsupport.NewRun(t, store, "two", "/tmp/2.mp4")

	second.Status = runstore.StatusCompleted
	if err := store.Update(ctx, second); err != nil {
		t.Fatalf("Update: %v", err)
	}

	pending, err := store.List(ctx, runstore.StatusPending)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("unexpected pending runs: %+v", pending)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(all))
	}
}

func TestMarkFailedAndClearFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	run := testsupport.NewRun(t, store, "demo", "/tmp/a.mp4")
	if err := store.MarkFailed(ctx, run, context.DeadlineExceeded); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	fetched, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Status != runstore.StatusFailed || fetched.ErrorMessage == "" {
		t.Fatalf("unexpected failed run: %+v", fetched)
	}

	removed, err := store.ClearFailed(ctx)
	if err != nil {
		t.Fatalf("ClearFailed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
}

func TestHealthAggregates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewRun(t, store, "one", "/tmp/1.mp4")
	active := testsupport.NewRun(t, store, "two", "/tmp/2.mp4")
	done := testsupport.NewRun(t, store, "three", "/tmp/3.mp4")

	active.Status = runstore.StatusNarrated
	if err := store.Update(ctx, active); err != nil {
		t.Fatalf("Update: %v", err)
	}
	done.Status = runstore.StatusCompleted
	if err := store.Update(ctx, done); err != nil {
		t.Fatalf("Update: %v", err)
	}

	summary, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if summary.Total != 3 || summary.Pending != 1 || summary.Active != 1 || summary.Completed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestLatest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	empty, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil on empty store, got %+v", empty)
	}

	testsupport.NewRun(t, store, "first", "/tmp/1.mp4")
	second := testsupport.NewRun(t, store, "second", "/tmp/2.mp4")

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("unexpected latest run: %+v", latest)
	}
}
