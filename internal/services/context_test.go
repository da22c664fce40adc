package services_test

import (
	"context"
	"testing"

	"demoreel/internal/services"
)

func TestRunIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on fresh context")
	}

	ctx = services.WithRunID(ctx, "abc-123")
	id, ok := services.RunIDFromContext(ctx)
	if !ok || id != "abc-123" {
		t.Fatalf("unexpected run id: %q %v", id, ok)
	}
}

func TestStageContextIgnoresEmpty(t *testing.T) {
	ctx := services.WithStage(context.Background(), "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("empty stage should not be stored")
	}

	ctx = services.WithStage(ctx, "captions")
	stage, ok := services.StageFromContext(ctx)
	if !ok || stage != "captions" {
		t.Fatalf("unexpected stage: %q %v", stage, ok)
	}
}
