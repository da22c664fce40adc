package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"demoreel/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDiskSpace("space", dir, 1); !result.Passed {
		t.Fatalf("expected pass for tiny requirement, got: %s", result.Detail)
	}
	if result := CheckDiskSpace("space", dir, 1<<60); result.Passed {
		t.Fatal("expected failure for exabyte requirement")
	}
}

func TestCheckTTS_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckTTS(context.Background(), srv.URL, "good-key")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckTTS_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := CheckTTS(context.Background(), srv.URL, "bad-key")
	if result.Passed {
		t.Fatal("expected failure for bad key")
	}
}

func TestCheckTTS_MissingURL(t *testing.T) {
	result := CheckTTS(context.Background(), "", "key")
	if result.Passed {
		t.Fatal("expected failure for missing URL")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReportsDirectoryChecks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t)
	cfg.TTS.BaseURL = srv.URL
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if !status.Available {
			t.Errorf("dependency %q unavailable: %s", status.Name, status.Detail)
		}
	}
}
