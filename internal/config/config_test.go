package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"demoreel/internal/config"
)

func TestLoadDefaultConfigExpandsPathsAndAppliesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ELEVENLABS_API_KEY", "env-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWorkspace := filepath.Join(tempHome, ".local", "share", "demoreel", "workspace")
	if cfg.Paths.WorkspaceDir != wantWorkspace {
		t.Fatalf("unexpected workspace dir: got %q want %q", cfg.Paths.WorkspaceDir, wantWorkspace)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "demos") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Narration.Template != "ai_agent_default" {
		t.Fatalf("unexpected default template: %q", cfg.Narration.Template)
	}
	if !cfg.Narration.LenientMatching {
		t.Fatal("expected lenient matching enabled by default")
	}
	if cfg.Editing.SpeedupFactor != 3.0 {
		t.Fatalf("unexpected speedup factor: %v", cfg.Editing.SpeedupFactor)
	}
	if cfg.Editing.MinGapSeconds != 5.0 {
		t.Fatalf("unexpected min gap: %v", cfg.Editing.MinGapSeconds)
	}
	if cfg.Captions.Format != "srt" {
		t.Fatalf("unexpected caption format: %q", cfg.Captions.Format)
	}
	if cfg.TTS.APIKey != "env-key" {
		t.Fatalf("expected TTS key from env, got %q", cfg.TTS.APIKey)
	}
	if cfg.TTS.BaseURL != config.Default().TTS.BaseURL {
		t.Fatalf("unexpected TTS base url: %q", cfg.TTS.BaseURL)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{cfg.Paths.WorkspaceDir, cfg.Paths.LogDir, cfg.Paths.AudioCacheDir, cfg.Paths.OutputDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "demoreel.toml")

	type payload struct {
		Narration struct {
			Template string `toml:"template"`
		} `toml:"narration"`
		Editing struct {
			SpeedupFactor float64 `toml:"speedup_factor"`
			MinGapSeconds float64 `toml:"min_gap_seconds"`
		} `toml:"editing"`
		Captions struct {
			Format string `toml:"format"`
		} `toml:"captions"`
	}
	custom := payload{}
	custom.Narration.Template = "feature_walkthrough"
	custom.Editing.SpeedupFactor = 2.0
	custom.Editing.MinGapSeconds = 8.0
	custom.Captions.Format = "vtt"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Narration.Template != "feature_walkthrough" {
		t.Fatalf("expected template override, got %q", cfg.Narration.Template)
	}
	if cfg.Editing.SpeedupFactor != 2.0 {
		t.Fatalf("expected speedup factor 2.0, got %v", cfg.Editing.SpeedupFactor)
	}
	if cfg.Editing.MinGapSeconds != 8.0 {
		t.Fatalf("expected min gap 8.0, got %v", cfg.Editing.MinGapSeconds)
	}
	if cfg.Captions.Format != "vtt" {
		t.Fatalf("expected vtt format, got %q", cfg.Captions.Format)
	}
}

func TestTTSEnvFallbacks(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "demoreel.toml")
	if err := os.WriteFile(configPath, []byte("[tts]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ELEVENLABS_API_KEY", "env-tts")
	t.Setenv("ELEVENLABS_VOICE_ID", "env-voice")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TTS.APIKey != "env-tts" {
		t.Errorf("expected TTS key from env, got %q", cfg.TTS.APIKey)
	}
	if cfg.TTS.VoiceID != "env-voice" {
		t.Errorf("expected voice id from env, got %q", cfg.TTS.VoiceID)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "speedup_factor") {
		t.Fatalf("sample config missing editing section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.WorkspaceDir, "demoreel") {
		t.Fatalf("expected workspace dir to contain demoreel, got %q", cfg.Paths.WorkspaceDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Editing.SpeedupFactor = 0.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for speedup factor below 1")
	}

	cfg = config.Default()
	cfg.Editing.MinGapSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative min gap")
	}

	cfg = config.Default()
	cfg.Captions.Format = "ass"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported caption format")
	}

	cfg = config.Default()
	cfg.Narration.MaxParallelTTS = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero TTS parallelism")
	}

	cfg = config.Default()
	cfg.TTS.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero TTS timeout")
	}
}
