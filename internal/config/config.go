package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkspaceDir  string `toml:"workspace_dir"`
	OutputDir     string `toml:"output_dir"`
	LogDir        string `toml:"log_dir"`
	AudioCacheDir string `toml:"audio_cache_dir"`
}

// Narration contains configuration for segment placement.
type Narration struct {
	Template        string `toml:"template"`
	LenientMatching bool   `toml:"lenient_matching"`
	MaxParallelTTS  int    `toml:"max_parallel_tts"`
	FillersEnabled  bool   `toml:"fillers_enabled"`
}

// Editing contains configuration for gap speedup and trims.
type Editing struct {
	SpeedupFactor   float64 `toml:"speedup_factor"`
	MinGapSeconds   float64 `toml:"min_gap_seconds"`
	PaddingSeconds  float64 `toml:"padding_seconds"`
	SpeedupDisabled bool    `toml:"speedup_disabled"`
}

// Captions contains configuration for subtitle generation.
type Captions struct {
	Enabled bool   `toml:"enabled"`
	Format  string `toml:"format"`
	BurnIn  bool   `toml:"burn_in"`
}

// TTS contains configuration for the ElevenLabs speech API.
type TTS struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	VoiceID        string `toml:"voice_id"`
	Model          string `toml:"model"`
	OutputFormat   string `toml:"output_format"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for demoreel.
//
// Configuration sections by subsystem:
//   - Paths: workspace, output, log, and audio cache directories
//   - Narration: template selection and placement behavior
//   - Editing: gap speedup factor and thresholds
//   - Captions: subtitle format and burn-in
//   - TTS: ElevenLabs connection settings
//   - Logging: log format, level, and retention
type Config struct {
	Paths     Paths     `toml:"paths"`
	Narration Narration `toml:"narration"`
	Editing   Editing   `toml:"editing"`
	Captions  Captions  `toml:"captions"`
	TTS       TTS       `toml:"tts"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/demoreel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("demoreel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for a run. OutputDir is
// created on a best-effort basis so config load keeps working when external
// storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkspaceDir, c.Paths.LogDir, c.Paths.AudioCacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		_ = os.MkdirAll(c.Paths.OutputDir, 0o755)
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for video edits.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
