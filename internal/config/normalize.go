package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNarration()
	c.normalizeEditing()
	c.normalizeCaptions()
	c.normalizeTTS()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AudioCacheDir) == "" {
		c.Paths.AudioCacheDir = defaultAudioCacheDir
	}
	if c.Paths.AudioCacheDir, err = expandPath(c.Paths.AudioCacheDir); err != nil {
		return fmt.Errorf("paths.audio_cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNarration() {
	c.Narration.Template = strings.TrimSpace(c.Narration.Template)
	if c.Narration.Template == "" {
		c.Narration.Template = defaultTemplate
	}
	if c.Narration.MaxParallelTTS <= 0 {
		c.Narration.MaxParallelTTS = defaultMaxParallelTTS
	}
}

func (c *Config) normalizeEditing() {
	if c.Editing.SpeedupFactor <= 0 {
		c.Editing.SpeedupFactor = defaultSpeedupFactor
	}
	if c.Editing.MinGapSeconds <= 0 {
		c.Editing.MinGapSeconds = defaultMinGapSeconds
	}
	if c.Editing.PaddingSeconds < 0 {
		c.Editing.PaddingSeconds = defaultPaddingSeconds
	}
}

func (c *Config) normalizeCaptions() {
	c.Captions.Format = strings.ToLower(strings.TrimSpace(c.Captions.Format))
	if c.Captions.Format == "" {
		c.Captions.Format = defaultCaptionFormat
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.APIKey = strings.TrimSpace(c.TTS.APIKey)
	if c.TTS.APIKey == "" {
		if value, ok := os.LookupEnv("ELEVENLABS_API_KEY"); ok {
			c.TTS.APIKey = strings.TrimSpace(value)
		}
	}
	c.TTS.BaseURL = strings.TrimSpace(c.TTS.BaseURL)
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	c.TTS.VoiceID = strings.TrimSpace(c.TTS.VoiceID)
	if c.TTS.VoiceID == "" {
		if value, ok := os.LookupEnv("ELEVENLABS_VOICE_ID"); ok {
			c.TTS.VoiceID = strings.TrimSpace(value)
		}
	}
	c.TTS.Model = strings.TrimSpace(c.TTS.Model)
	if c.TTS.Model == "" {
		c.TTS.Model = defaultTTSModel
	}
	c.TTS.OutputFormat = strings.TrimSpace(c.TTS.OutputFormat)
	if c.TTS.OutputFormat == "" {
		c.TTS.OutputFormat = defaultTTSOutputFormat
	}
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
