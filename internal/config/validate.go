package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditing(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateNarration(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditing() error {
	if c.Editing.SpeedupFactor < 1 {
		return errors.New("editing.speedup_factor must be >= 1")
	}
	if c.Editing.MinGapSeconds <= 0 {
		return errors.New("editing.min_gap_seconds must be positive")
	}
	if c.Editing.PaddingSeconds < 0 {
		return errors.New("editing.padding_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateCaptions() error {
	switch c.Captions.Format {
	case "srt", "vtt":
		return nil
	default:
		return fmt.Errorf("captions.format must be srt or vtt, got %q", c.Captions.Format)
	}
}

func (c *Config) validateNarration() error {
	if c.Narration.MaxParallelTTS < 1 {
		return errors.New("narration.max_parallel_tts must be >= 1")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.BaseURL == "" {
		return errors.New("tts.base_url must be set")
	}
	if c.TTS.TimeoutSeconds <= 0 {
		return errors.New("tts.timeout_seconds must be positive (seconds)")
	}
	return nil
}
