package config

const (
	defaultWorkspaceDir      = "~/.local/share/demoreel/workspace"
	defaultOutputDir         = "~/demos"
	defaultLogDir            = "~/.local/share/demoreel/logs"
	defaultAudioCacheDir     = "~/.local/share/demoreel/cache/audio"
	defaultLogRetentionDays  = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultTemplate          = "ai_agent_default"
	defaultMaxParallelTTS    = 3
	defaultSpeedupFactor     = 3.0
	defaultMinGapSeconds     = 5.0
	defaultPaddingSeconds    = 0.5
	defaultCaptionFormat     = "srt"
	defaultTTSBaseURL        = "https://api.elevenlabs.io"
	defaultTTSModel          = "eleven_multilingual_v2"
	defaultTTSOutputFormat   = "mp3_44100_128"
	defaultTTSTimeoutSeconds = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir:  defaultWorkspaceDir,
			OutputDir:     defaultOutputDir,
			LogDir:        defaultLogDir,
			AudioCacheDir: defaultAudioCacheDir,
		},
		Narration: Narration{
			Template:        defaultTemplate,
			LenientMatching: true,
			MaxParallelTTS:  defaultMaxParallelTTS,
			FillersEnabled:  true,
		},
		Editing: Editing{
			SpeedupFactor:  defaultSpeedupFactor,
			MinGapSeconds:  defaultMinGapSeconds,
			PaddingSeconds: defaultPaddingSeconds,
		},
		Captions: Captions{
			Enabled: true,
			Format:  defaultCaptionFormat,
		},
		TTS: TTS{
			BaseURL:        defaultTTSBaseURL,
			Model:          defaultTTSModel,
			OutputFormat:   defaultTTSOutputFormat,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
