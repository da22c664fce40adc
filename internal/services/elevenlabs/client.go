package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"demoreel/internal/config"
	"demoreel/internal/services"
)

const (
	defaultBaseURL      = "https://api.elevenlabs.io"
	defaultVoiceID      = "21m00Tcm4TlvDq8ikWAM"
	defaultModel        = "eleven_multilingual_v2"
	defaultOutputFormat = "mp3_44100_128"
	defaultHTTPTimeout  = 120 * time.Second
)

// Client wraps the ElevenLabs text-to-speech API.
type Client struct {
	apiKey       string
	baseURL      string
	voiceID      string
	model        string
	outputFormat string
	httpClient   *http.Client
}

// Option customizes the ElevenLabs client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithVoice overrides the default voice.
func WithVoice(voiceID string) Option {
	return func(c *Client) {
		if voiceID != "" {
			c.voiceID = voiceID
		}
	}
}

// WithModel overrides the synthesis model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithOutputFormat overrides the audio output format.
func WithOutputFormat(format string) Option {
	return func(c *Client) {
		if format != "" {
			c.outputFormat = format
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs an ElevenLabs API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       strings.TrimSpace(apiKey),
		baseURL:      defaultBaseURL,
		voiceID:      defaultVoiceID,
		model:        defaultModel,
		outputFormat: defaultOutputFormat,
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewFromConfig constructs a client from the tts configuration section.
func NewFromConfig(cfg *config.Config) *Client {
	return NewClient(cfg.TTS.APIKey,
		WithBaseURL(cfg.TTS.BaseURL),
		WithVoice(cfg.TTS.VoiceID),
		WithModel(cfg.TTS.Model),
		WithOutputFormat(cfg.TTS.OutputFormat),
		WithTimeout(time.Duration(cfg.TTS.TimeoutSeconds)*time.Second),
	)
}

// Synthesize converts text to speech and writes the audio to outputPath.
func (c *Client) Synthesize(ctx context.Context, text, outputPath string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return services.Wrap(services.ErrValidation, "narrate", "synthesize", "text required", nil)
	}
	if c.apiKey == "" {
		return services.Wrap(services.ErrConfiguration, "narrate", "synthesize", "ElevenLabs API key not configured", nil)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/v1/text-to-speech/", c.voiceID)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "narrate", "synthesize", "build request url", err)
	}
	endpoint += "?output_format=" + url.QueryEscape(c.outputFormat)

	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": c.model,
	})
	if err != nil {
		return services.Wrap(services.ErrValidation, "narrate", "synthesize", "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "narrate", "synthesize", "build request", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return services.Wrap(services.ErrTimeout, "narrate", "synthesize", "request cancelled", err)
		}
		return services.Wrap(services.ErrTransient, "narrate", "synthesize", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrTransient, "narrate", "synthesize", "read audio stream", err)
	}
	if len(audio) == 0 {
		return services.Wrap(services.ErrExternalTool, "narrate", "synthesize", "empty audio response", nil)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "narrate", "synthesize", "create output directory", err)
	}
	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		return services.Wrap(services.ErrConfiguration, "narrate", "synthesize", "write audio file", err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return services.Wrap(services.ErrConfiguration, "narrate", "synthesize", detail, nil)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return services.Wrap(services.ErrTransient, "narrate", "synthesize", detail, nil)
	default:
		return services.Wrap(services.ErrExternalTool, "narrate", "synthesize", detail, nil)
	}
}

// Request pairs a narration text with its destination audio file.
type Request struct {
	Text       string
	OutputPath string
}

// SynthesizeBatch generates audio for all requests, running up to parallel
// synthesis calls at once. The first failure cancels the remaining work.
func (c *Client) SynthesizeBatch(ctx context.Context, requests []Request, parallel int) error {
	if parallel < 1 {
		parallel = 1
	}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)
	for _, req := range requests {
		req := req
		group.Go(func() error {
			return c.Synthesize(ctx, req.Text, req.OutputPath)
		})
	}
	return group.Wait()
}
