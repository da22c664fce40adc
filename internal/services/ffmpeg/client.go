package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"demoreel/internal/services"
	"demoreel/internal/timemap"
)

var commandContext = exec.CommandContext

// Clip is a narration audio file placed at a point on the video timeline.
type Clip struct {
	Path  string
	Start float64
}

// Client defines the media operations the editing stages need.
type Client interface {
	Duration(ctx context.Context, path string) (float64, error)
	PlaceAudio(ctx context.Context, videoPath string, clips []Clip, outputPath string) error
	SpeedUp(ctx context.Context, videoPath string, gaps []timemap.Interval, videoDuration, factor float64, outputPath string) error
	BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinaries overrides the default ffmpeg and ffprobe binary names.
func WithBinaries(ffmpegBin, ffprobeBin string) Option {
	return func(c *CLI) {
		if ffmpegBin != "" {
			c.ffmpeg = ffmpegBin
		}
		if ffprobeBin != "" {
			c.ffprobe = ffprobeBin
		}
	}
}

// CLI wraps the ffmpeg and ffprobe command-line tools.
type CLI struct {
	ffmpeg  string
	ffprobe string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{ffmpeg: "ffmpeg", ffprobe: "ffprobe"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Duration probes a media file and returns its duration in seconds.
func (c *CLI) Duration(ctx context.Context, path string) (float64, error) {
	if path == "" {
		return 0, services.Wrap(services.ErrValidation, "probe", "duration", "media path required", nil)
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}
	cmd := commandContext(ctx, c.ffprobe, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "probe", "duration", strings.TrimSpace(stderr.String()), err)
	}

	var payload struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "probe", "duration", "parse ffprobe output", err)
	}
	seconds, err := strconv.ParseFloat(payload.Format.Duration, 64)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "probe", "duration", "no duration in ffprobe output", err)
	}
	return seconds, nil
}

// PlaceAudio mixes narration clips onto the video at their timeline
// positions. The video stream is copied when the container allows it; audio
// is re-encoded to AAC so mixed sources end up uniform.
func (c *CLI) PlaceAudio(ctx context.Context, videoPath string, clips []Clip, outputPath string) error {
	if videoPath == "" {
		return services.Wrap(services.ErrValidation, "compose", "place-audio", "video path required", nil)
	}
	if len(clips) == 0 {
		return services.Wrap(services.ErrValidation, "compose", "place-audio", "no audio clips to place", nil)
	}

	videoDuration, err := c.Duration(ctx, videoPath)
	if err != nil {
		return err
	}

	graph := audioFilterGraph(clips, videoDuration)

	args := []string{"-y", "-i", videoPath}
	for _, clip := range clips {
		args = append(args, "-i", clip.Path)
	}
	args = append(args,
		"-filter_complex", graph,
		"-map", "0:v",
		"-map", "[aout]",
	)
	args = append(args, videoCodecArgs(videoPath)...)
	args = append(args,
		"-c:a", "aac",
		"-b:a", "128k",
		"-shortest",
		"-movflags", "+faststart",
		outputPath,
	)

	if err := c.run(ctx, "compose", "place-audio", args); err != nil {
		return err
	}
	return nil
}

// BurnSubtitles renders a subtitle file permanently into the video frames.
func (c *CLI) BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error {
	if videoPath == "" || subtitlePath == "" {
		return services.Wrap(services.ErrValidation, "captions", "burn", "video and subtitle paths required", nil)
	}
	if _, err := os.Stat(subtitlePath); err != nil {
		return services.Wrap(services.ErrNotFound, "captions", "burn", "subtitle file missing", err)
	}

	filter := fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterPath(subtitlePath), burnStyle)
	args := []string{
		"-y",
		"-i", videoPath,
		"-vf", filter,
		"-c:a", "copy",
		"-movflags", "+faststart",
		outputPath,
	}
	return c.run(ctx, "captions", "burn", args)
}

func (c *CLI) run(ctx context.Context, stage, operation string, args []string) error {
	cmd := commandContext(ctx, c.ffmpeg, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, stage, operation, "ffmpeg timed out", err)
		}
		detail := lastStderrLine(stderr.String())
		return services.Wrap(services.ErrExternalTool, stage, operation, detail, err)
	}
	return nil
}

// videoCodecArgs picks stream copy for containers that can hold the source
// codec unchanged; WebM sources get transcoded to H.264 for MP4 output.
func videoCodecArgs(videoPath string) []string {
	if strings.EqualFold(filepath.Ext(videoPath), ".webm") {
		return []string{"-c:v", "libx264", "-preset", "fast", "-crf", "23"}
	}
	return []string{"-c:v", "copy"}
}

func lastStderrLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "ffmpeg failed"
}

var _ Client = (*CLI)(nil)
