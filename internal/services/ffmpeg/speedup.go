package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"demoreel/internal/services"
	"demoreel/internal/timemap"
)

// minSegmentSeconds drops slivers that would produce zero-frame outputs.
const minSegmentSeconds = 0.1

type speedSegment struct {
	Start float64
	End   float64
	Speed float64
}

// buildSegments walks the video timeline and splits it into alternating
// normal and accelerated spans. Gaps outside the video bounds are clamped;
// spans shorter than minSegmentSeconds are skipped.
func buildSegments(gaps []timemap.Interval, videoDuration, factor float64) []speedSegment {
	sorted := append([]timemap.Interval(nil), gaps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var segments []speedSegment
	cursor := 0.0
	for _, gap := range sorted {
		start := gap.Start
		end := gap.End
		if start < cursor {
			start = cursor
		}
		if end > videoDuration {
			end = videoDuration
		}
		if end-start < minSegmentSeconds {
			continue
		}
		if start-cursor >= minSegmentSeconds {
			segments = append(segments, speedSegment{Start: cursor, End: start, Speed: 1.0})
		}
		segments = append(segments, speedSegment{Start: start, End: end, Speed: factor})
		cursor = end
	}
	if videoDuration-cursor >= minSegmentSeconds {
		segments = append(segments, speedSegment{Start: cursor, End: videoDuration, Speed: 1.0})
	}
	return segments
}

// segmentFilter builds the filter_complex that extracts one segment,
// resetting timestamps and applying the speed factor when it is not 1.
func segmentFilter(seg speedSegment) string {
	start := formatSeconds(seg.Start)
	end := formatSeconds(seg.End)

	if seg.Speed == 1.0 {
		return fmt.Sprintf(
			"[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[v];[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a]",
			start, end, start, end)
	}

	video := fmt.Sprintf(
		"[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS,setpts=PTS/%s,setpts=PTS-STARTPTS[v]",
		start, end, formatFactor(seg.Speed))
	audio := fmt.Sprintf(
		"[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS,%s[a]",
		start, end, strings.Join(atempoChain(seg.Speed), ","))
	return video + ";" + audio
}

// SpeedUp accelerates the gap spans of the video by factor while leaving
// narrated spans untouched. Each segment is extracted to an intermediate
// file and the results are joined with the concat demuxer.
func (c *CLI) SpeedUp(ctx context.Context, videoPath string, gaps []timemap.Interval, videoDuration, factor float64, outputPath string) error {
	if videoPath == "" {
		return services.Wrap(services.ErrValidation, "speedup", "segments", "video path required", nil)
	}
	if factor < 1.0 {
		return services.Wrap(services.ErrValidation, "speedup", "segments", fmt.Sprintf("speed factor %g below 1.0", factor), nil)
	}

	segments := buildSegments(gaps, videoDuration, factor)
	if len(segments) == 0 {
		return services.Wrap(services.ErrValidation, "speedup", "segments", "no segments to process", nil)
	}

	workDir, err := os.MkdirTemp(filepath.Dir(outputPath), "speedup-*")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "speedup", "workspace", "create segment directory", err)
	}
	defer os.RemoveAll(workDir)

	var listing strings.Builder
	for i, seg := range segments {
		segPath := filepath.Join(workDir, fmt.Sprintf("seg_%03d.mp4", i))
		args := []string{
			"-y",
			"-i", videoPath,
			"-filter_complex", segmentFilter(seg),
			"-map", "[v]",
			"-map", "[a]",
			"-c:v", "libx264",
			"-preset", "fast",
			"-crf", "23",
			"-c:a", "aac",
			"-b:a", "128k",
			segPath,
		}
		if err := c.run(ctx, "speedup", "extract-segment", args); err != nil {
			return err
		}
		fmt.Fprintf(&listing, "file '%s'\n", segPath)
	}

	listPath := filepath.Join(workDir, "segments.txt")
	if err := os.WriteFile(listPath, []byte(listing.String()), 0o644); err != nil {
		return services.Wrap(services.ErrConfiguration, "speedup", "concat", "write segment list", err)
	}

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-movflags", "+faststart",
		outputPath,
	}
	return c.run(ctx, "speedup", "concat", args)
}
