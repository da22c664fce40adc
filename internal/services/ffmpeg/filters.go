package ffmpeg

import (
	"fmt"
	"math"
	"strings"
)

// burnStyle is the ASS style applied when captions are burned into frames.
const burnStyle = "FontName=Arial,FontSize=24,PrimaryColour=&HFFFFFF&,OutlineColour=&H000000&,BorderStyle=3,Outline=2,Shadow=1,MarginV=40,Alignment=2"

// audioFilterGraph builds the filter_complex that delays each narration clip
// to its timeline position, pads every branch to the video duration, and
// mixes the branches without renormalizing levels. Input 0 is the video, so
// clip i arrives on input i+1.
func audioFilterGraph(clips []Clip, videoDuration float64) string {
	pad := formatSeconds(videoDuration)

	if len(clips) == 1 {
		ms := delayMillis(clips[0].Start)
		return fmt.Sprintf("[1:a]adelay=%d|%d,apad=pad_dur=%s[aout]", ms, ms, pad)
	}

	var b strings.Builder
	for i, clip := range clips {
		ms := delayMillis(clip.Start)
		fmt.Fprintf(&b, "[%d:a]adelay=%d|%d,apad=pad_dur=%s[a%d];", i+1, ms, ms, pad, i)
	}
	for i := range clips {
		fmt.Fprintf(&b, "[a%d]", i)
	}
	fmt.Fprintf(&b, "amix=inputs=%d:duration=longest:normalize=0[aout]", len(clips))
	return b.String()
}

func delayMillis(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(seconds * 1000))
}

// atempoChain produces the audio tempo filters for a speed factor. atempo
// only accepts values up to 2.0, so larger factors are split into repeated
// doubling steps plus a remainder.
func atempoChain(factor float64) []string {
	var filters []string
	remaining := factor
	for remaining > 2.0 {
		filters = append(filters, "atempo=2.0")
		remaining /= 2.0
	}
	filters = append(filters, fmt.Sprintf("atempo=%s", formatFactor(remaining)))
	return filters
}

// escapeFilterPath escapes a path for use inside a filter argument, where
// backslashes and colons are structural characters.
func escapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, ":", `\:`)
	return strings.ReplaceAll(escaped, "'", `\'`)
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}

func formatFactor(factor float64) string {
	s := fmt.Sprintf("%g", factor)
	if !strings.Contains(s, ".") && !strings.Contains(s, "e") {
		s += ".0"
	}
	return s
}
