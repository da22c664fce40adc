package captions

import (
	"fmt"
	"strings"
)

// Entry is a single caption with absolute timing on the video timeline.
type Entry struct {
	Start     float64
	End       float64
	Text      string
	SegmentID string
}

// Duration returns the caption's on-screen time in seconds.
func (e Entry) Duration() float64 {
	return e.End - e.Start
}

// maxLineChars is the wrap width used for subtitle files.
const maxLineChars = 42

// srtTimecode renders seconds as HH:MM:SS,mmm.
func srtTimecode(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// wrapText breaks text into lines of at most maxLineChars, splitting on
// word boundaries.
func wrapText(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	var lines []string
	var current []string
	length := 0
	for _, word := range strings.Fields(text) {
		wordLen := len(word)
		if len(current) > 0 {
			wordLen++
		}
		if length+wordLen <= maxChars {
			current = append(current, word)
			length += wordLen
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
		length = len(word)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}
