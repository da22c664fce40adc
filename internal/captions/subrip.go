package captions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatSRT renders entries as a SubRip document.
func FormatSRT(entries []Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimecode(entry.Start), srtTimecode(entry.End),
			wrapText(entry.Text, maxLineChars))
	}
	return b.String()
}

// FormatVTT renders entries as a WebVTT document. VTT uses the SRT timecode
// shape with a dot before the milliseconds.
func FormatVTT(entries []Entry) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, entry := range entries {
		start := strings.ReplaceAll(srtTimecode(entry.Start), ",", ".")
		end := strings.ReplaceAll(srtTimecode(entry.End), ",", ".")
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, start, end, wrapText(entry.Text, maxLineChars))
	}
	return b.String()
}

// ParseSRT parses a SubRip document back into entries. Both comma and dot
// millisecond separators are accepted. Blocks without a valid timecode line
// are skipped.
func ParseSRT(content string) []Entry {
	var entries []Entry
	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		timeLine := lines[0]
		textStart := 1
		if !strings.Contains(timeLine, "-->") && len(lines) >= 2 {
			timeLine = lines[1]
			textStart = 2
		}
		start, end, ok := parseTimeRange(timeLine)
		if !ok || textStart > len(lines) {
			continue
		}
		entries = append(entries, Entry{
			Start: start,
			End:   end,
			Text:  strings.Join(lines[textStart:], "\n"),
		})
	}
	return entries
}

func parseTimeRange(line string) (start, end float64, ok bool) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, okStart := parseTimecode(strings.TrimSpace(parts[0]))
	end, okEnd := parseTimecode(strings.TrimSpace(parts[1]))
	return start, end, okStart && okEnd
}

func parseTimecode(value string) (float64, bool) {
	value = strings.ReplaceAll(value, ",", ".")
	var hours, minutes int
	var seconds float64
	if _, err := fmt.Sscanf(value, "%d:%d:%f", &hours, &minutes, &seconds); err != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

// WriteFile writes entries in the format implied by the file extension
// (.srt or .vtt).
func WriteFile(path string, entries []Entry) error {
	var content string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		content = FormatSRT(entries)
	case ".vtt":
		content = FormatVTT(entries)
	default:
		return fmt.Errorf("unsupported subtitle format %q", filepath.Ext(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create subtitle directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write subtitles %s: %w", path, err)
	}
	return nil
}
