package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Markdown fence comments delimiting the marker table. Request files embed
// the same block, so parsing falls back to scanning the whole document when
// the fences are absent.
const (
	markerBlockStart = "<!-- TIMELINE_MARKERS_START -->"
	markerBlockEnd   = "<!-- TIMELINE_MARKERS_END -->"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

// EncodeMarkdown renders markers as the fenced markdown table that is the
// long-lived on-disk representation: rows sorted by time, two decimal places,
// underscore-prefixed internal markers omitted.
func EncodeMarkdown(markers Markers) string {
	var b strings.Builder
	b.WriteString(markerBlockStart + "\n")
	b.WriteString("| Marker | Time (s) |\n")
	b.WriteString("|--------|----------|\n")
	for _, marker := range markers.Sorted() {
		if strings.HasPrefix(marker.Name, "_") {
			continue
		}
		fmt.Fprintf(&b, "| %s | %.2f |\n", marker.Name, marker.Seconds)
	}
	b.WriteString(markerBlockEnd + "\n")
	return b.String()
}

// WriteMarkdown persists markers to path, creating parent directories.
func WriteMarkdown(path string, markers Markers) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create timeline directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(EncodeMarkdown(markers)), 0o644); err != nil {
		return fmt.Errorf("write timeline %s: %w", path, err)
	}
	return nil
}

// ParseMarkdown extracts markers from markdown content. It prefers the fenced
// block; without fences it scans every table row in the document. Rows that
// do not parse as "name | seconds" are skipped rather than failing the whole
// table.
func ParseMarkdown(content string) Markers {
	lines := strings.Split(content, "\n")
	if start := strings.Index(content, markerBlockStart); start >= 0 {
		if end := strings.Index(content[start:], markerBlockEnd); end >= 0 {
			block := content[start+len(markerBlockStart) : start+end]
			lines = strings.Split(strings.TrimSpace(block), "\n")
		}
	}

	markers := make(Markers)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "|--") || strings.HasPrefix(line, "| Marker") {
			continue
		}
		if !strings.Contains(line, "|") {
			continue
		}
		parts := make([]string, 0, 3)
		for _, part := range strings.Split(line, "|") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(parts[1], ""), 64)
		if err != nil {
			continue
		}
		markers[parts[0]] = value
	}
	return markers
}

// Load reads markers from a markdown or JSON timeline file.
func Load(path string) (Markers, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return ParseMarkdown(string(content)), nil
	}
	var markers Markers
	if err := json.Unmarshal(content, &markers); err != nil {
		return nil, fmt.Errorf("parse timeline %s: %w", path, err)
	}
	return markers, nil
}
