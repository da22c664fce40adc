package captions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSRT(t *testing.T) {
	entries := []Entry{
		{Start: 0.5, End: 3.25, Text: "Hello there"},
		{Start: 65.0, End: 67.8, Text: "Second"},
	}
	got := FormatSRT(entries)
	// Milliseconds truncate, so 67.8 renders as ,799.
	want := "1\n00:00:00,500 --> 00:00:03,250\nHello there\n\n" +
		"2\n00:01:05,000 --> 00:01:07,799\nSecond\n\n"
	if got != want {
		t.Fatalf("unexpected SRT output:\n%s", got)
	}
}

func TestFormatVTT(t *testing.T) {
	got := FormatVTT([]Entry{{Start: 1.0, End: 2.0, Text: "hi"}})
	if !strings.HasPrefix(got, "WEBVTT\n\n") {
		t.Fatalf("missing WEBVTT header:\n%s", got)
	}
	if !strings.Contains(got, "00:00:01.000 --> 00:00:02.000") {
		t.Fatalf("VTT timecodes should use dots:\n%s", got)
	}
}

func TestParseSRTRoundTrip(t *testing.T) {
	entries := []Entry{
		{Start: 0.5, End: 3.25, Text: "Hello there"},
		{Start: 65.0, End: 67.8, Text: "Second line one\nline two"},
	}
	parsed := ParseSRT(FormatSRT(entries))
	if len(parsed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed))
	}
	if parsed[0].Start != 0.5 || parsed[0].End != 3.25 {
		t.Fatalf("first entry timing: %+v", parsed[0])
	}
	if parsed[1].Text != "Second line one\nline two" {
		t.Fatalf("multiline text lost: %q", parsed[1].Text)
	}
}

func TestParseSRTToleratesDotSeparator(t *testing.T) {
	parsed := ParseSRT("1\n00:00:01.500 --> 00:00:02.000\nhi\n\n")
	if len(parsed) != 1 || parsed[0].Start != 1.5 {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
}

func TestParseSRTSkipsMalformedBlocks(t *testing.T) {
	content := "garbage\n\n1\nnot a timecode\ntext\n\n2\n00:00:01,000 --> 00:00:02,000\nok\n\n"
	parsed := ParseSRT(content)
	if len(parsed) != 1 || parsed[0].Text != "ok" {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
}

func TestWrapText(t *testing.T) {
	text := "this caption is definitely longer than the configured wrap width"
	wrapped := wrapText(text, maxLineChars)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > maxLineChars {
			t.Fatalf("line exceeds wrap width: %q", line)
		}
	}
	if strings.ReplaceAll(wrapped, "\n", " ") != text {
		t.Fatalf("wrapping lost words: %q", wrapped)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	entries := []Entry{{Start: 0, End: 1, Text: "x"}}

	srtPath := filepath.Join(dir, "out", "captions.srt")
	if err := WriteFile(srtPath, entries); err != nil {
		t.Fatalf("WriteFile srt: %v", err)
	}
	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "-->") {
		t.Fatalf("unexpected srt content: %s", data)
	}

	if err := WriteFile(filepath.Join(dir, "captions.ass"), entries); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestSrtTimecodeClampsNegative(t *testing.T) {
	if got := srtTimecode(-0.4); got != "00:00:00,000" {
		t.Fatalf("negative time should clamp: %s", got)
	}
}
