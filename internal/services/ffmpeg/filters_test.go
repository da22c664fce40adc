package ffmpeg

import (
	"reflect"
	"testing"
)

func TestAudioFilterGraphSingleClip(t *testing.T) {
	graph := audioFilterGraph([]Clip{{Path: "a.mp3", Start: 2.5}}, 40)
	expected := "[1:a]adelay=2500|2500,apad=pad_dur=40.000[aout]"
	if graph != expected {
		t.Fatalf("expected %q, got %q", expected, graph)
	}
}

func TestAudioFilterGraphMixesMultipleClips(t *testing.T) {
	clips := []Clip{
		{Path: "a.mp3", Start: 0},
		{Path: "b.mp3", Start: 5.25},
	}
	graph := audioFilterGraph(clips, 30)
	expected := "[1:a]adelay=0|0,apad=pad_dur=30.000[a0];" +
		"[2:a]adelay=5250|5250,apad=pad_dur=30.000[a1];" +
		"[a0][a1]amix=inputs=2:duration=longest:normalize=0[aout]"
	if graph != expected {
		t.Fatalf("expected %q, got %q", expected, graph)
	}
}

func TestAtempoChainSplitsLargeFactors(t *testing.T) {
	cases := []struct {
		factor   float64
		expected []string
	}{
		{1.5, []string{"atempo=1.5"}},
		{2.0, []string{"atempo=2.0"}},
		{3.0, []string{"atempo=2.0", "atempo=1.5"}},
		{8.0, []string{"atempo=2.0", "atempo=2.0", "atempo=2.0"}},
	}
	for _, tc := range cases {
		got := atempoChain(tc.factor)
		if !reflect.DeepEqual(got, tc.expected) {
			t.Fatalf("factor %g: expected %v, got %v", tc.factor, tc.expected, got)
		}
	}
}

func TestEscapeFilterPath(t *testing.T) {
	escaped := escapeFilterPath("/tmp/it's a demo:final.srt")
	expected := `/tmp/it\'s a demo\:final.srt`
	if escaped != expected {
		t.Fatalf("expected %q, got %q", expected, escaped)
	}
}
