// Package ffmpeg wraps the ffmpeg and ffprobe command-line tools for the
// editing and composition stages.
//
// It builds adelay/amix filter graphs that place narration audio at resolved
// timeline positions, trim/setpts/atempo graphs that speed up quiet gaps,
// and the subtitles filter for caption burn-in. Command execution goes
// through an overridable seam so tests can capture arguments without
// spawning processes.
package ffmpeg
