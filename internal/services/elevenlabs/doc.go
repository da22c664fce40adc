// Package elevenlabs wraps the ElevenLabs text-to-speech API for narration
// audio generation. Batch synthesis runs segments concurrently under a
// configurable parallelism cap.
package elevenlabs
