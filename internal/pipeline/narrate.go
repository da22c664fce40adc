package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"demoreel/internal/logging"
	"demoreel/internal/narration"
	"demoreel/internal/request"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
	"demoreel/internal/services/elevenlabs"
	"demoreel/internal/timeline"
)

// Narrate resolves the request into narration segments, injects fillers that
// apply to the recorded markers, synthesizes the missing audio through the
// cache, and writes the narration manifest.
func (p *Pipeline) Narrate(ctx context.Context, run *runstore.Run) error {
	req, err := request.Read(run.RequestFile)
	if err != nil {
		return services.Wrap(services.ErrValidation, "narrate", "read-request", "request file", err)
	}
	segments, conditionals, err := req.Resolve()
	if err != nil {
		return services.Wrap(services.ErrValidation, "narrate", "resolve", "request does not resolve", err)
	}

	markers, err := timeline.Load(run.MarkersFile)
	if err != nil {
		return services.Wrap(services.ErrValidation, "narrate", "load-markers", run.MarkersFile, err)
	}

	var fillerIDs []string
	if p.cfg.Narration.FillersEnabled && len(conditionals) > 0 {
		var added []narration.Segment
		segments, added = narration.InjectFillers(segments, conditionals, markers)
		for _, filler := range added {
			fillerIDs = append(fillerIDs, filler.ID)
		}
	}
	if len(segments) == 0 {
		return services.Wrap(services.ErrValidation, "narrate", "resolve", "no narration segments", nil)
	}

	logger := logging.WithContext(ctx, p.logger)

	// Audio is cached by content so repeated runs skip synthesis.
	var pending []elevenlabs.Request
	for i := range segments {
		segments[i].AudioPath = p.cachePath(segments[i].Text)
		if _, err := os.Stat(segments[i].AudioPath); err == nil {
			continue
		}
		pending = append(pending, elevenlabs.Request{
			Text:       segments[i].Text,
			OutputPath: segments[i].AudioPath,
		})
	}
	if len(pending) > 0 {
		logger.Info("synthesizing narration",
			logging.Int("segments", len(pending)),
			logging.Int("cached", len(segments)-len(pending)),
		)
		if err := p.tts.SynthesizeBatch(ctx, pending, p.cfg.Narration.MaxParallelTTS); err != nil {
			return err
		}
	}

	for i := range segments {
		duration, err := p.media.Duration(ctx, segments[i].AudioPath)
		if err != nil {
			return err
		}
		segments[i].Duration = duration
	}

	dir, err := p.ensureRunDir(run)
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(dir, "narration.json")
	if err := writeJSONFile(manifestPath, manifestFromSegments(segments, fillerIDs)); err != nil {
		return services.Wrap(services.ErrConfiguration, "narrate", "manifest", "persist narration manifest", err)
	}

	run.Status = runstore.StatusNarrated
	if err := p.store.Update(ctx, run); err != nil {
		return err
	}
	logger.Info("narration ready",
		logging.Int("segments", len(segments)),
		logging.Int("fillers", len(fillerIDs)),
	)
	return nil
}

// cachePath derives a stable audio file location from the synthesis inputs,
// so a text change or a voice change misses the cache.
func (p *Pipeline) cachePath(text string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s",
		text, p.cfg.TTS.VoiceID, p.cfg.TTS.Model, p.cfg.TTS.OutputFormat))
	return filepath.Join(p.cfg.Paths.AudioCacheDir, hex.EncodeToString(sum[:8])+".mp3")
}

// loadManifest reads the narration manifest the narrate stage produced.
func (p *Pipeline) loadManifest(run *runstore.Run) (narrationManifest, error) {
	var manifest narrationManifest
	path := filepath.Join(p.runDir(run), "narration.json")
	if err := readJSONFile(path, &manifest); err != nil {
		return manifest, services.Wrap(services.ErrNotFound, "pipeline", "manifest",
			"narration manifest missing; run the narrate stage first", err)
	}
	return manifest, nil
}
