package pipeline

import (
	"context"
	"path/filepath"

	"demoreel/internal/logging"
	"demoreel/internal/request"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
	"demoreel/internal/timemap"
)

// SpeedUp derives the quiet gaps between placed narration, compresses them
// in the video, and stores the time map so the caption stage can shift
// timestamps the same way.
func (p *Pipeline) SpeedUp(ctx context.Context, run *runstore.Run) error {
	artifact, err := p.placement(run)
	if err != nil {
		return err
	}

	overrides := p.editingOverrides(run)
	logger := logging.WithContext(ctx, p.logger)

	placedVideo := filepath.Join(p.runDir(run), "placed.mp4")
	videoDuration, err := p.media.Duration(ctx, placedVideo)
	if err != nil {
		return err
	}

	factor := p.speedupFactor(overrides)
	timeMap := timeMapArtifact{Factor: factor, VideoDuration: videoDuration}

	if p.speedupDisabled(overrides) {
		logger.Info("speedup disabled, keeping original pacing")
		return p.finishSpeedUp(ctx, run, timeMap, placedVideo)
	}

	// Narration spans are protected; padding keeps speech from butting
	// against a speed change.
	padding := p.cfg.Editing.PaddingSeconds
	protected := make([]timemap.Interval, 0, len(artifact.Segments))
	for _, seg := range artifact.Segments {
		start := seg.Start - padding
		if start < 0 {
			start = 0
		}
		end := seg.Start + seg.Duration + padding
		if end > videoDuration {
			end = videoDuration
		}
		protected = append(protected, timemap.Interval{Start: start, End: end})
	}

	gaps := timemap.DeriveGaps(protected, videoDuration, p.minGap(overrides))
	if len(gaps) == 0 {
		logger.Info("no gaps long enough to compress")
		return p.finishSpeedUp(ctx, run, timeMap, placedVideo)
	}

	for _, gap := range gaps {
		timeMap.Gaps = append(timeMap.Gaps, intervalArtifact{Start: gap.Start, End: gap.End})
	}

	editedVideo := filepath.Join(p.runDir(run), "edited.mp4")
	if err := p.media.SpeedUp(ctx, placedVideo, gaps, videoDuration, factor, editedVideo); err != nil {
		return err
	}

	mapping := timemap.Build(gaps, protected, videoDuration, factor)
	logger.Info("gaps compressed",
		logging.Int("gaps", len(gaps)),
		logging.Float64("factor", factor),
		logging.Float64("original_duration", videoDuration),
		logging.Float64("edited_duration", mapping.Map(videoDuration)),
	)
	return p.finishSpeedUp(ctx, run, timeMap, editedVideo)
}

func (p *Pipeline) finishSpeedUp(ctx context.Context, run *runstore.Run, timeMap timeMapArtifact, editedVideo string) error {
	encoded, err := encodeJSON(timeMap)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "speedup", "artifact", "persist time map", err)
	}
	run.TimeMapJSON = encoded
	run.Status = runstore.StatusEdited

	// Track the newest intermediate so later stages pick up the right file.
	if err := writeJSONFile(filepath.Join(p.runDir(run), "current.json"), map[string]string{"video": editedVideo}); err != nil {
		return services.Wrap(services.ErrConfiguration, "speedup", "artifact", "persist current video pointer", err)
	}
	return p.store.Update(ctx, run)
}

// currentVideo returns the newest intermediate video for the run, falling
// back to the placed render.
func (p *Pipeline) currentVideo(run *runstore.Run) string {
	var pointer map[string]string
	if err := readJSONFile(filepath.Join(p.runDir(run), "current.json"), &pointer); err == nil {
		if video := pointer["video"]; video != "" {
			return video
		}
	}
	return filepath.Join(p.runDir(run), "placed.mp4")
}

// editingOverrides re-reads the request's editing block; a missing request
// file just means no overrides.
func (p *Pipeline) editingOverrides(run *runstore.Run) *request.Editing {
	req, err := request.Read(run.RequestFile)
	if err != nil {
		return nil
	}
	return req.Editing
}

// timeMap decodes the stored time map artifact.
func (p *Pipeline) timeMap(run *runstore.Run) (timeMapArtifact, error) {
	var artifact timeMapArtifact
	if err := decodeJSON(run.TimeMapJSON, &artifact); err != nil {
		return artifact, services.Wrap(services.ErrNotFound, "pipeline", "artifact",
			"time map missing; run the speedup stage first", err)
	}
	return artifact, nil
}
