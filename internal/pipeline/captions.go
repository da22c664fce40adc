package pipeline

import (
	"context"
	"path/filepath"

	"demoreel/internal/captions"
	"demoreel/internal/logging"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
	"demoreel/internal/timeline"
)

// Captions builds subtitle timing from the narration manifest, shifts it
// through the time map, validates it, and writes the subtitle file. With
// burn-in enabled the captions are also rendered into the frames.
func (p *Pipeline) Captions(ctx context.Context, run *runstore.Run) error {
	logger := logging.WithContext(ctx, p.logger)

	if !p.cfg.Captions.Enabled {
		logger.Info("captions disabled")
		run.Status = runstore.StatusCaptioned
		return p.store.Update(ctx, run)
	}

	manifest, err := p.loadManifest(run)
	if err != nil {
		return err
	}
	markers, err := timeline.Load(run.MarkersFile)
	if err != nil {
		return services.Wrap(services.ErrValidation, "captions", "load-markers", run.MarkersFile, err)
	}

	segments := manifest.toSegments()
	durations := make(map[string]float64, len(segments))
	for _, seg := range segments {
		if seg.Duration > 0 {
			durations[seg.ID] = seg.Duration
		}
	}

	entries, skipped := captions.CalculateTimes(segments, markers, durations)
	for _, skip := range skipped {
		logger.Warn("caption skipped",
			logging.String(logging.FieldSegment, skip.SegmentID),
			logging.String("reason", skip.Reason),
		)
	}
	if len(entries) == 0 {
		return services.Wrap(services.ErrValidation, "captions", "timing", "no captions could be timed", nil)
	}

	// Marker-derived times predate overlap fixing; realign each caption to
	// the start its audio was actually mixed at.
	if placement, err := p.placement(run); err == nil {
		placedStarts := make(map[string]float64, len(placement.Segments))
		for _, seg := range placement.Segments {
			placedStarts[seg.ID] = seg.Start
		}
		for i, entry := range entries {
			if start, ok := placedStarts[entry.SegmentID]; ok && start != entry.Start {
				entries[i].End = start + entry.Duration()
				entries[i].Start = start
			}
		}
	}

	// Captions are timed on the original timeline; compress them exactly
	// the way the video gaps were compressed.
	if timeMap, err := p.timeMap(run); err == nil && len(timeMap.Gaps) > 0 {
		sections := make([]captions.SpeedSection, 0, len(timeMap.Gaps))
		for _, gap := range timeMap.Gaps {
			sections = append(sections, captions.SpeedSection{
				Start: gap.Start,
				End:   gap.End,
				Speed: timeMap.Factor,
			})
		}
		entries = captions.AdjustForEdits(entries, 0, sections)
	}

	// Timing problems are reported, not fatal: an imperfect subtitle file
	// still beats a failed run.
	validation := captions.Validate(entries)
	for _, warning := range validation.Warnings {
		logger.Warn("caption warning", logging.String("detail", warning))
	}
	for _, issue := range validation.Issues {
		logger.Warn("caption issue", logging.String("detail", issue))
	}
	if !validation.Valid {
		logger.Warn("caption timing has issues; writing subtitles anyway",
			logging.Int("issues", len(validation.Issues)))
	}

	dir, err := p.ensureRunDir(run)
	if err != nil {
		return err
	}
	captionsFile := filepath.Join(dir, "captions."+p.cfg.Captions.Format)
	if err := captions.WriteFile(captionsFile, entries); err != nil {
		return services.Wrap(services.ErrConfiguration, "captions", "write", captionsFile, err)
	}
	run.CaptionsFile = captionsFile

	if p.cfg.Captions.BurnIn {
		burned := filepath.Join(dir, "captioned.mp4")
		if err := p.media.BurnSubtitles(ctx, p.currentVideo(run), captionsFile, burned); err != nil {
			return err
		}
		if err := writeJSONFile(filepath.Join(dir, "current.json"), map[string]string{"video": burned}); err != nil {
			return services.Wrap(services.ErrConfiguration, "captions", "artifact", "persist current video pointer", err)
		}
	}

	run.Status = runstore.StatusCaptioned
	if err := p.store.Update(ctx, run); err != nil {
		return err
	}
	logger.Info("captions written",
		logging.Int("captions", len(entries)),
		logging.Int("skipped", len(skipped)),
		logging.String("file", captionsFile),
	)
	return nil
}
