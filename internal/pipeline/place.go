package pipeline

import (
	"context"
	"path/filepath"

	"demoreel/internal/logging"
	"demoreel/internal/narration"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
	"demoreel/internal/services/ffmpeg"
	"demoreel/internal/timeline"
)

// Place resolves every narration segment to an absolute start time, fixes
// overlaps, stores the placement on the run, and mixes the narration audio
// onto the capture.
func (p *Pipeline) Place(ctx context.Context, run *runstore.Run) error {
	manifest, err := p.loadManifest(run)
	if err != nil {
		return err
	}
	segments := manifest.toSegments()

	markers, err := timeline.Load(run.MarkersFile)
	if err != nil {
		return services.Wrap(services.ErrValidation, "place", "load-markers", run.MarkersFile, err)
	}

	logger := logging.WithContext(ctx, p.logger)

	var positioned []narration.PositionedSegment
	artifact := placementArtifact{}
	if p.cfg.Narration.LenientMatching {
		result := narration.ResolveLenient(segments, markers)
		positioned = result.Positioned
		artifact.Missing = result.Missing
		for _, match := range result.Matches {
			logger.Debug("anchor matched loosely",
				logging.String(logging.FieldSegment, match.SegmentID),
				logging.String(logging.FieldMarker, match.Marker),
				logging.String("strategy", match.Strategy),
			)
		}
		for _, miss := range result.Missing {
			logger.Warn("segment not placed", logging.String("anchor", miss))
		}
	} else {
		positioned, err = narration.ResolveStrict(segments, markers)
		if err != nil {
			return services.Wrap(services.ErrValidation, "place", "resolve", "strict placement failed", err)
		}
	}
	if len(positioned) == 0 {
		return services.Wrap(services.ErrValidation, "place", "resolve", "no segments could be placed", nil)
	}

	fixed, adjustments := narration.FixOverlaps(positioned)
	for _, adj := range adjustments {
		logger.Info("overlap fixed",
			logging.String(logging.FieldSegment, adj.ID),
			logging.Float64("shift_seconds", adj.Delta()),
		)
		artifact.Adjustments = append(artifact.Adjustments, adjustmentRecord{
			ID:            adj.ID,
			OriginalStart: adj.OriginalStart,
			NewStart:      adj.NewStart,
		})
	}
	for _, seg := range fixed {
		artifact.Segments = append(artifact.Segments, placedSegment{
			ID:        seg.ID,
			Text:      seg.Text,
			Start:     seg.Start,
			AudioPath: seg.AudioPath,
			Duration:  seg.Duration,
		})
	}

	dir, err := p.ensureRunDir(run)
	if err != nil {
		return err
	}
	placedVideo := filepath.Join(dir, "placed.mp4")
	clips := make([]ffmpeg.Clip, 0, len(fixed))
	for _, seg := range fixed {
		clips = append(clips, ffmpeg.Clip{Path: seg.AudioPath, Start: seg.Start})
	}
	if err := p.media.PlaceAudio(ctx, run.VideoFile, clips, placedVideo); err != nil {
		return err
	}

	encoded, err := encodeJSON(artifact)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "place", "artifact", "persist placement", err)
	}
	run.PlacementJSON = encoded
	run.Status = runstore.StatusPlaced
	if err := p.store.Update(ctx, run); err != nil {
		return err
	}
	logger.Info("narration placed",
		logging.Int("segments", len(fixed)),
		logging.Int("adjustments", len(adjustments)),
		logging.Int("missing", len(artifact.Missing)),
	)
	return nil
}

// placement decodes the stored placement artifact.
func (p *Pipeline) placement(run *runstore.Run) (placementArtifact, error) {
	var artifact placementArtifact
	if err := decodeJSON(run.PlacementJSON, &artifact); err != nil {
		return artifact, services.Wrap(services.ErrNotFound, "pipeline", "artifact",
			"placement missing; run the place stage first", err)
	}
	return artifact, nil
}
