package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"demoreel/internal/config"
	"demoreel/internal/logging"
	"demoreel/internal/request"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
	"demoreel/internal/services/elevenlabs"
	"demoreel/internal/services/ffmpeg"
)

// Synthesizer is the TTS surface the narrate stage needs.
type Synthesizer interface {
	SynthesizeBatch(ctx context.Context, requests []elevenlabs.Request, parallel int) error
}

// Pipeline executes run stages against the store and the media tools.
type Pipeline struct {
	cfg    *config.Config
	store  *runstore.Store
	logger *slog.Logger
	media  ffmpeg.Client
	tts    Synthesizer
}

// Option customizes pipeline collaborators, mainly for tests.
type Option func(*Pipeline)

// WithMediaClient overrides the ffmpeg client.
func WithMediaClient(client ffmpeg.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.media = client
		}
	}
}

// WithSynthesizer overrides the TTS client.
func WithSynthesizer(tts Synthesizer) Option {
	return func(p *Pipeline) {
		if tts != nil {
			p.tts = tts
		}
	}
}

// New constructs a pipeline with the default ffmpeg and ElevenLabs clients.
func New(cfg *config.Config, store *runstore.Store, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		media:  ffmpeg.NewCLI(ffmpeg.WithBinaries(cfg.FFmpegBinary(), cfg.FFprobeBinary())),
		tts:    elevenlabs.NewFromConfig(cfg),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// stageOrder is the sequence Resume walks when advancing a run.
var stageOrder = []struct {
	from  runstore.Status
	stage string
	run   func(*Pipeline, context.Context, *runstore.Run) error
}{
	{runstore.StatusRecorded, "narrate", (*Pipeline).Narrate},
	{runstore.StatusNarrated, "place", (*Pipeline).Place},
	{runstore.StatusPlaced, "speedup", (*Pipeline).SpeedUp},
	{runstore.StatusEdited, "captions", (*Pipeline).Captions},
	{runstore.StatusCaptioned, "finish", (*Pipeline).Finish},
}

// Resume advances the run from its current status to completion. The first
// stage failure marks the run failed and stops.
func (p *Pipeline) Resume(ctx context.Context, run *runstore.Run) error {
	if run == nil {
		return services.Wrap(services.ErrValidation, "pipeline", "resume", "run is nil", nil)
	}
	if run.IsTerminal() {
		return services.Wrap(services.ErrValidation, "pipeline", "resume",
			fmt.Sprintf("run %s already %s", shortRunID(run.RunID), run.Status), nil)
	}

	ctx = services.WithRunID(ctx, shortRunID(run.RunID))
	for {
		advanced := false
		for _, step := range stageOrder {
			if run.Status != step.from {
				continue
			}
			stageCtx := services.WithStage(ctx, step.stage)
			stageLogger := logging.WithContext(stageCtx, p.logger)
			stageLogger.Info("stage started")
			if err := step.run(p, stageCtx, run); err != nil {
				stageLogger.Error("stage failed", logging.Error(err))
				if storeErr := p.store.MarkFailed(stageCtx, run, err); storeErr != nil {
					stageLogger.Error("failed to persist failure", logging.Error(storeErr))
				}
				if services.IsRetryable(err) {
					stageLogger.Info("failure looks transient; resume to retry")
				}
				return err
			}
			stageLogger.Info("stage finished", logging.String("status", string(run.Status)))
			advanced = true
			break
		}
		if !advanced || run.Status == runstore.StatusCompleted {
			return nil
		}
	}
}

// RunStage executes a single named stage, verifying the run is in the right
// state for it.
func (p *Pipeline) RunStage(ctx context.Context, run *runstore.Run, stage string) error {
	if run == nil {
		return services.Wrap(services.ErrValidation, stage, "run-stage", "run is nil", nil)
	}
	ctx = services.WithRunID(ctx, shortRunID(run.RunID))
	for _, step := range stageOrder {
		if step.stage != stage {
			continue
		}
		if run.Status != step.from {
			return services.Wrap(services.ErrValidation, stage, "run-stage",
				fmt.Sprintf("run %s is %s, expected %s", shortRunID(run.RunID), run.Status, step.from), nil)
		}
		stageCtx := services.WithStage(ctx, stage)
		if err := step.run(p, stageCtx, run); err != nil {
			if storeErr := p.store.MarkFailed(stageCtx, run, err); storeErr != nil {
				logging.WithContext(stageCtx, p.logger).Error("failed to persist failure", logging.Error(storeErr))
			}
			return err
		}
		return nil
	}
	return services.Wrap(services.ErrValidation, stage, "run-stage", fmt.Sprintf("unknown stage %q", stage), nil)
}

// runDir is the per-run workspace directory holding intermediate artifacts.
func (p *Pipeline) runDir(run *runstore.Run) string {
	return filepath.Join(p.cfg.Paths.WorkspaceDir, "runs", shortRunID(run.RunID))
}

func (p *Pipeline) ensureRunDir(run *runstore.Run) (string, error) {
	dir := p.runDir(run)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "pipeline", "workspace",
			fmt.Sprintf("create run directory %s", dir), err)
	}
	return dir, nil
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

// speedupFactor resolves the effective factor after request overrides.
func (p *Pipeline) speedupFactor(overrides *request.Editing) float64 {
	if overrides != nil && overrides.SpeedupFactor != nil && *overrides.SpeedupFactor >= 1 {
		return *overrides.SpeedupFactor
	}
	return p.cfg.Editing.SpeedupFactor
}

func (p *Pipeline) minGap(overrides *request.Editing) float64 {
	if overrides != nil && overrides.MinGapSeconds != nil && *overrides.MinGapSeconds > 0 {
		return *overrides.MinGapSeconds
	}
	return p.cfg.Editing.MinGapSeconds
}

func (p *Pipeline) speedupDisabled(overrides *request.Editing) bool {
	if overrides != nil && overrides.DisableSpeedup != nil {
		return *overrides.DisableSpeedup
	}
	return p.cfg.Editing.SpeedupDisabled
}
