package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"demoreel/internal/logging"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
)

// Finish publishes the newest intermediate render to the output directory
// and completes the run.
func (p *Pipeline) Finish(ctx context.Context, run *runstore.Run) error {
	source := p.currentVideo(run)
	if _, err := os.Stat(source); err != nil {
		return services.Wrap(services.ErrNotFound, "finish", "publish",
			fmt.Sprintf("rendered video %s", source), err)
	}

	if err := os.MkdirAll(p.cfg.Paths.OutputDir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "finish", "publish", "create output directory", err)
	}
	output := filepath.Join(p.cfg.Paths.OutputDir, outputName(run))
	if err := copyFile(source, output); err != nil {
		return services.Wrap(services.ErrConfiguration, "finish", "publish", "copy final render", err)
	}

	run.OutputFile = output
	run.Status = runstore.StatusCompleted
	run.ErrorMessage = ""
	if err := p.store.Update(ctx, run); err != nil {
		return err
	}
	logging.WithContext(ctx, p.logger).Info("run completed", logging.String("output", output))
	return nil
}

// outputName derives a filesystem-friendly name from the run title, suffixed
// with the short run id so repeated titles never collide.
func outputName(run *runstore.Run) string {
	slug := strings.ToLower(strings.TrimSpace(run.Title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "demo"
	}
	return fmt.Sprintf("%s-%s.mp4", slug, shortRunID(run.RunID))
}

func copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
