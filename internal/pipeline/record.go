package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"demoreel/internal/logging"
	"demoreel/internal/request"
	"demoreel/internal/runstore"
	"demoreel/internal/services"
	"demoreel/internal/timeline"
)

// Record registers a finished capture as a new run. The video, the marker
// table, and the demo request come from the recording collaborator; this
// stage only validates them and pins their paths to the run.
func (p *Pipeline) Record(ctx context.Context, requestPath string) (*runstore.Run, error) {
	req, err := request.Read(requestPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "record", "read-request", "invalid request file", err)
	}

	if _, err := os.Stat(req.Video); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "record", "validate",
			fmt.Sprintf("video file %s", req.Video), err)
	}
	markers, err := timeline.Load(req.Markers)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "record", "validate",
			fmt.Sprintf("markers file %s", req.Markers), err)
	}
	if len(markers) == 0 {
		return nil, services.Wrap(services.ErrValidation, "record", "validate",
			fmt.Sprintf("markers file %s contains no markers", req.Markers), nil)
	}
	if _, _, err := req.Resolve(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "record", "resolve", "request does not resolve", err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled demo"
	}
	template := req.Template
	if template == "" && len(req.Segments) == 0 {
		template = p.cfg.Narration.Template
	}

	run, err := p.store.NewRun(ctx, title, req.Video, template)
	if err != nil {
		return nil, err
	}
	run.Status = runstore.StatusRecorded
	run.MarkersFile = req.Markers
	run.RequestFile = requestPath
	if err := p.store.Update(ctx, run); err != nil {
		return nil, err
	}

	logging.WithContext(services.WithRunID(ctx, shortRunID(run.RunID)), p.logger).Info(
		"run recorded",
		logging.String("title", title),
		logging.Int("markers", len(markers)),
	)
	return run, nil
}
