package preflight

import (
	"context"

	"demoreel/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the workspace headroom a render needs for intermediate
// segment files.
const minFreeBytes = 2 << 30

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Workspace directory", cfg.Paths.WorkspaceDir))
	results = append(results, CheckDirectoryAccess("Audio cache directory", cfg.Paths.AudioCacheDir))
	if cfg.Paths.OutputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	}

	results = append(results, CheckDiskSpace("Workspace free space", cfg.Paths.WorkspaceDir, minFreeBytes))
	results = append(results, CheckMemory())

	results = append(results, CheckTTSFromConfig(ctx, cfg))

	return results
}
