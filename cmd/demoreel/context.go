package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"demoreel/internal/config"
	"demoreel/internal/logging"
	"demoreel/internal/pipeline"
	"demoreel/internal/runstore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     cfg.Paths.LogDir,
		Pattern: "*.log",
	})
	return logger, nil
}

// withStore opens the run store for the duration of fn.
func (c *commandContext) withStore(fn func(*runstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := runstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// withPipeline builds a pipeline plus its store for the duration of fn.
// Stages that touch the workspace take the run lock so two invocations
// cannot trample each other's intermediates.
func (c *commandContext) withPipeline(locked bool, fn func(*pipeline.Pipeline, *runstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if locked {
		lock := flock.New(filepath.Join(cfg.Paths.WorkspaceDir, "demoreel.lock"))
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire workspace lock: %w", err)
		}
		if !ok {
			return errors.New("another demoreel run is active in this workspace")
		}
		defer lock.Unlock()
	}

	logger, err := c.newLogger()
	if err != nil {
		return err
	}

	return c.withStore(func(store *runstore.Store) error {
		return fn(pipeline.New(cfg, store, logger), store)
	})
}

// resolveRun finds the run named by args[0] (id prefix) or falls back to
// the most recent run.
func resolveRun(cmd *cobra.Command, store *runstore.Store, args []string) (*runstore.Run, error) {
	if len(args) > 0 {
		run, err := store.GetByRunID(cmd.Context(), args[0])
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, fmt.Errorf("no run matches %q", args[0])
		}
		return run, nil
	}
	run, err := store.Latest(cmd.Context())
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, errors.New("no runs recorded yet; start one with `demoreel record`")
	}
	return run, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
