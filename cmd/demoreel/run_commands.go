package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"demoreel/internal/pipeline"
	"demoreel/internal/runstore"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "record <request.yaml>",
		Short: "Register a finished capture and its demo request as a new run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(false, func(p *pipeline.Pipeline, _ *runstore.Store) error {
				run, err := p.Record(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded run %s (%s)\n", shortID(run.RunID), run.Title)
				return nil
			})
		},
	}
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <request.yaml>",
		Short: "Record a capture and render it end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(true, func(p *pipeline.Pipeline, _ *runstore.Store) error {
				run, err := p.Record(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded run %s (%s)\n", shortID(run.RunID), run.Title)
				if err := p.Resume(cmd.Context(), run); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Finished: %s\n", run.OutputFile)
				return nil
			})
		},
	}
}

func newResumeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resume [run-id]",
		Short: "Continue a run from its last completed stage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(true, func(p *pipeline.Pipeline, store *runstore.Store) error {
				run, err := resolveRun(cmd, store, args)
				if err != nil {
					return err
				}
				if err := p.Resume(cmd.Context(), run); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Finished: %s\n", run.OutputFile)
				return nil
			})
		},
	}
}

// newStageCommands exposes each pipeline stage as its own subcommand for
// reworking a single step after tweaking the request or config.
func newStageCommands(ctx *commandContext) []*cobra.Command {
	stages := []struct {
		name  string
		short string
	}{
		{"narrate", "Synthesize narration audio for a run"},
		{"place", "Resolve placement and mix narration onto the capture"},
		{"speedup", "Compress quiet gaps in the video"},
		{"captions", "Generate and validate subtitles"},
		{"finish", "Publish the final render to the output directory"},
	}

	commands := make([]*cobra.Command, 0, len(stages))
	for _, stage := range stages {
		commands = append(commands, &cobra.Command{
			Use:   stage.name + " [run-id]",
			Short: stage.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withPipeline(true, func(p *pipeline.Pipeline, store *runstore.Store) error {
					run, err := resolveRun(cmd, store, args)
					if err != nil {
						return err
					}
					if err := p.RunStage(cmd.Context(), run, cmd.Name()); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Run %s is now %s\n", shortID(run.RunID), run.Status)
					return nil
				})
			},
		})
	}
	return commands
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
