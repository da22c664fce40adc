package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"demoreel/internal/report"
	"demoreel/internal/runstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and manage the run ledger",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsRemoveCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))
	runsCmd.AddCommand(newRunsClearFailedCommand(ctx))
	runsCmd.AddCommand(newRunsHealthCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				statuses := make([]runstore.Status, 0, len(statusFilter))
				for _, raw := range statusFilter {
					status, ok := runstore.ParseStatus(raw)
					if !ok {
						return fmt.Errorf("unknown status %q", raw)
					}
					statuses = append(statuses, status)
				}
				runs, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				values := make([]runstore.Run, 0, len(runs))
				for _, run := range runs {
					values = append(values, *run)
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Runs(values))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&statusFilter, "status", nil, "Only show runs with these statuses")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show one run's details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				run, err := resolveRun(cmd, store, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:      %s\n", run.RunID)
				fmt.Fprintf(out, "Title:    %s\n", run.Title)
				fmt.Fprintf(out, "Status:   %s\n", run.Status)
				if run.Template != "" {
					fmt.Fprintf(out, "Template: %s\n", run.Template)
				}
				fmt.Fprintf(out, "Video:    %s\n", run.VideoFile)
				if run.MarkersFile != "" {
					fmt.Fprintf(out, "Markers:  %s\n", run.MarkersFile)
				}
				if run.CaptionsFile != "" {
					fmt.Fprintf(out, "Captions: %s\n", run.CaptionsFile)
				}
				if run.OutputFile != "" {
					fmt.Fprintf(out, "Output:   %s\n", run.OutputFile)
				}
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
				}
				return nil
			})
		},
	}
}

func newRunsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <run-id>",
		Short: "Remove one run from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				run, err := resolveRun(cmd, store, args)
				if err != nil {
					return err
				}
				removed, err := store.Remove(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("run %s was already gone", shortID(run.RunID))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s\n", shortID(run.RunID))
				return nil
			})
		},
	}
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				count, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", count)
				return nil
			})
		},
	}
}

func newRunsClearFailedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-failed",
		Short: "Remove failed runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				count, err := store.ClearFailed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d failed run(s)\n", count)
				return nil
			})
		},
	}
}

func newRunsHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show aggregate run counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				summary, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Health(summary))
				return nil
			})
		},
	}
}
