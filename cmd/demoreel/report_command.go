package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"demoreel/internal/captions"
	"demoreel/internal/pipeline"
	"demoreel/internal/report"
	"demoreel/internal/runstore"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report [run-id]",
		Short: "Render placement, gap, and caption reports for a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runstore.Store) error {
				run, err := resolveRun(cmd, store, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s): %s\n", shortID(run.RunID), run.Title, run.Status)

				if run.PlacementJSON == "" {
					fmt.Fprintln(out, "\nNo placement yet; run the place stage first.")
					return nil
				}
				placement, adjustments, err := pipeline.DecodePlacement(run)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "\nPlacement")
				fmt.Fprintln(out, report.Placements(placement))
				fmt.Fprintln(out, "\nOverlap adjustments")
				fmt.Fprintln(out, report.Adjustments(adjustments))

				if run.TimeMapJSON != "" {
					gaps, mapping, err := pipeline.DecodeTimeMap(run)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, "\nGap compression")
					fmt.Fprintln(out, report.Gaps(gaps, mapping))
				}

				if run.CaptionsFile != "" {
					content, err := os.ReadFile(run.CaptionsFile)
					if err != nil {
						return fmt.Errorf("read captions: %w", err)
					}
					entries := captions.ParseSRT(string(content))
					fmt.Fprintln(out, "\nCaptions")
					fmt.Fprintln(out, report.Captions(captions.Validate(entries)))
				}
				return nil
			})
		},
	}
}
