package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"demoreel/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check workspace, system resources, and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0

			fmt.Fprintln(out, "Environment:")
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				mark := "ok"
				if !result.Passed {
					mark = "FAIL"
					failed++
				}
				if result.Detail != "" {
					fmt.Fprintf(out, "  [%s] %s: %s\n", mark, result.Name, result.Detail)
				} else {
					fmt.Fprintf(out, "  [%s] %s\n", mark, result.Name)
				}
			}

			fmt.Fprintln(out, "Tools:")
			for _, status := range preflight.CheckSystemDeps(cfg) {
				mark := "ok"
				if !status.Available {
					mark = "FAIL"
					if !status.Optional {
						failed++
					}
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Command
				}
				fmt.Fprintf(out, "  [%s] %s: %s\n", mark, status.Name, detail)
			}

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
