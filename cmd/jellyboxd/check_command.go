package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jellyboxd/internal/config"
	"jellyboxd/internal/preflight"
	"jellyboxd/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify Jellyfin, Letterboxd, the browser, and the CSV path before a sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Missing settings are reported as failed checks rather than rejected up front.
			s, err := ctx.openSession(cmd, func(*config.Config) error { return nil })
			if err != nil {
				return err
			}
			results := preflight.RunAll(s.ctx, s.cfg)

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]column{col("Check"), col("Status"), col("Detail")}, rows))

			if preflight.Failed(results) {
				return services.Wrap(services.ErrPrecondition, "check", "preflight", "one or more checks failed", nil)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
