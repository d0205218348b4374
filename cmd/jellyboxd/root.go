package main

import (
	"github.com/spf13/cobra"

	"jellyboxd/internal/config"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(nil)
}

func newRootCommandWith(newLauncher launcherFactory) *cobra.Command {
	ctx := newCommandContext(newLauncher)

	rootCmd := &cobra.Command{
		Use:   "jellyboxd",
		Short: "Sync Jellyfin watch history to Letterboxd",
		Long: "Export every watched movie and series from a Jellyfin account to a Letterboxd\n" +
			"import CSV, then upload it through the Letterboxd import page.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd, (*config.Config).Validate)
			if err != nil {
				return err
			}
			return s.finish("sync", ctx.sync(cmd, s))
		},
	}

	ctx.bindFlags(rootCmd)

	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func (c *commandContext) sync(cmd *cobra.Command, s *session) error {
	lock, err := acquireRunLock(s)
	if err != nil {
		return err
	}
	defer releaseRunLock(s, lock)

	result, err := runExport(s)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printExportSummary(out, result)

	outcome, err := c.runImport(s)
	printImportOutcome(out, outcome, err)
	return err
}
