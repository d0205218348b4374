package main

import (
	"github.com/spf13/cobra"

	"jellyboxd/internal/config"
	"jellyboxd/internal/history"
	"jellyboxd/internal/letterboxd"
	"jellyboxd/internal/logging"
	"jellyboxd/internal/runlock"
	"jellyboxd/internal/services/jellyfin"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the Jellyfin watch history to the interchange CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd, (*config.Config).ValidateExport)
			if err != nil {
				return err
			}
			return s.finish("export", func() error {
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
				if !quiet {
					printRecords(out, result.Records)
				}
				printExportSummary(out, result)
				return nil
			}())
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the summary line")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Upload an existing interchange CSV through the Letterboxd import page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd, (*config.Config).ValidateImport)
			if err != nil {
				return err
			}
			return s.finish("import", func() error {
				lock, err := acquireRunLock(s)
				if err != nil {
					return err
				}
				defer releaseRunLock(s, lock)

				outcome, err := ctx.runImport(s)
				printImportOutcome(cmd.OutOrStdout(), outcome, err)
				return err
			}())
		},
	}
}

func runExport(s *session) (history.Result, error) {
	collector := history.NewCollector(jellyfin.NewConfiguredClient(s.cfg), nil, s.logger)
	return collector.Export(s.ctx, s.cfg.Jellyfin.User, s.cfg.Paths.CSVPath)
}

func (c *commandContext) runImport(s *session) (letterboxd.Outcome, error) {
	importer := letterboxd.NewImporter(
		c.newLauncher(s.logger),
		letterboxd.SettingsFromConfig(s.cfg),
		nil,
		s.logger,
	)
	creds := letterboxd.Credentials{
		Username: s.cfg.Letterboxd.Username,
		Password: s.cfg.Letterboxd.Password,
	}
	return importer.Run(s.ctx, creds, s.cfg.Paths.CSVPath)
}

func acquireRunLock(s *session) (*runlock.Lock, error) {
	lock, err := runlock.Acquire(s.cfg.Paths.CSVPath)
	if err != nil {
		return nil, err
	}
	logging.WithContext(s.ctx, s.logger).Debug("run lock acquired", logging.String("lock", lock.Path()))
	return lock, nil
}

func releaseRunLock(s *session, lock *runlock.Lock) {
	if err := lock.Release(); err != nil {
		logging.WithContext(s.ctx, s.logger).Warn("run lock release failed", logging.Error(err))
	}
}
