package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"jellyboxd/internal/config"
	"jellyboxd/internal/letterboxd"
	"jellyboxd/internal/letterboxd/chromebrowser"
	"jellyboxd/internal/logging"
	"jellyboxd/internal/services"
)

// launcherFactory builds the browser launcher for a run.
type launcherFactory func(logger *slog.Logger) letterboxd.Launcher

func defaultLauncher(logger *slog.Logger) letterboxd.Launcher {
	return chromebrowser.NewLauncher(logger)
}

type runFlags struct {
	configPath     string
	jellyfinURL    string
	jellyfinUser   string
	jellyfinAPIKey string
	letterboxdUser string
	letterboxdPass string
	csvPath        string
	headless       bool
}

type commandContext struct {
	flags       runFlags
	newLauncher launcherFactory
}

func newCommandContext(newLauncher launcherFactory) *commandContext {
	if newLauncher == nil {
		newLauncher = defaultLauncher
	}
	return &commandContext{newLauncher: newLauncher}
}

func (c *commandContext) bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&c.flags.configPath, "config", "c", "", "Configuration file path")
	f.StringVar(&c.flags.jellyfinURL, "jellyfin-url", "", "Jellyfin server URL")
	f.StringVar(&c.flags.jellyfinUser, "jellyfin-user", "", "Jellyfin username whose history is exported")
	f.StringVar(&c.flags.jellyfinAPIKey, "jellyfin-api-key", "", "Jellyfin API key")
	f.StringVar(&c.flags.letterboxdUser, "letterboxd-user", "", "Letterboxd username")
	f.StringVar(&c.flags.letterboxdPass, "letterboxd-pass", "", "Letterboxd password")
	f.StringVar(&c.flags.csvPath, "csv-path", config.DefaultCSVPath, "Interchange CSV path")
	f.BoolVar(&c.flags.headless, "headless", false, "Run the browser without a visible window")
}

// loadConfig layers flags the user actually set over the config file named
// by --config, if any. It also returns the applied file path or "".
func (c *commandContext) loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, applied, _, err := config.Load(strings.TrimSpace(c.flags.configPath))
	if err != nil {
		return nil, "", services.Wrap(services.ErrConfiguration, "config", "load", "", err)
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	set("jellyfin-url", &cfg.Jellyfin.URL, c.flags.jellyfinURL)
	set("jellyfin-user", &cfg.Jellyfin.User, c.flags.jellyfinUser)
	set("jellyfin-api-key", &cfg.Jellyfin.APIKey, c.flags.jellyfinAPIKey)
	set("letterboxd-user", &cfg.Letterboxd.Username, c.flags.letterboxdUser)
	set("letterboxd-pass", &cfg.Letterboxd.Password, c.flags.letterboxdPass)
	set("csv-path", &cfg.Paths.CSVPath, c.flags.csvPath)
	if flags.Changed("headless") {
		cfg.Letterboxd.Headless = c.flags.headless
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	return cfg, applied, nil
}

// session is everything one command invocation shares.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
}

func (c *commandContext) openSession(cmd *cobra.Command, validate func(*config.Config) error) (*session, error) {
	cfg, applied, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "logging", "", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithRunID(ctx, uuid.NewString())
	if applied != "" {
		logging.WithContext(ctx, logger).Info("configuration file applied", logging.String("path", applied))
	}
	logging.WithContext(ctx, logger).Debug("configuration resolved",
		logging.String("csv_path", cfg.Paths.CSVPath),
		logging.String("jellyfin_url", cfg.Jellyfin.URL),
		logging.Bool("headless", cfg.Letterboxd.Headless),
	)
	return &session{ctx: ctx, cfg: cfg, logger: logger}, nil
}

// finish logs how a run ended; err is returned unchanged.
func (s *session) finish(command string, err error) error {
	logger := logging.WithContext(s.ctx, s.logger)
	if err != nil {
		logger.Error(command+" failed", logging.Category(err), logging.Error(err))
		return err
	}
	logger.Info(command + " succeeded")
	return nil
}
