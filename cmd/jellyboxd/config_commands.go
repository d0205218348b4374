package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"jellyboxd/internal/config"
	"jellyboxd/internal/services"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the jellyboxd configuration file",
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented sample configuration",
		Long:  "Write a commented sample configuration to path, or to ~/.config/jellyboxd/config.toml when no path is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := sampleTarget(args)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "init", "", err)
			}
			if err := config.CreateSample(target, overwrite); err != nil {
				if errors.Is(err, fs.ErrExist) {
					return services.Wrap(services.ErrPrecondition, "config", "init",
						target+" already exists (use --overwrite to replace it)", nil)
				}
				return services.Wrap(services.ErrConfiguration, "config", "init", "", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Fill in the [jellyfin] and [letterboxd] credentials, then run: jellyboxd --config %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func sampleTarget(args []string) (string, error) {
	if len(args) == 1 {
		if arg := strings.TrimSpace(args[0]); arg != "" {
			return config.ExpandPath(arg)
		}
	}
	return config.DefaultConfigPath()
}
