package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version shown by --version
func SetVersion(v string) {
	version = v
}

// Execute runs the netfield CLI. Commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
		themeFlag  string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "netfield draws an animated particle network background",
		Long:         `netfield animates drifting particles joined by distance-faded lines. It runs in a window, in the terminal, as a PNG/GIF renderer or as an HTTP service.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			if err := loadDotEnv(".env"); err != nil {
				return err
			}

			explicit := configPath != ""
			path := configPath
			if !explicit {
				if p, err := defaultConfigPath(); err == nil {
					path = p
				}
			}
			cfg, err := LoadConfig(path, explicit)
			if err != nil {
				return err
			}
			if err := applyEnv(&cfg, os.Getenv); err != nil {
				return fmt.Errorf("environment: %w", err)
			}
			if themeFlag != "" {
				cfg.Theme.Default = themeFlag
				cfg.Theme.override = true
			}
			logger.Debug("config loaded", "path", path)

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, &cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&themeFlag, "theme", "", "force the theme (light or dark) instead of the stored preference")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/netfield/config.toml)")

	window := newWindowCmd()
	root.RunE = window.RunE
	root.Flags().AddFlagSet(window.Flags())

	root.AddCommand(window)
	root.AddCommand(newTerminalCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newThemeCmd())
	root.AddCommand(newPaletteCmd())

	return root
}
