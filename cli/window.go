package cli

import (
	"github.com/spf13/cobra"

	"netfield/game"
)

type windowFlags struct {
	width, height int
	fullscreen    bool
	noCursor      bool
	debug         bool
	seed          int64
}

// windowConfig merges the file config with flags the user set
func windowConfig(cmd *cobra.Command, fc *FileConfig, f windowFlags) game.Config {
	cfg := game.DefaultConfig()
	cfg.ScreenWidth = fc.Window.Width
	cfg.ScreenHeight = fc.Window.Height
	cfg.Fullscreen = fc.Window.Fullscreen
	cfg.Cursor = fc.Window.Cursor
	cfg.ShowDebug = fc.Window.Debug
	cfg.Seed = fc.Window.Seed
	cfg.ProfilesDir = fc.Profile.Dir
	if fc.Profile.Budget.Duration > 0 {
		cfg.FrameBudget = fc.Profile.Budget.Duration
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.ScreenWidth = f.width
	}
	if flags.Changed("height") {
		cfg.ScreenHeight = f.height
	}
	if flags.Changed("fullscreen") {
		cfg.Fullscreen = f.fullscreen
	}
	if flags.Changed("no-cursor") {
		cfg.Cursor = !f.noCursor
	}
	if flags.Changed("debug") {
		cfg.ShowDebug = f.debug
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg
}

func newWindowCmd() *cobra.Command {
	var f windowFlags

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the background in a desktop window (default)",
		Long: `Open the background in a resizable window.

Keys: T toggles the theme, F1 the stats overlay, F11 or Alt+Enter fullscreen, Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sig, stop, err := openSignal(ctx)
			if err != nil {
				return err
			}
			defer stop()

			cfg := windowConfig(cmd, configFromContext(ctx), f)
			logger.Debug("opening window", "width", cfg.ScreenWidth, "height", cfg.ScreenHeight, "theme", sig.Get())
			return game.Run(cfg, sig, logger.With("component", "window"))
		},
	}

	cmd.Flags().IntVar(&f.width, "width", 1400, "initial window width")
	cmd.Flags().IntVar(&f.height, "height", 900, "initial window height")
	cmd.Flags().BoolVar(&f.fullscreen, "fullscreen", false, "start fullscreen")
	cmd.Flags().BoolVar(&f.noCursor, "no-cursor", false, "keep the system cursor")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "show the stats overlay")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "particle seed (0 seeds from the clock)")
	return cmd
}
