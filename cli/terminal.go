package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"netfield/loop"
	"netfield/term"
)

func newTerminalCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Run the background in the terminal",
		Long: `Run the background on a character grid, one cell per 8x16 pixels.

Keys: t toggles the theme, d the stats line, q or Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sig, stop, err := openSignal(ctx)
			if err != nil {
				return err
			}
			defer stop()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}

			lcfg := loop.DefaultConfig()
			lcfg.Seed = configFromContext(ctx).Window.Seed
			if cmd.Flags().Changed("seed") {
				lcfg.Seed = seed
			}
			return term.NewHost(screen, sig, logger.With("component", "terminal")).Run(ctx, lcfg)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "particle seed (0 seeds from the clock)")
	return cmd
}
