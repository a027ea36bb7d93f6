package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"netfield/theme"
)

// prefStore opens the preference file named by the config, or the default one
func prefStore(tc ThemeConfig) (*theme.PrefStore, error) {
	path := tc.PrefFile
	if path == "" {
		p, err := theme.DefaultPrefPath()
		if err != nil {
			return nil, fmt.Errorf("preference path: %w", err)
		}
		path = p
	}
	return theme.NewPrefStore(path), nil
}

// resolveTheme picks the starting theme. --theme wins, then a stored
// preference, then the configured default, then the terminal background.
func resolveTheme(tc ThemeConfig, store *theme.PrefStore, systemDark func() bool, logger *log.Logger) (theme.Theme, error) {
	if tc.override {
		return theme.Parse(tc.Default)
	}

	stored, ok, err := store.Load()
	if err != nil {
		logger.Warn("ignoring theme preference", "err", err)
		ok = false
	}
	if ok {
		return stored, nil
	}

	switch tc.Default {
	case "", "system":
		return theme.Resolve(stored, false, systemDark()), nil
	default:
		return theme.Parse(tc.Default)
	}
}

// openSignal resolves the starting theme and saves later changes to the
// preference file until stop is called.
func openSignal(ctx context.Context) (sig *theme.Signal, stop func(), err error) {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	store, err := prefStore(cfg.Theme)
	if err != nil {
		return nil, nil, err
	}
	t, err := resolveTheme(cfg.Theme, store, lipgloss.HasDarkBackground, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("theme resolved", "theme", t)

	sig = theme.NewSignal(t)
	return sig, theme.Persist(sig, store, logger), nil
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the stored theme preference",
	}
	cmd.AddCommand(newThemeGetCmd())
	cmd.AddCommand(newThemeSetCmd())
	cmd.AddCommand(newThemeToggleCmd())
	cmd.AddCommand(newThemeClearCmd())
	return cmd
}

func newThemeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the theme the background would start with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			store, err := prefStore(cfg.Theme)
			if err != nil {
				return err
			}
			t, err := resolveTheme(cfg.Theme, store, lipgloss.HasDarkBackground, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			_, stored, _ := store.Load()
			source := "system"
			if stored {
				source = store.Path()
			}
			printKeyValue("theme", t.String())
			printKeyValue("source", source)
			return nil
		},
	}
}

func newThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Store a theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := theme.Parse(args[0])
			if err != nil {
				return err
			}
			store, err := prefStore(configFromContext(cmd.Context()).Theme)
			if err != nil {
				return err
			}
			if err := store.Save(t); err != nil {
				return err
			}
			printSuccess("theme set to %s", t)
			return nil
		},
	}
}

func newThemeToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Flip the stored theme preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, stop, err := openSignal(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()
			printSuccess("theme set to %s", sig.Toggle())
			return nil
		},
	}
}

func newThemeClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored preference and follow the system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prefStore(configFromContext(cmd.Context()).Theme)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			printSuccess("theme preference cleared")
			return nil
		},
	}
}

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the colours of both themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range []theme.Theme{theme.Light, theme.Dark} {
				p := theme.PaletteFor(t)
				fmt.Println(StyleTitle.Render(t.String()))
				printSwatch("background", theme.Hex(p.Background))
				printSwatch("particle", theme.Hex(p.Particle))
				printSwatch("line", theme.Hex(p.Line))
			}
			return nil
		},
	}
}
