package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"netfield/theme"
)

func TestResolveTheme(t *testing.T) {
	quiet := log.New(io.Discard)
	dark := func() bool { return true }
	light := func() bool { return false }

	tests := []struct {
		name   string
		tc     ThemeConfig
		stored string // empty for no preference file
		system func() bool
		want   theme.Theme
	}{
		{"system dark", ThemeConfig{Default: "system"}, "", dark, theme.Dark},
		{"system light", ThemeConfig{Default: "system"}, "", light, theme.Light},
		{"empty default follows system", ThemeConfig{}, "", light, theme.Light},
		{"configured default", ThemeConfig{Default: "light"}, "", dark, theme.Light},
		{"stored wins over system", ThemeConfig{Default: "system"}, "light", dark, theme.Light},
		{"stored wins over default", ThemeConfig{Default: "light"}, "dark", light, theme.Dark},
		{"flag wins over stored", ThemeConfig{Default: "light", override: true}, "dark", dark, theme.Light},
		{"broken preference ignored", ThemeConfig{}, "sepia", light, theme.Light},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if tt.stored != "" {
				if err := os.WriteFile(path, []byte("theme = \""+tt.stored+"\"\n"), 0644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := resolveTheme(tt.tc, theme.NewPrefStore(path), tt.system, quiet)
			if err != nil {
				t.Fatalf("resolveTheme: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTheme = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := resolveTheme(ThemeConfig{Default: "neon"}, theme.NewPrefStore(filepath.Join(t.TempDir(), "p.toml")), dark, quiet); err == nil {
		t.Error("unknown default accepted")
	}
}

func TestOpenSignalPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	cfg := DefaultFileConfig()
	cfg.Theme.Default = "dark"
	cfg.Theme.PrefFile = path
	ctx := withConfig(withLogger(context.Background(), log.New(io.Discard)), &cfg)

	sig, stop, err := openSignal(ctx)
	if err != nil {
		t.Fatalf("openSignal: %v", err)
	}
	if sig.Get() != theme.Dark {
		t.Fatalf("theme = %v, want dark", sig.Get())
	}
	sig.Toggle()
	stop()

	got, ok, err := theme.NewPrefStore(path).Load()
	if err != nil || !ok || got != theme.Light {
		t.Errorf("stored = %v, %v, %v; want light", got, ok, err)
	}
}

func TestThemeCommands(t *testing.T) {
	dir := t.TempDir()
	prefs := filepath.Join(dir, "prefs.toml")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(envPrefs, prefs)
	t.Setenv(envTheme, "")

	run := func(args ...string) {
		t.Helper()
		root := newRootCmd()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	stored := func() theme.Theme {
		t.Helper()
		got, ok, err := theme.NewPrefStore(prefs).Load()
		if err != nil || !ok {
			t.Fatalf("no stored theme: %v", err)
		}
		return got
	}

	run("theme", "set", "light")
	if stored() != theme.Light {
		t.Fatal("set light not stored")
	}
	run("theme", "toggle")
	if stored() != theme.Dark {
		t.Fatal("toggle not stored")
	}
	run("theme", "get")
	run("theme", "clear")
	if _, ok, _ := theme.NewPrefStore(prefs).Load(); ok {
		t.Error("clear left a preference")
	}

	root := newRootCmd()
	root.SetArgs([]string{"theme", "set", "sepia"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("set sepia accepted")
	}
}

func TestConfigFromContextDefaults(t *testing.T) {
	cfg := configFromContext(context.Background())
	if *cfg != DefaultFileConfig() {
		t.Errorf("config = %+v", *cfg)
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("nil default logger")
	}
}
