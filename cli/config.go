package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read on top of the config file
const (
	envTheme    = "NETFIELD_THEME"
	envPrefs    = "NETFIELD_PREFS"
	envAddr     = "NETFIELD_ADDR"
	envSeed     = "NETFIELD_SEED"
	envProfiles = "NETFIELD_PROFILES"
)

// FileConfig is the on-disk configuration
type FileConfig struct {
	Window  WindowConfig  `toml:"window"`
	Theme   ThemeConfig   `toml:"theme"`
	Server  ServerConfig  `toml:"server"`
	Profile ProfileConfig `toml:"profile"`
}

// WindowConfig configures the window host
type WindowConfig struct {
	Width      int   `toml:"width"`
	Height     int   `toml:"height"`
	Fullscreen bool  `toml:"fullscreen"`
	Cursor     bool  `toml:"cursor"`
	Debug      bool  `toml:"debug"`
	Seed       int64 `toml:"seed"`
}

// ThemeConfig configures theme resolution. Default is "light", "dark" or
// "system"; a stored preference still wins over it.
type ThemeConfig struct {
	Default  string `toml:"default"`
	PrefFile string `toml:"pref_file"`

	override bool // set by --theme
}

// ServerConfig configures the snapshot server
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ProfileConfig configures the frame watcher
type ProfileConfig struct {
	Dir    string   `toml:"dir"`
	Budget duration `toml:"budget"`
}

// duration decodes "16ms" style strings
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultFileConfig returns the built-in settings
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Window: WindowConfig{
			Width:  1400,
			Height: 900,
			Cursor: true,
		},
		Theme: ThemeConfig{
			Default: "system",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Profile: ProfileConfig{
			Budget: duration{time.Second / 60},
		},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/netfield/config.toml
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// LoadConfig reads path over the defaults. A missing file is not an error
// unless the path was given explicitly.
func LoadConfig(path string, explicit bool) (FileConfig, error) {
	cfg := DefaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// loadDotEnv loads .env into the process environment if present
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg from NETFIELD_* variables
func applyEnv(cfg *FileConfig, getenv func(string) string) error {
	if v := getenv(envTheme); v != "" {
		cfg.Theme.Default = v
	}
	if v := getenv(envPrefs); v != "" {
		cfg.Theme.PrefFile = v
	}
	if v := getenv(envAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv(envProfiles); v != "" {
		cfg.Profile.Dir = v
	}
	if v := getenv(envSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envSeed, err)
		}
		cfg.Window.Seed = seed
	}
	return nil
}
