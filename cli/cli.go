// Package cli implements the netfield command-line interface.
//
// The default command opens the animated background in a window. Other
// commands run it in the terminal, render poster frames to PNG or GIF,
// serve rendered frames over HTTP, and manage the stored theme preference.
//
// # Configuration
//
// Settings are read from a TOML file (--config, default
// $XDG_CONFIG_HOME/netfield/config.toml), then from NETFIELD_* environment
// variables, which may also come from a .env file in the working directory.
// Flags win over both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in the command context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

const appName = "netfield"

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

// newLogger creates a logger with short timestamps
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() if none
// was attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, cfg *FileConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) *FileConfig {
	if cfg, ok := ctx.Value(configKey).(*FileConfig); ok {
		return cfg
	}
	cfg := DefaultFileConfig()
	return &cfg
}
