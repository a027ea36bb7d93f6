package game

import "time"

// Config holds window host configuration
type Config struct {
	// ScreenWidth is the initial window width in pixels
	ScreenWidth int

	// ScreenHeight is the initial window height in pixels
	ScreenHeight int

	// Title is the window title
	Title string

	// Fullscreen starts the window in fullscreen mode
	Fullscreen bool

	// Cursor enables the custom cursor overlay
	Cursor bool

	// ShowDebug starts with the stats overlay visible
	ShowDebug bool

	// Seed makes particle placement reproducible; zero seeds from the clock
	Seed int64

	// ProfilesDir receives CPU profiles on sustained slow frames; empty disables
	ProfilesDir string

	// FrameBudget is the frame duration counted as slow
	FrameBudget time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1400,
		ScreenHeight: 900,
		Title:        "netfield",
		Cursor:       true,
		FrameBudget:  time.Second / 60,
	}
}
