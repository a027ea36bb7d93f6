// Package theme holds the light/dark theme signal shared by the page and the
// background renderer, the palettes bound to each theme value, and the stored
// theme preference.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTheme is returned when a theme name is neither light nor dark
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is the two-valued theme signal. The zero value is Dark.
type Theme int

const (
	Dark Theme = iota
	Light
)

// String returns the theme name
func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Parse converts a theme name to a Theme
func Parse(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	}
	return Dark, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// MarshalText implements encoding.TextMarshaler
func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Theme) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
