package theme

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the set of colours bound to a theme value.
// Palettes are shared and must never be modified.
type Palette struct {
	Theme      Theme
	Background color.NRGBA
	Particle   color.NRGBA
	Line       color.NRGBA // channel triple; alpha is set per link
}

// LineAlpha returns the line colour with the given opacity in [0, 1]
func (p *Palette) LineAlpha(opacity float64) color.NRGBA {
	c := p.Line
	c.A = uint8(math.Round(clamp01(opacity) * 255))
	return c
}

// hsl builds an opaque colour from hue in degrees, saturation and lightness in [0, 1]
func hsl(h, s, l float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

var (
	lightPalette = &Palette{
		Theme:      Light,
		Background: hsl(210, 0.40, 0.98),
		Particle:   hsl(210, 0.04, 0.45),
		Line:       hsl(210, 0.04, 0.65),
	}
	darkPalette = &Palette{
		Theme:      Dark,
		Background: hsl(222.2, 0.84, 0.049),
		Particle:   hsl(215, 0.25, 0.27),
		Line:       hsl(215, 0.25, 0.35),
	}
)

// PaletteFor returns the palette of t. Unknown values get the dark palette.
func PaletteFor(t Theme) *Palette {
	if t == Light {
		return lightPalette
	}
	return darkPalette
}

// Hex formats c as #rrggbb
func Hex(c color.NRGBA) string {
	cc, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cc.Hex()
}

// Blend mixes the line colour into bg at the given opacity. Used by surfaces
// that cannot composite alpha themselves.
func Blend(bg, fg color.NRGBA, opacity float64) color.NRGBA {
	a, _ := colorful.MakeColor(color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
	b, _ := colorful.MakeColor(color.NRGBA{R: fg.R, G: fg.G, B: fg.B, A: 255})
	r, g, bl := a.BlendRgb(b, clamp01(opacity)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
