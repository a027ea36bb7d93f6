package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	cursorGlyphColor = color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
	cursorDotColor   = color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xcc}
)

// Cursor glyph geometry, in a 24x24 box centred on the pointer
const (
	cursorBox       = 24.0
	cursorStroke    = 2.0
	cursorDotRadius = 3.0
)

// cursorSegments is the diagonal double arrow of the glyph
var cursorSegments = [][4]float64{
	{5, 19, 19, 5},
	{5, 19, 9, 19},
	{5, 19, 5, 15},
	{19, 5, 15, 5},
	{19, 5, 19, 9},
}

// Cursor draws a custom pointer that follows the mouse. It switches itself
// off for good after the first touch input.
type Cursor struct {
	enabled bool
	touched bool
	x, y    int
	touches []ebiten.TouchID
}

// NewCursor creates the cursor overlay and hides the system cursor
func NewCursor(enabled bool) *Cursor {
	c := &Cursor{enabled: enabled}
	if enabled {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	return c
}

// Active reports whether the overlay is drawn
func (c *Cursor) Active() bool {
	return c.enabled && !c.touched
}

// Update tracks the pointer
func (c *Cursor) Update() {
	if !c.Active() {
		return
	}
	c.touches = inpututil.AppendJustPressedTouchIDs(c.touches[:0])
	if len(c.touches) > 0 {
		c.touched = true
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	c.x, c.y = ebiten.CursorPosition()
}

// Draw paints the cursor glyph
func (c *Cursor) Draw(screen *ebiten.Image) {
	if !c.Active() {
		return
	}
	cx, cy := float32(c.x), float32(c.y)
	vector.DrawFilledCircle(screen, cx, cy, cursorDotRadius, cursorDotColor, true)

	ox := cx - cursorBox/2
	oy := cy - cursorBox/2
	for _, s := range cursorSegments {
		vector.StrokeLine(screen,
			ox+float32(s[0]), oy+float32(s[1]),
			ox+float32(s[2]), oy+float32(s[3]),
			cursorStroke, cursorGlyphColor, true)
	}
}
