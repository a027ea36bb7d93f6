package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer is the offscreen drawing surface the background paints into.
// Draw composites it onto the screen once per frame.
type Renderer struct {
	image *ebiten.Image
}

// NewRenderer allocates an offscreen image of the given size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		image: ebiten.NewImage(width, height),
	}
}

// Image returns the offscreen image
func (r *Renderer) Image() *ebiten.Image {
	return r.image
}

// Size returns the surface dimensions
func (r *Renderer) Size() (int, int) {
	b := r.image.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the surface
func (r *Renderer) Clear(c color.Color) {
	r.image.Fill(c)
}

// FillCircle draws an anti-aliased filled circle
func (r *Renderer) FillCircle(cx, cy, radius float64, c color.Color) {
	vector.DrawFilledCircle(r.image, float32(cx), float32(cy), float32(radius), c, true)
}

// StrokeLine draws an anti-aliased line
func (r *Renderer) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(r.image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// Dispose releases the GPU image
func (r *Renderer) Dispose() {
	r.image.Deallocate()
}
