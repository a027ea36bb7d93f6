package field

import "image/color"

// Surface is the drawing region a field paints into.
// Coordinates are in surface pixels with the origin at the top left.
type Surface interface {
	// Size returns the surface dimensions in pixels
	Size() (width, height int)

	// Clear fills the whole surface with c
	Clear(c color.Color)

	// FillCircle draws a filled circle centred on (cx, cy)
	FillCircle(cx, cy, radius float64, c color.Color)

	// StrokeLine draws a straight line of the given width
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}
