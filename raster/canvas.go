// Package raster renders the background without a display: a Surface over an
// in-memory RGBA image, a Host that is driven frame by frame, and PNG/GIF
// encoders for the result.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments bounds the polygon used for particle circles
const (
	minCircleSegments = 8
	maxCircleSegments = 48
)

// Canvas is an anti-aliased Surface backed by *image.RGBA
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewCanvas creates a transparent canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the canvas dimensions
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the canvas with col
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillCircle draws a filled circle as a polygon
func (c *Canvas) FillCircle(cx, cy, radius float64, col color.Color) {
	if radius <= 0 {
		return
	}
	steps := int(radius*8 + minCircleSegments)
	steps = min(steps, maxCircleSegments)

	c.z.MoveTo(float32(cx+radius), float32(cy))
	for i := 1; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		c.z.LineTo(float32(cx+math.Cos(angle)*radius), float32(cy+math.Sin(angle)*radius))
	}
	c.z.ClosePath()
	c.fill(col)
}

// StrokeLine draws a line as a quad of the given width
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// unit normal scaled to half the width
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	c.z.MoveTo(float32(x0+nx), float32(y0+ny))
	c.z.LineTo(float32(x1+nx), float32(y1+ny))
	c.z.LineTo(float32(x1-nx), float32(y1-ny))
	c.z.LineTo(float32(x0-nx), float32(y0-ny))
	c.z.ClosePath()
	c.fill(col)
}

// fill composites the accumulated path over the image and resets the path
func (c *Canvas) fill(col color.Color) {
	c.z.DrawOp = draw.Over
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}
