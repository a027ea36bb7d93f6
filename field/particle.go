package field

import "image/color"

// Particle is a single drifting node of the background
type Particle struct {
	X, Y   float64 // position in surface pixels
	DX, DY float64 // velocity in pixels per frame
	Radius float64
}

// Advance moves the particle one frame, reflecting off the surface edges.
// The bounds are checked against the position the step would produce and the
// velocity is flipped before moving, so the particle never leaves
// [0, width] x [0, height].
func (p *Particle) Advance(width, height float64) {
	if nx := p.X + p.DX; nx > width || nx < 0 {
		p.DX = -p.DX
	}
	if ny := p.Y + p.DY; ny > height || ny < 0 {
		p.DY = -p.DY
	}
	// A surface narrower than one step can still be overshot after the flip.
	p.X = clamp(p.X+p.DX, 0, width)
	p.Y = clamp(p.Y+p.DY, 0, height)
}

// Render draws the particle as a filled circle
func (p *Particle) Render(s Surface, c color.Color) {
	s.FillCircle(p.X, p.Y, p.Radius, c)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
