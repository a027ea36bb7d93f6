// Package field implements the particle network drawn behind the site: a
// population of slowly drifting particles sized to the surface area, and the
// proximity links between them.
package field

import (
	"math/rand"

	"netfield/theme"
)

// Field owns the particles of one drawing surface
type Field struct {
	cfg       Config
	particles []Particle
	width     float64
	height    float64
	threshold float64
	grid      *Grid
}

// New creates an empty field with the given tunables
func New(cfg Config) *Field {
	return &Field{
		cfg:  cfg,
		grid: NewGrid(),
	}
}

// Config returns the field tunables
func (f *Field) Config() Config {
	return f.cfg
}

// Initialize discards every particle and populates the field for a surface of
// width x height. It returns false and leaves the field empty when either
// dimension is not positive.
func (f *Field) Initialize(width, height int, rng *rand.Rand) bool {
	f.particles = f.particles[:0]
	if width <= 0 || height <= 0 {
		f.width, f.height, f.threshold = 0, 0, 0
		return false
	}

	f.width = float64(width)
	f.height = float64(height)
	f.threshold = Threshold(f.width, f.height, f.cfg)

	count := Count(width, height, f.cfg)
	if cap(f.particles) < count {
		f.particles = make([]Particle, 0, count)
	}
	for i := 0; i < count; i++ {
		f.particles = append(f.particles, Particle{
			X:      rng.Float64() * f.width,
			Y:      rng.Float64() * f.height,
			DX:     (rng.Float64()*2 - 1) * f.cfg.MaxSpeed,
			DY:     (rng.Float64()*2 - 1) * f.cfg.MaxSpeed,
			Radius: f.cfg.RadiusMin + rng.Float64()*f.cfg.RadiusSpread,
		})
	}
	return true
}

// Len returns the number of particles
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the particles in insertion order. The slice is owned by
// the field and must not be retained across Initialize.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Size returns the surface dimensions the field was initialised for
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Threshold returns the current link distance
func (f *Field) Threshold() float64 {
	return f.threshold
}

// Tick advances and draws every particle
func (f *Field) Tick(s Surface, pal *theme.Palette) {
	for i := range f.particles {
		p := &f.particles[i]
		p.Advance(f.width, f.height)
		p.Render(s, pal.Particle)
	}
}

// ForEachLink calls fn for every unordered pair (a < b) closer than the link
// distance, with their squared distance.
func (f *Field) ForEachLink(fn func(a, b int, d2 float64)) {
	limitSq := f.threshold * f.threshold
	if limitSq <= 0 || len(f.particles) < 2 {
		return
	}

	if f.cfg.GridMinParticles > 0 && len(f.particles) > f.cfg.GridMinParticles {
		f.grid.Reset(f.width, f.height, f.threshold)
		for i := range f.particles {
			f.grid.Insert(i, f.particles[i].X, f.particles[i].Y)
		}
		f.grid.ForEachPair(f.particles, limitSq, fn)
		return
	}

	forEachPairScan(f.particles, limitSq, fn)
}

// forEachPairScan is the plain O(n^2) pairwise scan
func forEachPairScan(ps []Particle, limitSq float64, fn func(a, b int, d2 float64)) {
	for a := 0; a < len(ps); a++ {
		for b := a + 1; b < len(ps); b++ {
			dx := ps[a].X - ps[b].X
			dy := ps[a].Y - ps[b].Y
			d2 := dx*dx + dy*dy
			if d2 < limitSq {
				fn(a, b, d2)
			}
		}
	}
}

// LinkNeighbors strokes a line between every pair within the link distance,
// fading with distance. It returns the number of links drawn.
func (f *Field) LinkNeighbors(s Surface, pal *theme.Palette) int {
	links := 0
	f.ForEachLink(func(a, b int, d2 float64) {
		pa, pb := &f.particles[a], &f.particles[b]
		alpha := Opacity(d2, f.cfg.OpacityFalloff)
		s.StrokeLine(pa.X, pa.Y, pb.X, pb.Y, f.cfg.LineWidth, pal.LineAlpha(alpha))
		links++
	})
	return links
}
