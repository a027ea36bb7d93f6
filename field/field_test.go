package field

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"netfield/theme"
)

type circle struct {
	x, y, r float64
	c       color.Color
}

type line struct {
	x0, y0, x1, y1, w float64
	c                 color.NRGBA
}

// recorder is a Surface that remembers every draw call
type recorder struct {
	w, h    int
	clears  int
	circles []circle
	lines   []line
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Clear(color.Color) {
	r.clears++
	r.circles = nil
	r.lines = nil
}

func (r *recorder) FillCircle(x, y, rad float64, c color.Color) {
	r.circles = append(r.circles, circle{x, y, rad, c})
}
func (r *recorder) StrokeLine(x0, y0, x1, y1, w float64, c color.Color) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, w, color.NRGBAModel.Convert(c).(color.NRGBA)})
}

func TestCount(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		w, h int
		want int
	}{
		{"desktop", 1400, 900, 105},
		{"exact multiple", 120, 100, 1},
		{"below one particle", 100, 100, 0},
		{"zero width", 0, 900, 0},
		{"negative height", 1400, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.w, tt.h, cfg); got != tt.want {
				t.Errorf("Count(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
			}
		})
	}

	cfg.MaxParticles = 50
	if got := Count(1400, 900, cfg); got != 50 {
		t.Errorf("capped Count = %d, want 50", got)
	}
}

func TestThreshold(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := Threshold(1400, 900, cfg), 900.0/7; math.Abs(got-want) > 1e-9 {
		t.Errorf("Threshold = %v, want %v", got, want)
	}
	if got := Threshold(0, 900, cfg); got != 0 {
		t.Errorf("Threshold(0, 900) = %v, want 0", got)
	}
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		d2   float64
		want float64
	}{
		{0, 1},
		{100, 0.995},
		{10000, 0.5},
		{20000, 0},
		{30000, 0},
	}
	for _, tt := range tests {
		if got := Opacity(tt.d2, DefaultOpacityFalloff); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Opacity(%v) = %v, want %v", tt.d2, got, tt.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	f := New(DefaultConfig())
	if !f.Initialize(1400, 900, rand.New(rand.NewSource(1))) {
		t.Fatal("Initialize(1400, 900) = false")
	}
	if f.Len() != 105 {
		t.Fatalf("Len = %d, want 105", f.Len())
	}
	for i, p := range f.Particles() {
		if p.X < 0 || p.X > 1400 || p.Y < 0 || p.Y > 900 {
			t.Errorf("particle %d at (%v, %v) outside surface", i, p.X, p.Y)
		}
		if math.Abs(p.DX) > DefaultMaxSpeed || math.Abs(p.DY) > DefaultMaxSpeed {
			t.Errorf("particle %d velocity (%v, %v) too fast", i, p.DX, p.DY)
		}
		if p.Radius < DefaultRadiusMin || p.Radius >= DefaultRadiusMin+DefaultRadiusSpread {
			t.Errorf("particle %d radius %v out of range", i, p.Radius)
		}
	}

	// reinitialising replaces the population
	f.Initialize(600, 400, rand.New(rand.NewSource(1)))
	if f.Len() != 20 {
		t.Errorf("Len after resize = %d, want 20", f.Len())
	}
}

func TestInitializeDegenerate(t *testing.T) {
	f := New(DefaultConfig())
	f.Initialize(1400, 900, rand.New(rand.NewSource(1)))

	for _, sz := range [][2]int{{0, 0}, {0, 900}, {1400, 0}, {-5, 10}} {
		if f.Initialize(sz[0], sz[1], rand.New(rand.NewSource(1))) {
			t.Errorf("Initialize(%d, %d) = true, want false", sz[0], sz[1])
		}
		if f.Len() != 0 {
			t.Errorf("Initialize(%d, %d) left %d particles", sz[0], sz[1], f.Len())
		}
		if f.Threshold() != 0 {
			t.Errorf("Initialize(%d, %d) threshold = %v", sz[0], sz[1], f.Threshold())
		}
	}

	// an empty field draws and links nothing
	r := &recorder{}
	f.Tick(r, theme.PaletteFor(theme.Dark))
	if n := f.LinkNeighbors(r, theme.PaletteFor(theme.Dark)); n != 0 || len(r.circles) != 0 {
		t.Errorf("empty field drew %d circles and %d links", len(r.circles), n)
	}
}

func TestInitializeDeterministic(t *testing.T) {
	a, b := New(DefaultConfig()), New(DefaultConfig())
	a.Initialize(800, 600, rand.New(rand.NewSource(42)))
	b.Initialize(800, 600, rand.New(rand.NewSource(42)))
	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a.Particles()[i], b.Particles()[i])
		}
	}
}

// twoParticles returns a 1400x900 field holding exactly the given particles
func twoParticles(ps ...Particle) *Field {
	cfg := DefaultConfig()
	cfg.MaxParticles = len(ps)
	f := New(cfg)
	f.Initialize(1400, 900, rand.New(rand.NewSource(1)))
	copy(f.Particles(), ps)
	return f
}

func TestLinkNeighbors(t *testing.T) {
	pal := theme.PaletteFor(theme.Dark)

	t.Run("close pair", func(t *testing.T) {
		f := twoParticles(Particle{X: 100, Y: 100}, Particle{X: 110, Y: 100})
		r := &recorder{}
		if n := f.LinkNeighbors(r, pal); n != 1 {
			t.Fatalf("links = %d, want 1", n)
		}
		l := r.lines[0]
		if l.x0 != 100 || l.x1 != 110 {
			t.Errorf("line from %v to %v, want 100 to 110", l.x0, l.x1)
		}
		if l.w != DefaultLineWidth {
			t.Errorf("line width = %v, want %v", l.w, DefaultLineWidth)
		}
		// opacity 0.995
		if l.c.A != 254 {
			t.Errorf("line alpha = %d, want 254", l.c.A)
		}
		if l.c.R != pal.Line.R || l.c.G != pal.Line.G || l.c.B != pal.Line.B {
			t.Errorf("line colour = %v, want channels of %v", l.c, pal.Line)
		}
	})

	t.Run("beyond threshold", func(t *testing.T) {
		// threshold is 900/7, about 128.57
		f := twoParticles(Particle{X: 100, Y: 100}, Particle{X: 230, Y: 100})
		if n := f.LinkNeighbors(&recorder{}, pal); n != 0 {
			t.Errorf("links = %d, want 0", n)
		}
	})

	t.Run("just inside threshold", func(t *testing.T) {
		f := twoParticles(Particle{X: 100, Y: 100}, Particle{X: 228, Y: 100})
		if n := f.LinkNeighbors(&recorder{}, pal); n != 1 {
			t.Errorf("links = %d, want 1", n)
		}
	})

	t.Run("coincident particles", func(t *testing.T) {
		f := twoParticles(Particle{X: 50, Y: 50}, Particle{X: 50, Y: 50})
		r := &recorder{}
		if n := f.LinkNeighbors(r, pal); n != 1 {
			t.Fatalf("links = %d, want 1", n)
		}
		if r.lines[0].c.A != 255 {
			t.Errorf("alpha = %d, want 255", r.lines[0].c.A)
		}
	})
}

func TestLinkScenario(t *testing.T) {
	// 840x840: threshold 120, so a pair 10px apart is linked at 0.995
	cfg := DefaultConfig()
	cfg.MaxParticles = 2
	f := New(cfg)
	f.Initialize(840, 840, rand.New(rand.NewSource(1)))
	copy(f.Particles(), []Particle{{X: 0, Y: 0}, {X: 10, Y: 0}})

	if got := f.Threshold(); got != 120 {
		t.Fatalf("Threshold = %v, want 120", got)
	}
	var links int
	f.ForEachLink(func(a, b int, d2 float64) {
		links++
		if a != 0 || b != 1 || d2 != 100 {
			t.Errorf("link (%d, %d, %v), want (0, 1, 100)", a, b, d2)
		}
		if got := Opacity(d2, cfg.OpacityFalloff); math.Abs(got-0.995) > 1e-12 {
			t.Errorf("opacity = %v, want 0.995", got)
		}
	})
	if links != 1 {
		t.Errorf("links = %d, want 1", links)
	}
}

func TestOpacityMonotonic(t *testing.T) {
	prev := Opacity(0, DefaultOpacityFalloff)
	for d2 := 1.0; d2 < 30000; d2 += 97 {
		got := Opacity(d2, DefaultOpacityFalloff)
		if got > prev {
			t.Fatalf("Opacity(%v) = %v rose above %v", d2, got, prev)
		}
		prev = got
	}
}

func TestForEachLinkPairs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridMinParticles = 1
	f := New(cfg)
	f.Initialize(1400, 900, rand.New(rand.NewSource(7)))

	limitSq := f.Threshold() * f.Threshold()
	seen := map[[2]int]bool{}
	f.ForEachLink(func(a, b int, d2 float64) {
		if a >= b {
			t.Errorf("pair (%d, %d) not ordered", a, b)
		}
		if seen[[2]int{a, b}] {
			t.Errorf("pair (%d, %d) reported twice", a, b)
		}
		seen[[2]int{a, b}] = true
		if d2 >= limitSq {
			t.Errorf("pair (%d, %d) at d2 %v beyond %v", a, b, d2, limitSq)
		}
	})

	// every pair within range must have been reported
	ps := f.Particles()
	for a := range ps {
		for b := a + 1; b < len(ps); b++ {
			dx, dy := ps[a].X-ps[b].X, ps[a].Y-ps[b].Y
			if dx*dx+dy*dy < limitSq && !seen[[2]int{a, b}] {
				t.Errorf("pair (%d, %d) missing", a, b)
			}
		}
	}
}

func TestTick(t *testing.T) {
	f := New(DefaultConfig())
	f.Initialize(600, 400, rand.New(rand.NewSource(3)))
	pal := theme.PaletteFor(theme.Light)

	before := append([]Particle(nil), f.Particles()...)
	r := &recorder{w: 600, h: 400}
	f.Tick(r, pal)

	if len(r.circles) != f.Len() {
		t.Fatalf("drew %d circles, want %d", len(r.circles), f.Len())
	}
	for i, c := range r.circles {
		p := f.Particles()[i]
		if c.x != p.X || c.y != p.Y || c.r != p.Radius {
			t.Errorf("circle %d = %+v, want particle %+v", i, c, p)
		}
		if c.c != pal.Particle {
			t.Errorf("circle %d colour = %v, want %v", i, c.c, pal.Particle)
		}
		if p == before[i] {
			t.Errorf("particle %d did not move", i)
		}
	}
}

func TestTickStaysInBounds(t *testing.T) {
	f := New(DefaultConfig())
	f.Initialize(300, 240, rand.New(rand.NewSource(11)))
	r := &recorder{}
	pal := theme.PaletteFor(theme.Dark)
	for frame := 0; frame < 5000; frame++ {
		f.Tick(r, pal)
		for i, p := range f.Particles() {
			if p.X < 0 || p.X > 300 || p.Y < 0 || p.Y > 240 {
				t.Fatalf("frame %d: particle %d escaped to (%v, %v)", frame, i, p.X, p.Y)
			}
		}
	}
}
