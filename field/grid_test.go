package field

import (
	"image/color"
	"math/rand"
	"testing"
)

var testColor = color.NRGBA{R: 1, G: 2, B: 3, A: 255}

func TestCell(t *testing.T) {
	c := NewCell(1)
	c.Add(4)
	c.Add(7)
	if got := c.Members(); len(got) != 2 || got[0] != 4 || got[1] != 7 {
		t.Fatalf("Members = %v, want [4 7]", got)
	}
	c.Clear()
	if len(c.Members()) != 0 {
		t.Fatalf("Members after Clear = %v", c.Members())
	}
	c.Add(9)
	if got := c.Members(); len(got) != 1 || got[0] != 9 {
		t.Errorf("Members after reuse = %v, want [9]", got)
	}
}

func TestGridCellOf(t *testing.T) {
	g := NewGrid()
	g.Reset(100, 50, 10)

	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 0, 0},
		{9.99, 9.99, 0, 0},
		{10, 10, 1, 1},
		{100, 50, 10, 5},
		{-3, 200, 0, 5},
	}
	for _, tt := range tests {
		cx, cy := g.CellOf(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("CellOf(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
	if g.GetCell(11, 0) != nil || g.GetCell(0, -1) != nil {
		t.Error("GetCell outside the grid returned a cell")
	}
}

func collect(each func(func(a, b int, d2 float64))) map[[2]int]float64 {
	out := map[[2]int]float64{}
	each(func(a, b int, d2 float64) {
		out[[2]int{a, b}] = d2
	})
	return out
}

func TestGridMatchesScan(t *testing.T) {
	sizes := []struct {
		w, h int
		seed int64
	}{
		{1400, 900, 1},
		{1920, 1080, 2},
		{400, 2000, 3},
		{3000, 300, 4},
	}

	for _, sz := range sizes {
		cfg := DefaultConfig()
		f := New(cfg)
		f.Initialize(sz.w, sz.h, rand.New(rand.NewSource(sz.seed)))
		// scatter a few on the far edges to exercise the clamped cells
		ps := f.Particles()
		ps[0].X, ps[0].Y = float64(sz.w), float64(sz.h)
		ps[1].X, ps[1].Y = 0, float64(sz.h)

		limitSq := f.Threshold() * f.Threshold()
		scan := collect(func(fn func(a, b int, d2 float64)) { forEachPairScan(ps, limitSq, fn) })

		g := NewGrid()
		g.Reset(float64(sz.w), float64(sz.h), f.Threshold())
		for i := range ps {
			g.Insert(i, ps[i].X, ps[i].Y)
		}
		grid := collect(func(fn func(a, b int, d2 float64)) { g.ForEachPair(ps, limitSq, fn) })

		if len(grid) != len(scan) {
			t.Errorf("%dx%d: grid found %d pairs, scan %d", sz.w, sz.h, len(grid), len(scan))
		}
		for k, d2 := range scan {
			if got, ok := grid[k]; !ok || got != d2 {
				t.Errorf("%dx%d: pair %v missing from grid", sz.w, sz.h, k)
			}
		}
	}
}

func TestFieldUsesGridAboveMinimum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridMinParticles = 10
	f := New(cfg)
	f.Initialize(1400, 900, rand.New(rand.NewSource(5)))

	cfgScan := cfg
	cfgScan.GridMinParticles = 0
	s := New(cfgScan)
	s.Initialize(1400, 900, rand.New(rand.NewSource(5)))

	grid := collect(f.ForEachLink)
	scan := collect(s.ForEachLink)
	if len(grid) != len(scan) {
		t.Fatalf("grid found %d links, scan %d", len(grid), len(scan))
	}
	for k := range scan {
		if _, ok := grid[k]; !ok {
			t.Errorf("link %v missing from grid", k)
		}
	}
}
