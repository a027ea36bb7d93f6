package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"netfield/theme"
)

// Each terminal cell stands for a block of virtual pixels, so the density
// and link distance tunables keep their meaning on a character grid.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	particleRune = '•'
	linkRune     = '·'
	blankRune    = ' '

	particleWeight = 2.0 // particles always win over links
)

type cell struct {
	r      rune
	fg     color.NRGBA
	weight float64
}

// CellSurface rasterises the background onto a grid of terminal cells.
// Links are blended against the background because terminals have no alpha.
type CellSurface struct {
	cols, rows int
	bg         color.NRGBA
	cells      []cell
}

// NewCellSurface creates a surface covering cols x rows cells
func NewCellSurface(cols, rows int) *CellSurface {
	return &CellSurface{
		cols:  cols,
		rows:  rows,
		cells: make([]cell, cols*rows),
	}
}

// Size returns the surface size in virtual pixels
func (s *CellSurface) Size() (int, int) {
	return s.cols * CellWidth, s.rows * CellHeight
}

// Cells returns the grid dimensions
func (s *CellSurface) Cells() (int, int) {
	return s.cols, s.rows
}

// Clear blanks every cell
func (s *CellSurface) Clear(c color.Color) {
	s.bg = toNRGBA(c)
	for i := range s.cells {
		s.cells[i] = cell{r: blankRune}
	}
}

// FillCircle marks the cell under the centre
func (s *CellSurface) FillCircle(cx, cy, _ float64, c color.Color) {
	x, y := s.cellOf(cx, cy)
	s.put(x, y, particleRune, toNRGBA(c), particleWeight)
}

// StrokeLine marks the cells along the line, fainter links yielding to
// stronger ones
func (s *CellSurface) StrokeLine(x0, y0, x1, y1, _ float64, c color.Color) {
	col := toNRGBA(c)
	alpha := float64(col.A) / 255
	if alpha <= 0 {
		return
	}
	fg := theme.Blend(s.bg, col, alpha)

	cx0, cy0 := s.cellOf(x0, y0)
	cx1, cy1 := s.cellOf(x1, y1)
	steps := max(abs(cx1-cx0), abs(cy1-cy0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := cx0 + int(math.Round(t*float64(cx1-cx0)))
		y := cy0 + int(math.Round(t*float64(cy1-cy0)))
		s.put(x, y, linkRune, fg, alpha)
	}
}

// At returns the rune and colour of a cell
func (s *CellSurface) At(x, y int) (rune, color.NRGBA) {
	if x < 0 || x >= s.cols || y < 0 || y >= s.rows {
		return blankRune, s.bg
	}
	c := s.cells[y*s.cols+x]
	return c.r, c.fg
}

// Flush copies the grid to the screen; cells outside the screen are dropped
func (s *CellSurface) Flush(screen tcell.Screen) {
	bg := tcellColor(s.bg)
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			c := s.cells[y*s.cols+x]
			style := tcell.StyleDefault.Background(bg).Foreground(tcellColor(c.fg))
			screen.SetContent(x, y, c.r, nil, style)
		}
	}
}

func (s *CellSurface) cellOf(px, py float64) (int, int) {
	x := int(px / CellWidth)
	y := int(py / CellHeight)
	return max(0, min(x, s.cols-1)), max(0, min(y, s.rows-1))
}

func (s *CellSurface) put(x, y int, r rune, fg color.NRGBA, weight float64) {
	if s.cols == 0 || s.rows == 0 {
		return
	}
	c := &s.cells[y*s.cols+x]
	if c.weight >= weight {
		return
	}
	*c = cell{r: r, fg: fg, weight: weight}
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
