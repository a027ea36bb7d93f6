package field

// Cell is one square bucket of the link grid
type Cell struct {
	// Indices of the particles in this cell (preallocated slice)
	Indices []int

	// Current count of particles in the cell
	Count int
}

// NewCell creates a cell with preallocated index storage
func NewCell(initialCapacity int) *Cell {
	return &Cell{
		Indices: make([]int, 0, initialCapacity),
	}
}

// Add appends a particle index to the cell
func (c *Cell) Add(i int) {
	if c.Count < len(c.Indices) {
		c.Indices[c.Count] = i
	} else {
		c.Indices = append(c.Indices, i)
	}
	c.Count++
}

// Clear empties the cell but keeps its capacity
func (c *Cell) Clear() {
	c.Count = 0
}

// Members returns the particle indices in this cell
func (c *Cell) Members() []int {
	return c.Indices[:c.Count]
}

// Grid buckets particles into cells the size of the link distance, so every
// pair within that distance sits in the same or an adjacent cell.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	cells    []*Cell
}

// NewGrid creates an empty grid; call Reset before use
func NewGrid() *Grid {
	return &Grid{}
}

// Reset sizes the grid for a surface and empties every cell.
// Cells are reused across resets when the layout allows it.
func (g *Grid) Reset(width, height, cellSize float64) {
	if cellSize <= 0 || width <= 0 || height <= 0 {
		g.cols, g.rows = 0, 0
		return
	}
	g.cellSize = cellSize
	g.cols = max(1, int(width/cellSize)+1)
	g.rows = max(1, int(height/cellSize)+1)

	n := g.cols * g.rows
	for len(g.cells) < n {
		g.cells = append(g.cells, NewCell(8))
	}
	for i := 0; i < n; i++ {
		g.cells[i].Clear()
	}
}

// CellOf converts surface coordinates to cell coordinates
func (g *Grid) CellOf(x, y float64) (int, int) {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)

	// Clamp to valid cell range
	cx = max(0, min(cx, g.cols-1))
	cy = max(0, min(cy, g.rows-1))

	return cx, cy
}

// GetCell returns the cell at the given cell coordinates
func (g *Grid) GetCell(cx, cy int) *Cell {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return nil
	}
	return g.cells[cy*g.cols+cx]
}

// Insert registers particle i at (x, y)
func (g *Grid) Insert(i int, x, y float64) {
	if g.cols == 0 {
		return
	}
	cell := g.GetCell(g.CellOf(x, y))
	cell.Add(i)
}

// forward neighbours; together with the cell itself they cover each adjacent
// cell pair exactly once
var forwardNeighbours = [4][2]int{{1, -1}, {1, 0}, {1, 1}, {0, 1}}

// ForEachPair calls fn for every pair of particles closer than sqrt(limitSq).
// Each unordered pair is reported once with a < b.
func (g *Grid) ForEachPair(ps []Particle, limitSq float64, fn func(a, b int, d2 float64)) {
	visit := func(i, j int) {
		dx := ps[i].X - ps[j].X
		dy := ps[i].Y - ps[j].Y
		d2 := dx*dx + dy*dy
		if d2 >= limitSq {
			return
		}
		if i > j {
			i, j = j, i
		}
		fn(i, j, d2)
	}

	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			home := g.GetCell(cx, cy).Members()
			for m, i := range home {
				for _, j := range home[m+1:] {
					visit(i, j)
				}
			}
			for _, off := range forwardNeighbours {
				other := g.GetCell(cx+off[0], cy+off[1])
				if other == nil {
					continue
				}
				for _, i := range home {
					for _, j := range other.Members() {
						visit(i, j)
					}
				}
			}
		}
	}
}
