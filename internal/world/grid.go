package world

import (
	"github.com/samdwyer/rpgmap/internal/errors"
)

// Grid is a fixed-size map of cells. Extents are set at construction and
// never change; every coordinate-taking method validates its arguments.
type Grid struct {
	width  int
	height int
	cells  [][]Cell // indexed [y][x]
	src    *Source
}

// NewGrid creates an empty grid. Negative extents are treated as zero. A nil
// source falls back to a clock-seeded one.
func NewGrid(sizeX, sizeY int, src *Source) *Grid {
	sizeX = max(sizeX, 0)
	sizeY = max(sizeY, 0)
	if src == nil {
		src = NewSource()
	}

	return &Grid{
		width:  sizeX,
		height: sizeY,
		cells:  newCells(sizeX, sizeY),
		src:    src,
	}
}

func newCells(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return cells
}

// SizeX returns the number of columns.
func (g *Grid) SizeX() int {
	return g.width
}

// SizeY returns the number of rows, or 0 for a grid with no columns.
func (g *Grid) SizeY() int {
	if g.width == 0 {
		return 0
	}
	return g.height
}

// Source returns the random source shared by every generator on this grid.
func (g *Grid) Source() *Source {
	return g.src
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.SizeX() && y >= 0 && y < g.SizeY()
}

func (g *Grid) checkBounds(x, y int) error {
	if !g.InBounds(x, y) {
		return errors.New(errors.ErrCodeOutOfBounds,
			"cell (%d, %d) is outside the %dx%d map", x, y, g.SizeX(), g.SizeY())
	}
	return nil
}

// Get returns a copy of the cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if err := g.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return g.cells[y][x], nil
}

// Set replaces the cell at (x, y).
func (g *Grid) Set(x, y int, cell Cell) error {
	if err := g.checkBounds(x, y); err != nil {
		return err
	}
	g.cells[y][x] = cell
	return nil
}

// at reads a cell the caller has already bounds-checked.
func (g *Grid) at(x, y int) Cell {
	return g.cells[y][x]
}

// OnEdgeX reports whether column x is the first or last column.
func (g *Grid) OnEdgeX(x int) bool {
	return x == 0 || x == g.SizeX()-1
}

// OnEdgeY reports whether row y is the first or last row.
func (g *Grid) OnEdgeY(y int) bool {
	return y == 0 || y == g.SizeY()-1
}

// OnEdge reports whether (x, y) lies on the outer boundary.
func (g *Grid) OnEdge(x, y int) bool {
	return g.OnEdgeX(x) || g.OnEdgeY(y)
}

// PlaceEntrance marks a single cell as the map entrance.
func (g *Grid) PlaceEntrance(x, y int) error {
	if err := g.checkBounds(x, y); err != nil {
		return err
	}
	g.cells[y][x].SetArea(AreaEntrance)
	return nil
}

// PlaceEntranceNear marks the room cell nearest to (x, y) as the entrance.
// This lets entrances land on open floor for generators whose layout is not
// known in advance, such as caves.
func (g *Grid) PlaceEntranceNear(x, y int) (Point, error) {
	if err := g.checkBounds(x, y); err != nil {
		return Point{}, err
	}
	p, err := g.FindNearestConnected(x, y)
	if err != nil {
		return Point{}, err
	}
	g.cells[p.Y][p.X].SetArea(AreaEntrance)
	return p, nil
}

// Clear resets every cell to the empty cell.
func (g *Grid) Clear() {
	g.cells = newCells(g.width, g.height)
}

// Clone returns a deep copy of the grid sharing the same random source.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([][]Cell, len(g.cells)),
		src:    g.src,
	}
	for y := range g.cells {
		c.cells[y] = append([]Cell(nil), g.cells[y]...)
	}
	return c
}

// ForEach calls fn for every cell in row-major order.
func (g *Grid) ForEach(fn func(x, y int, cell Cell)) {
	for y := 0; y < g.SizeY(); y++ {
		for x := 0; x < g.SizeX(); x++ {
			fn(x, y, g.cells[y][x])
		}
	}
}

// Count returns the number of cells matching pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	g.ForEach(func(_, _ int, cell Cell) {
		if pred(cell) {
			n++
		}
	})
	return n
}

// Equal reports whether both grids have the same extents and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.SizeX() != other.SizeX() || g.SizeY() != other.SizeY() {
		return false
	}
	for y := 0; y < g.SizeY(); y++ {
		for x := 0; x < g.SizeX(); x++ {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}
