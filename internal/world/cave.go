package world

import (
	"golang.org/x/sync/errgroup"
)

// DefaultSeedLimit is the seeding threshold GenerateCave uses when the caller
// has no preference.
const DefaultSeedLimit = 55

// caveNeighbours is the number of room cells in the 3x3 window (the cell
// itself included) needed for a cell to stay open.
const caveNeighbours = 5

// GenerateRandomCells turns each cell into a room when a draw from [1, 100]
// is at least limit. Higher limits give fewer rooms; limits outside [1, 100]
// simply give an all-room or a no-room pass. Cells that lose the draw keep
// their current state.
func (g *Grid) GenerateRandomCells(limit int) {
	rng := g.src.Reseed()
	for y := 0; y < g.SizeY(); y++ {
		for x := 0; x < g.SizeX(); x++ {
			if intRange(rng, 1, 100) >= limit {
				g.cells[y][x] = NewCell(AreaRoom)
			}
		}
	}
}

// GenerateAnnealedRandomCells seeds the grid at limit 80 and then makes one
// pass clearing interior cells whose four orthogonal neighbours are empty.
func (g *Grid) GenerateAnnealedRandomCells() {
	g.GenerateRandomCells(80)

	for y := 1; y < g.SizeY()-1; y++ {
		for x := 1; x < g.SizeX()-1; x++ {
			alone := g.cells[y][x-1].IsEmpty() &&
				g.cells[y-1][x].IsEmpty() &&
				g.cells[y][x+1].IsEmpty() &&
				g.cells[y+1][x].IsEmpty()
			if alone {
				g.cells[y][x] = Cell{}
			}
		}
	}
}

// CaveAnnealCell reports whether the cell at (x, y) should be open after a
// cave iteration: it must not be on the edge, and at least five cells of its
// 3x3 window (itself included) must be rooms.
func (g *Grid) CaveAnnealCell(x, y int) bool {
	return caveAnnealCell(g.cells, g.SizeX(), g.SizeY(), x, y)
}

func caveAnnealCell(cells [][]Cell, width, height, x, y int) bool {
	if x <= 0 || y <= 0 || x >= width-1 || y >= height-1 {
		return false
	}

	neighbours := 0
	for j := y - 1; j <= y+1; j++ {
		for i := x - 1; i <= x+1; i++ {
			if cells[j][i].IsRoom() {
				neighbours++
			}
		}
	}
	return neighbours >= caveNeighbours
}

// GenerateCaveIteration runs one cellular automaton step. The next
// generation is computed into a fresh buffer from the current one and then
// swapped in, so every cell sees only the previous state. Rows are evaluated
// concurrently; each goroutine writes only its own row.
func (g *Grid) GenerateCaveIteration() {
	width, height := g.SizeX(), g.SizeY()
	prev := g.cells
	next := newCells(g.width, g.height)

	var eg errgroup.Group
	for y := 0; y < height; y++ {
		eg.Go(func() error {
			row := next[y]
			for x := 0; x < width; x++ {
				if caveAnnealCell(prev, width, height, x, y) {
					row[x] = NewCell(AreaRoom)
				}
			}
			return nil
		})
	}
	_ = eg.Wait()

	g.cells = next
}

// GenerateCave seeds the grid with GenerateRandomCells(seedLimit) and then
// runs numIterations cave iterations.
func (g *Grid) GenerateCave(numIterations, seedLimit int) {
	g.GenerateRandomCells(seedLimit)
	for i := 0; i < numIterations; i++ {
		g.GenerateCaveIteration()
	}
}
