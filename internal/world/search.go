package world

import (
	"github.com/zyedidia/generic/queue"

	"github.com/samdwyer/rpgmap/internal/errors"
)

// FindNearestConnected returns a room cell on the smallest square ring around
// (x0, y0) that contains one. When several room cells sit on that ring, one
// of them is picked at random.
func (g *Grid) FindNearestConnected(x0, y0 int) (Point, error) {
	return g.FindBy(x0, y0, Cell.IsRoom)
}

// FindBy scans square rings of growing radius around (x0, y0), clipped to the
// grid, and stops at the first radius where any cell satisfies cond. Every
// side of the terminating ring is scanned in full, so all matches at that
// radius compete in the random pick; corner cells are counted once per side.
func (g *Grid) FindBy(x0, y0 int, cond func(Cell) bool) (Point, error) {
	if err := g.checkBounds(x0, y0); err != nil {
		return Point{}, err
	}

	lastX, lastY := g.SizeX()-1, g.SizeY()-1
	candidates := queue.New[Point]()
	found := 0

	visit := func(x, y int) {
		if cond(g.cells[y][x]) {
			candidates.Enqueue(Point{X: x, Y: y})
			found++
		}
	}

	for radius := 1; ; radius++ {
		xmin := max(x0-radius, 0)
		xmax := min(x0+radius, lastX)
		ymin := max(y0-radius, 0)
		ymax := min(y0+radius, lastY)

		// Bottom and top rows.
		for x := xmin; x <= xmax; x++ {
			visit(x, ymin)
		}
		for x := xmin; x <= xmax; x++ {
			visit(x, ymax)
		}
		// Left and right columns.
		for y := ymin; y <= ymax; y++ {
			visit(xmin, y)
		}
		for y := ymin; y <= ymax; y++ {
			visit(xmax, y)
		}

		if found > 0 {
			break
		}
		if xmin == 0 && ymin == 0 && xmax == lastX && ymax == lastY {
			return Point{}, errors.New(errors.ErrCodeNoConnectableRoom,
				"no matching cell anywhere around (%d, %d)", x0, y0)
		}
	}

	choice := g.src.Reseed().Intn(found)
	for i := 0; i < choice; i++ {
		candidates.Dequeue()
	}
	return candidates.Peek(), nil
}
