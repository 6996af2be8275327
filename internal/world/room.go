package world

import (
	"github.com/samdwyer/rpgmap/internal/errors"
)

// PlaceRoom fills the inclusive rectangle spanned by two corners with room
// cells. The corners may be given in any order. Parts of the rectangle that
// fall outside the grid are clipped. Entrances inside the rectangle are
// overwritten; hallways rely on this.
func (g *Grid) PlaceRoom(x0, y0, x1, y1 int) {
	lowerX, upperX := min(x0, x1), max(x0, x1)
	lowerY, upperY := min(y0, y1), max(y0, y1)

	lowerX = max(lowerX, 0)
	lowerY = max(lowerY, 0)
	upperX = min(upperX, g.SizeX()-1)
	upperY = min(upperY, g.SizeY()-1)

	for y := lowerY; y <= upperY; y++ {
		for x := lowerX; x <= upperX; x++ {
			g.cells[y][x] = NewCell(AreaRoom)
		}
	}
}

// PlaceRoomDimensions stamps a room from an origin corner and signed extents.
// A negative extent grows the room left (or up) from the origin. The stamped
// area is half-open: it covers [lower, upper) on both axes, so an extent of 0
// stamps nothing. Entrance cells are left untouched.
//
// Nothing is modified when the origin is negative or past the grid, or when
// the far boundary lies outside the grid.
func (g *Grid) PlaceRoomDimensions(origX, origY, wallH, wallV int) error {
	maxX, maxY := g.SizeX(), g.SizeY()

	if origX < 0 || origY < 0 || origX > maxX || origY > maxY {
		return errors.New(errors.ErrCodeInvalidRoomBounds,
			"room origin (%d, %d) is outside the %dx%d map", origX, origY, maxX, maxY)
	}

	farX, farY := origX+wallH, origY+wallV
	if farX > maxX || farX < 0 || farY > maxY || farY < 0 {
		return errors.New(errors.ErrCodeInvalidRoomBounds,
			"room boundary (%d, %d) is outside the %dx%d map", farX, farY, maxX, maxY)
	}

	lowerX, upperX := min(origX, farX), max(origX, farX)
	lowerY, upperY := min(origY, farY), max(origY, farY)

	for y := lowerY; y < upperY; y++ {
		for x := lowerX; x < upperX; x++ {
			if !g.cells[y][x].IsEntrance() {
				g.cells[y][x] = NewCell(AreaRoom)
			}
		}
	}
	return nil
}

// PlaceRandomRoom stamps a room with random size (2..scale on each side) at a
// random origin. When connected is set, a hallway is first routed from the
// room's centre to the nearest existing room cell.
//
// The origin is drawn from [1, SizeX] x [1, SizeY]; the upper bound is one
// past the last index, and clamping in PlaceRoom absorbs it.
func (g *Grid) PlaceRandomRoom(scale int, connected bool) error {
	rng := g.src.Reseed()

	width := intRange(rng, 2, scale)
	height := intRange(rng, 2, scale)

	x0 := intRange(rng, 1, g.SizeX())
	y0 := intRange(rng, 1, g.SizeY())

	if connected {
		cx, cy := x0+width/2, y0+height/2
		if err := g.checkBounds(cx, cy); err != nil {
			return errors.Wrap(errors.ErrCodeOutOfBounds, err, "room centre abandoned")
		}

		target, err := g.FindNearestConnected(cx, cy)
		switch {
		case err == nil:
			// Part of the hallway is overwritten by the room below.
			if err := g.PlaceHallway(cx, cy, target.X, target.Y, 1, RouteManhattan); err != nil {
				return err
			}
		case errors.Is(err, errors.ErrCodeNoConnectableRoom):
			// First room on an empty map; nothing to connect to.
		default:
			return err
		}
	}

	g.PlaceRoom(x0-width/2, y0-height/2, x0+width/2, y0+height/2)
	return nil
}
