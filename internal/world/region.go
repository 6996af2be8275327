package world

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/samdwyer/rpgmap/internal/errors"
)

// DefaultOrphanSize is the smallest cave region RemoveOrphans keeps.
const DefaultOrphanSize = 15

// Region is a 4-connected group of cells sharing one area kind.
type Region struct {
	Area   Area
	points []Point
	set    mapset.Set[Point]
}

func newRegion(area Area) *Region {
	return &Region{Area: area, set: mapset.New[Point]()}
}

func (r *Region) add(p Point) {
	r.points = append(r.points, p)
	r.set.Put(p)
}

// Len returns the number of cells in the region.
func (r *Region) Len() int {
	return len(r.points)
}

// Contains reports whether p belongs to the region.
func (r *Region) Contains(p Point) bool {
	return r.set.Has(p)
}

// Points returns the region's cells sorted by row, then column.
func (r *Region) Points() []Point {
	out := append([]Point(nil), r.points...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// NearestCells returns the closest pair of cells between r and other, by
// squared distance. Ties keep the pair found first.
func (r *Region) NearestCells(other *Region) (Point, Point, error) {
	if r.Len() == 0 || other.Len() == 0 {
		return Point{}, Point{}, errors.New(errors.ErrCodeInternal, "region is empty; no nearest cells")
	}

	best := math.MaxInt
	var ours, theirs Point
	for _, a := range r.points {
		for _, b := range other.points {
			if d := a.Distance2(b); d < best {
				best = d
				ours, theirs = a, b
			}
		}
	}
	return ours, theirs, nil
}

// flood collects the region containing start. Cells already in visited are
// skipped; every cell taken is added to visited.
func (g *Grid) flood(start Point, visited mapset.Set[Point]) *Region {
	area := g.at(start.X, start.Y).Area()
	region := newRegion(area)

	pending := queue.New[Point]()
	pending.Enqueue(start)

	for !pending.Empty() {
		p := pending.Dequeue()
		if !g.InBounds(p.X, p.Y) || visited.Has(p) || g.at(p.X, p.Y).Area() != area {
			continue
		}
		visited.Put(p)
		region.add(p)

		pending.Enqueue(Point{X: p.X + 1, Y: p.Y})
		pending.Enqueue(Point{X: p.X - 1, Y: p.Y})
		pending.Enqueue(Point{X: p.X, Y: p.Y + 1})
		pending.Enqueue(Point{X: p.X, Y: p.Y - 1})
	}
	return region
}

// PartitionRegions splits the grid into maximal 4-connected regions of equal
// area kind, discovered in row-major order. Regions of empty rock are only
// returned when includeEmpty is set.
func (g *Grid) PartitionRegions(includeEmpty bool) []*Region {
	visited := mapset.New[Point]()
	var out []*Region

	g.ForEach(func(x, y int, cell Cell) {
		p := Point{X: x, Y: y}
		if visited.Has(p) {
			return
		}
		region := g.flood(p, visited)
		if region.Area != AreaNone || includeEmpty {
			out = append(out, region)
		}
	})
	return out
}

// RoomRegions returns only the regions made of room cells.
func (g *Grid) RoomRegions() []*Region {
	var rooms []*Region
	for _, r := range g.PartitionRegions(false) {
		if r.Area == AreaRoom {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// RegionSize returns the number of room cells connected to (x, y), or 0 when
// (x, y) is not a room cell.
func (g *Grid) RegionSize(x, y int) (int, error) {
	if err := g.checkBounds(x, y); err != nil {
		return 0, err
	}
	if !g.at(x, y).IsRoom() {
		return 0, nil
	}
	return g.flood(Point{X: x, Y: y}, mapset.New[Point]()).Len(), nil
}

// ClearRegion empties the region of non-empty area containing (x, y).
func (g *Grid) ClearRegion(x, y int) error {
	if err := g.checkBounds(x, y); err != nil {
		return err
	}
	if g.at(x, y).Area() == AreaNone {
		return nil
	}
	for _, p := range g.flood(Point{X: x, Y: y}, mapset.New[Point]()).points {
		g.cells[p.Y][p.X] = Cell{}
	}
	return nil
}

// RemoveOrphans clears every room region smaller than minSize cells and
// returns how many were removed.
func (g *Grid) RemoveOrphans(minSize int) int {
	removed := 0
	for _, r := range g.RoomRegions() {
		if r.Len() >= minSize {
			continue
		}
		for _, p := range r.points {
			g.cells[p.Y][p.X] = Cell{}
		}
		removed++
	}
	return removed
}

// ConnectRegions routes a hallway of the given kind between every pair of
// room regions whose nearest cells are closer than maxDistance2 (squared).
// It returns the number of hallways placed.
func (g *Grid) ConnectRegions(maxDistance2 int, route RouteKind) (int, error) {
	regions := g.RoomRegions()
	placed := 0

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b, err := regions[i].NearestCells(regions[j])
			if err != nil {
				return placed, err
			}
			if a.Distance2(b) >= maxDistance2 {
				continue
			}
			if err := g.PlaceHallway(a.X, a.Y, b.X, b.Y, 1, route); err != nil {
				return placed, err
			}
			placed++
		}
	}
	return placed, nil
}
