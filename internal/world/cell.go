// Package world provides grid map storage and the dungeon/cave generators
// that carve rooms, hallways and caverns into it.
package world

// Area is the semantic content of a cell.
type Area int

const (
	// AreaNone is solid rock; nothing has been carved here.
	AreaNone Area = iota
	// AreaEntrance marks where a party enters the map.
	AreaEntrance
	// AreaRoom is open floor belonging to a room, hallway or cave.
	AreaRoom
	// AreaStairs leads to another level.
	AreaStairs
	// AreaTestMarker is a debugging marker drawn in a distinct colour.
	AreaTestMarker
)

// String returns a human-readable area name.
func (a Area) String() string {
	switch a {
	case AreaNone:
		return "none"
	case AreaEntrance:
		return "entrance"
	case AreaRoom:
		return "room"
	case AreaStairs:
		return "stairs"
	case AreaTestMarker:
		return "test"
	default:
		return "unknown"
	}
}

// Wall is the blocking state of one edge of a cell.
type Wall int

const (
	WallNone       Wall = iota // open edge
	WallSolid                  // impassable wall
	WallDoor                   // door in the wall
	WallSecretDoor             // door drawn as a wall
)

// String returns a human-readable wall name.
func (w Wall) String() string {
	switch w {
	case WallNone:
		return "none"
	case WallSolid:
		return "wall"
	case WallDoor:
		return "door"
	case WallSecretDoor:
		return "secret door"
	default:
		return "unknown"
	}
}

// Feature is a decoration sitting on the centre point of a cell, such as a
// pillar.
type Feature int

const (
	FeatureNone   Feature = iota // bare centre point
	FeaturePillar                // pillar on the centre point
)

// String returns a human-readable feature name.
func (f Feature) String() string {
	switch f {
	case FeatureNone:
		return "none"
	case FeaturePillar:
		return "pillar"
	default:
		return "unknown"
	}
}

// Access records whether a cell is known to be reachable.
// The zero value is AccessUnknown.
type Access int

const (
	AccessUnknown Access = iota // not yet checked
	AccessYes                   // reachable from the entrance
	AccessNo                    // checked and unreachable
)

// String returns a human-readable accessibility name.
func (a Access) String() string {
	switch a {
	case AccessYes:
		return "yes"
	case AccessNo:
		return "no"
	default:
		return "unknown"
	}
}

// Cell is the state of a single grid location. The zero value is an empty
// cell with unknown accessibility.
type Cell struct {
	area       Area
	horizWall  Wall
	vertWall   Wall
	point      Feature
	accessible Access
}

// NewCell creates a cell with the given area and no walls.
func NewCell(area Area) Cell {
	return Cell{area: area}
}

// NewCellWithWalls creates a cell with an area and both wall kinds.
func NewCellWithWalls(area Area, horiz, vert Wall) Cell {
	return Cell{area: area, horizWall: horiz, vertWall: vert}
}

// NewCellFull creates a cell with every field but accessibility set.
func NewCellFull(area Area, horiz, vert Wall, point Feature) Cell {
	return Cell{area: area, horizWall: horiz, vertWall: vert, point: point}
}

// SetAccessible records whether the cell is reachable.
func (c *Cell) SetAccessible(a Access) { c.accessible = a }

// SetArea changes what the cell is, leaving its walls and feature alone.
func (c *Cell) SetArea(a Area) { c.area = a }

// SetHorizWall sets the state of the cell's horizontal edge.
func (c *Cell) SetHorizWall(w Wall) { c.horizWall = w }

// SetVertWall sets the state of the cell's vertical edge.
func (c *Cell) SetVertWall(w Wall) { c.vertWall = w }

// SetFeature sets the decoration on the cell's centre point.
func (c *Cell) SetFeature(f Feature) { c.point = f }

// Area returns what the cell is.
func (c Cell) Area() Area { return c.area }

// HorizWall returns the state of the cell's horizontal edge.
func (c Cell) HorizWall() Wall { return c.horizWall }

// VertWall returns the state of the cell's vertical edge.
func (c Cell) VertWall() Wall { return c.vertWall }

// Feature returns the decoration on the cell's centre point.
func (c Cell) Feature() Feature { return c.point }

// Accessible returns whether the cell is known to be reachable.
func (c Cell) Accessible() Access { return c.accessible }

// IsRoom returns true if the cell is open floor.
func (c Cell) IsRoom() bool {
	return c.area == AreaRoom
}

// IsEntrance returns true if the cell is a map entrance.
func (c Cell) IsEntrance() bool {
	return c.area == AreaEntrance
}

// IsEmpty returns true if nothing at all has been placed in the cell.
// Accessibility is not considered.
func (c Cell) IsEmpty() bool {
	return c.area == AreaNone &&
		c.horizWall == WallNone &&
		c.vertWall == WallNone &&
		c.point == FeatureNone
}

// IsAccessible returns true only when accessibility is known to be yes.
func (c Cell) IsAccessible() bool {
	return c.accessible == AccessYes
}
