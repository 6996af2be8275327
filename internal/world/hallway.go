package world

import (
	"strings"

	"github.com/samdwyer/rpgmap/internal/errors"
)

// RouteKind is the shape of a hallway between two points.
type RouteKind int

const (
	// RouteHorizontalFirst runs along the origin row, then along the destination column.
	RouteHorizontalFirst RouteKind = iota
	// RouteVerticalFirst runs along the origin column, then along the destination row.
	RouteVerticalFirst
	// RouteManhattan picks one of the two L shapes at random on every call.
	RouteManhattan
	// Declared but not implemented.
	RouteDiagonal
	RouteCircular
	RouteRandom
)

var routeNames = map[RouteKind]string{
	RouteHorizontalFirst: "horizontal-first",
	RouteVerticalFirst:   "vertical-first",
	RouteManhattan:       "manhattan",
	RouteDiagonal:        "diagonal",
	RouteCircular:        "circular",
	RouteRandom:          "random",
}

// String returns the route name used in config files and flags.
func (r RouteKind) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRouteKind converts a route name back into a RouteKind.
func ParseRouteKind(s string) (RouteKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range routeNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown route kind %q", s)
}

// PlaceHallway connects two points with a pair of one-cell-wide legs forming
// an L. Each leg is stamped with PlaceRoom, so entrances on the path are
// overwritten.
//
// width is accepted but has no effect yet.
func (g *Grid) PlaceHallway(origX, origY, destX, destY, width int, route RouteKind) error {
	if route == RouteManhattan {
		if g.src.Reseed().Intn(2) == 0 {
			route = RouteHorizontalFirst
		} else {
			route = RouteVerticalFirst
		}
	}

	switch route {
	case RouteHorizontalFirst:
		g.PlaceRoom(origX, origY, destX, origY)
		g.PlaceRoom(destX, origY, destX, destY)
	case RouteVerticalFirst:
		g.PlaceRoom(origX, origY, origX, destY)
		g.PlaceRoom(origX, destY, destX, destY)
	default:
		return errors.New(errors.ErrCodeUnimplementedRoute,
			"hallway not placed: %s routing is not implemented", route)
	}
	return nil
}
