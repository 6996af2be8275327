package world

import (
	"testing"

	"github.com/samdwyer/rpgmap/internal/errors"
)

func TestPlaceHallwayHorizontalStraight(t *testing.T) {
	g := NewGrid(10, 10, nil)
	if err := g.PlaceHallway(0, 0, 5, 0, 1, RouteHorizontalFirst); err != nil {
		t.Fatal(err)
	}
	assertRooms(t, g, rect(0, 0, 5, 0))
}

func TestPlaceHallwayShapes(t *testing.T) {
	tests := []struct {
		name  string
		route RouteKind
		want  map[Point]bool
	}{
		{
			name:  "horizontal first",
			route: RouteHorizontalFirst,
			want:  union(rect(2, 2, 6, 2), rect(6, 2, 6, 7)),
		},
		{
			name:  "vertical first",
			route: RouteVerticalFirst,
			want:  union(rect(2, 2, 2, 7), rect(2, 7, 6, 7)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(10, 10, nil)
			if err := g.PlaceHallway(2, 2, 6, 7, 1, tt.route); err != nil {
				t.Fatal(err)
			}
			assertRooms(t, g, tt.want)

			// The same hallway drawn backwards flips which leg comes first.
			back := NewGrid(10, 10, nil)
			if err := back.PlaceHallway(6, 7, 2, 2, 1, tt.route); err != nil {
				t.Fatal(err)
			}
			if back.Count(Cell.IsRoom) != len(tt.want) {
				t.Errorf("reverse hallway has %d cells, want %d", back.Count(Cell.IsRoom), len(tt.want))
			}
		})
	}
}

func TestPlaceHallwayManhattan(t *testing.T) {
	horizontal := union(rect(1, 1, 8, 1), rect(8, 1, 8, 6))
	vertical := union(rect(1, 1, 1, 6), rect(1, 6, 8, 6))

	seen := map[string]bool{}
	for seed := int64(0); seed < 40; seed++ {
		g := NewGrid(10, 10, NewSeededSource(seed))
		if err := g.PlaceHallway(1, 1, 8, 6, 1, RouteManhattan); err != nil {
			t.Fatal(err)
		}

		got := roomSet(g)
		switch {
		case sameSet(got, horizontal):
			seen["horizontal"] = true
		case sameSet(got, vertical):
			seen["vertical"] = true
		default:
			t.Fatalf("seed %d: Manhattan hallway is neither L shape", seed)
		}
	}

	if !seen["horizontal"] || !seen["vertical"] {
		t.Errorf("Expected both shapes across seeds, saw %v", seen)
	}
}

func TestPlaceHallwayUnimplemented(t *testing.T) {
	for _, route := range []RouteKind{RouteDiagonal, RouteCircular, RouteRandom, RouteKind(42)} {
		g := NewGrid(10, 10, nil)
		err := g.PlaceHallway(0, 0, 5, 5, 1, route)
		if !errors.Is(err, errors.ErrCodeUnimplementedRoute) {
			t.Errorf("%v: want UNIMPLEMENTED_ROUTE, got %v", route, err)
		}
		if g.Count(Cell.IsEmpty) != 100 {
			t.Errorf("%v: unsupported routes must not modify the map", route)
		}
	}
}

func TestPlaceHallwayIgnoresWidth(t *testing.T) {
	narrow := NewGrid(10, 10, nil)
	wide := NewGrid(10, 10, nil)

	_ = narrow.PlaceHallway(1, 1, 7, 4, 1, RouteVerticalFirst)
	_ = wide.PlaceHallway(1, 1, 7, 4, 3, RouteVerticalFirst)

	if !narrow.Equal(wide) {
		t.Error("width should not change the stamped hallway")
	}
}

func TestParseRouteKind(t *testing.T) {
	for kind, name := range routeNames {
		got, err := ParseRouteKind(name)
		if err != nil || got != kind {
			t.Errorf("ParseRouteKind(%q) = %v, %v", name, got, err)
		}
	}

	if _, err := ParseRouteKind("zigzag"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("want INVALID_INPUT, got %v", err)
	}
}

func union(sets ...map[Point]bool) map[Point]bool {
	out := make(map[Point]bool)
	for _, s := range sets {
		for p := range s {
			out[p] = true
		}
	}
	return out
}

func sameSet(a, b map[Point]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}
