package world

import (
	"context"
	"testing"

	"github.com/samdwyer/rpgmap/internal/errors"
)

func TestGenerateReproducibility(t *testing.T) {
	for _, style := range Styles() {
		t.Run(string(style), func(t *testing.T) {
			g1 := NewGrid(DefaultWidth, DefaultHeight, NewSeededSource(12345))
			g2 := NewGrid(DefaultWidth, DefaultHeight, NewSeededSource(12345))

			ctx := context.Background()
			s1, err := Generate(ctx, g1, style, DefaultParams())
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			s2, err := Generate(ctx, g2, style, DefaultParams())
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			if !g1.Equal(g2) {
				t.Error("same seed produced different maps")
			}
			if s1.RoomCells != s2.RoomCells || s1.Entrance != s2.Entrance {
				t.Errorf("stats mismatch: %+v != %+v", s1, s2)
			}
		})
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	g1 := NewGrid(DefaultWidth, DefaultHeight, NewSeededSource(12345))
	g2 := NewGrid(DefaultWidth, DefaultHeight, NewSeededSource(54321))

	ctx := context.Background()
	if _, err := Generate(ctx, g1, StyleCave, DefaultParams()); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(ctx, g2, StyleCave, DefaultParams()); err != nil {
		t.Fatal(err)
	}

	if g1.Equal(g2) {
		t.Error("different seeds produced identical caves")
	}
}

func TestGeneratePlacesEntrance(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight, NewSeededSource(77))
	stats, err := Generate(context.Background(), g, StyleHalls, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if !stats.HasEntrance {
		t.Fatal("halls map should always get an entrance")
	}

	c, _ := g.Get(stats.Entrance.X, stats.Entrance.Y)
	if !c.IsEntrance() {
		t.Errorf("cell %v is %v, want entrance", stats.Entrance, c.Area())
	}
	if n := g.Count(Cell.IsEntrance); n != 1 {
		t.Errorf("Expected exactly 1 entrance, got %d", n)
	}
}

func TestGenerateEmptyMap(t *testing.T) {
	g := NewGrid(0, 0, NewSeededSource(1))
	stats, err := Generate(context.Background(), g, StyleCave, DefaultParams())
	if err != nil {
		t.Fatalf("empty map should not be an error: %v", err)
	}
	if stats.HasEntrance || stats.RoomCells != 0 {
		t.Errorf("unexpected stats for empty map: %+v", stats)
	}
}

func TestGenerateUnknownStyle(t *testing.T) {
	g := NewGrid(10, 10, nil)
	if _, err := Generate(context.Background(), g, Style("maze"), DefaultParams()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("want INVALID_INPUT, got %v", err)
	}
}

func TestGenerateCaveSeedLimitPassesThrough(t *testing.T) {
	p := DefaultParams()
	p.Iterations = 0

	// Every draw in [1, 100] clears a limit of 0: the whole grid is open.
	p.SeedLimit = 0
	g := NewGrid(10, 10, NewSeededSource(3))
	stats, err := Generate(context.Background(), g, StyleCave, p)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.HasEntrance || stats.RoomCells != 10*10-1 {
		t.Errorf("limit 0: want an open grid plus entrance, got %+v", stats)
	}

	// No draw reaches 101.
	p.SeedLimit = 101
	stats, err = Generate(context.Background(), g, StyleCave, p)
	if err != nil {
		t.Fatal(err)
	}
	if stats.HasEntrance || stats.RoomCells != 0 {
		t.Errorf("limit 101: want an empty grid, got %+v", stats)
	}
}

func TestGenerateUnimplementedRoute(t *testing.T) {
	p := DefaultParams()
	p.Route = RouteDiagonal

	g := NewGrid(DefaultWidth, DefaultHeight, NewSeededSource(77))
	_, err := Generate(context.Background(), g, StyleHalls, p)
	if !errors.Is(err, errors.ErrCodeUnimplementedRoute) {
		t.Errorf("want UNIMPLEMENTED_ROUTE, got %v", err)
	}
}

func TestGenerateDungeonVerticalFirst(t *testing.T) {
	g := NewGrid(25, 25, NewSeededSource(4))
	if _, err := g.GenerateDungeon(context.Background(), 10, 4, RouteVerticalFirst); err != nil {
		t.Fatal(err)
	}
	if n := len(g.RoomRegions()); n != 1 {
		t.Errorf("Expected a single connected region, got %d", n)
	}
}

func TestGenerateDungeonTerminates(t *testing.T) {
	g := NewGrid(25, 25, NewSeededSource(9))

	// Regenerating repeatedly must not hang in the joining loop.
	for i := 0; i < 10; i++ {
		if _, err := g.GenerateDungeon(context.Background(), 10, 10, RouteManhattan); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if n := len(g.RoomRegions()); n != 1 {
			t.Errorf("run %d: Expected a single connected region, got %d", i, n)
		}
	}
}

func TestGenerateDungeonCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGrid(60, 60, NewSeededSource(9))
	_, err := g.GenerateDungeon(ctx, 40, 4, RouteManhattan)
	if err == nil && len(g.RoomRegions()) > 1 {
		t.Error("a cancelled run should either finish joined or report the cancellation")
	}
}

func TestCreateTestMap(t *testing.T) {
	g := NewGrid(40, 6, nil)
	if err := g.CreateTestMap(); err != nil {
		t.Fatal(err)
	}

	// 1 + 8 cells of rooms, six hallways of 7 cells each.
	if n := g.Count(Cell.IsRoom); n != 1+8+6*7 {
		t.Errorf("Expected %d room cells, got %d", 1+8+6*7, n)
	}
	if n := len(g.RoomRegions()); n != 8 {
		t.Errorf("Expected 8 separate shapes, got %d", n)
	}
}

func TestParseStyle(t *testing.T) {
	for _, style := range Styles() {
		got, err := ParseStyle(" " + string(style) + " ")
		if err != nil || got != style {
			t.Errorf("ParseStyle(%q) = %v, %v", style, got, err)
		}
	}
	if _, err := ParseStyle("maze"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("want INVALID_INPUT, got %v", err)
	}
}
