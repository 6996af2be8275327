package world

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rpgmap/internal/errors"
	"github.com/samdwyer/rpgmap/internal/telemetry"
)

const (
	// Default map dimensions
	DefaultWidth  = 50
	DefaultHeight = 50

	// Hallway distance thresholds (squared cells) for joining regions.
	initialConnectDistance2 = 36
	connectDistanceStep     = 150
)

// Style names a recipe for filling a grid.
type Style string

const (
	// StyleHalls scatters rectangular rooms and joins them with hallways.
	StyleHalls Style = "halls"
	// StyleCave grows caverns with a cellular automaton.
	StyleCave Style = "cave"
	// StyleAnnealed is a random scatter with isolated cells removed.
	StyleAnnealed Style = "annealed"
	// StyleTest draws a fixed fixture of rooms and hallways.
	StyleTest Style = "test"
)

// Styles returns every supported style in display order.
func Styles() []Style {
	return []Style{StyleHalls, StyleCave, StyleAnnealed, StyleTest}
}

// ParseStyle converts a style name into a Style.
func ParseStyle(s string) (Style, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, style := range Styles() {
		if string(style) == s {
			return style, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown map style %q", s)
}

// Params tunes the generators. Non-positive room counts, room sizes, orphan
// sizes and join distances are replaced with defaults. Iterations and
// SeedLimit are used as given apart from a negative iteration count: a seed
// limit outside [1, 100] is a valid all-room or no-room pass. Route is used
// as given too; DefaultParams selects RouteManhattan.
type Params struct {
	NumRooms   int       // rooms scattered by the halls style
	RoomSize   int       // largest room side for the halls style
	Iterations int       // cave smoothing passes
	SeedLimit  int       // cave seeding threshold, normally in [1, 100]
	OrphanSize int       // smallest cave region kept
	Connect    int       // squared distance under which cave regions are joined
	Route      RouteKind // hallway shape used when joining regions
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		NumRooms:   30,
		RoomSize:   5,
		Iterations: 4,
		SeedLimit:  50,
		OrphanSize: DefaultOrphanSize,
		Connect:    initialConnectDistance2,
		Route:      RouteManhattan,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.NumRooms <= 0 {
		p.NumRooms = d.NumRooms
	}
	if p.RoomSize <= 0 {
		p.RoomSize = d.RoomSize
	}
	if p.Iterations < 0 {
		p.Iterations = d.Iterations
	}
	if p.OrphanSize <= 0 {
		p.OrphanSize = d.OrphanSize
	}
	if p.Connect <= 0 {
		p.Connect = d.Connect
	}
	return p
}

// Stats summarises a generation run.
type Stats struct {
	Style          Style
	Regions        int   // connected room regions left
	RoomCells      int   // open cells
	Hallways       int   // hallways placed while joining regions
	OrphansRemoved int   // cave regions cleared for being too small
	Entrance       Point // valid only when HasEntrance is set
	HasEntrance    bool
	Duration       time.Duration
}

// Generate clears the grid, fills it using style and places an entrance near
// the centre. An empty result (no room to put the entrance on) is not an
// error; Stats.HasEntrance reports it.
func Generate(ctx context.Context, g *Grid, style Style, p Params) (Stats, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	start := time.Now()
	p = p.withDefaults()
	stats := Stats{Style: style}

	g.Clear()

	var err error
	switch style {
	case StyleHalls:
		stats.Hallways, err = g.GenerateDungeon(ctx, p.NumRooms, p.RoomSize, p.Route)
	case StyleCave:
		stats.OrphansRemoved, stats.Hallways, err = g.GenerateCaveMap(ctx, p.Iterations, p.SeedLimit, p.OrphanSize, p.Connect, p.Route)
	case StyleAnnealed:
		g.GenerateAnnealedRandomCells()
	case StyleTest:
		err = g.CreateTestMap()
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "unknown map style %q", style)
	}
	if err != nil {
		span.RecordError(err)
		return stats, err
	}

	if g.SizeX() > 0 && g.SizeY() > 0 {
		entrance, err := g.PlaceEntranceNear(g.SizeX()/2, g.SizeY()/2)
		switch {
		case err == nil:
			stats.Entrance, stats.HasEntrance = entrance, true
		case errors.Is(err, errors.ErrCodeNoConnectableRoom):
		default:
			span.RecordError(err)
			return stats, err
		}
	}

	stats.Regions = len(g.RoomRegions())
	stats.RoomCells = g.Count(Cell.IsRoom)
	stats.Duration = time.Since(start)

	span.SetAttributes(
		attribute.String("map.style", string(style)),
		attribute.String("map.route", p.Route.String()),
		attribute.Int("map.width", g.SizeX()),
		attribute.Int("map.height", g.SizeY()),
		attribute.Int("map.regions", stats.Regions),
		attribute.Int("map.room_cells", stats.RoomCells),
		attribute.Int("map.hallways", stats.Hallways),
		attribute.Bool("map.has_entrance", stats.HasEntrance),
		attribute.Int64("map.generation_ms", stats.Duration.Milliseconds()),
	)
	return stats, nil
}

// GenerateDungeon clears the grid, scatters numRooms unconnected rooms of up
// to roomSize cells a side, then joins nearby regions with route hallways.
// The joining distance grows every round until a single region remains. It
// returns the number of hallways placed.
func (g *Grid) GenerateDungeon(ctx context.Context, numRooms, roomSize int, route RouteKind) (int, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.generate_dungeon")
	defer span.End()

	g.Clear()

	for i := 0; i < numRooms; i++ {
		if err := g.PlaceRandomRoom(roomSize, false); err != nil {
			return 0, err
		}
	}

	// Once the threshold passes the grid diagonal every pair is joined, so
	// the loop always ends; the bound guards against regressions.
	diagonal2 := g.SizeX()*g.SizeX() + g.SizeY()*g.SizeY()
	maxRounds := diagonal2/connectDistanceStep + 2

	hallways := 0
	regions := g.RoomRegions()
	distance := initialConnectDistance2

	for round := 0; len(regions) > 1; round++ {
		if round > maxRounds {
			return hallways, errors.New(errors.ErrCodeInternal,
				"%d regions still apart after %d rounds", len(regions), round)
		}
		if err := ctx.Err(); err != nil {
			return hallways, err
		}

		placed, err := g.ConnectRegions(distance, route)
		hallways += placed
		if err != nil {
			return hallways, err
		}

		regions = g.RoomRegions()
		distance += connectDistanceStep
	}

	span.SetAttributes(
		attribute.Int("dungeon.rooms", numRooms),
		attribute.Int("dungeon.room_size", roomSize),
		attribute.Int("dungeon.hallways", hallways),
	)
	return hallways, nil
}

// GenerateCaveMap grows a cave, drops regions smaller than orphanSize and
// joins the survivors that sit within connect (squared) of each other using
// route hallways. It returns the number of orphans removed and hallways
// placed.
func (g *Grid) GenerateCaveMap(ctx context.Context, iterations, seedLimit, orphanSize, connect int, route RouteKind) (int, int, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.generate_cave")
	defer span.End()

	g.GenerateRandomCells(seedLimit)
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		g.GenerateCaveIteration()
	}

	orphans := g.RemoveOrphans(orphanSize)
	hallways, err := g.ConnectRegions(connect, route)
	if err != nil {
		return orphans, hallways, err
	}

	span.SetAttributes(
		attribute.Int("cave.iterations", iterations),
		attribute.Int("cave.seed_limit", seedLimit),
		attribute.Int("cave.orphans_removed", orphans),
		attribute.Int("cave.hallways", hallways),
	)
	return orphans, hallways, nil
}

// CreateTestMap draws a fixed fixture: two rooms and one hallway of each
// orientation pairing. It needs a grid of at least 37x6 to be fully visible.
func (g *Grid) CreateTestMap() error {
	g.PlaceRoom(1, 1, 1, 1)
	g.PlaceRoom(3, 1, 4, 4)

	hallways := []struct {
		x0, y0, x1, y1 int
		route          RouteKind
	}{
		{8, 1, 11, 4, RouteHorizontalFirst},
		{13, 1, 16, 4, RouteVerticalFirst},
		{18, 4, 21, 1, RouteHorizontalFirst},
		{23, 4, 26, 1, RouteVerticalFirst},
		{31, 1, 28, 4, RouteHorizontalFirst},
		{36, 1, 33, 4, RouteVerticalFirst},
	}
	for _, h := range hallways {
		if err := g.PlaceHallway(h.x0, h.y0, h.x1, h.y1, 1, h.route); err != nil {
			return err
		}
	}
	return nil
}
