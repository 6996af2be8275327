// Package preview runs the interactive terminal map viewer.
package preview

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/telemetry"
	"github.com/samdwyer/rpgmap/internal/ui"
	"github.com/samdwyer/rpgmap/internal/world"
)

// GenerateFunc produces a fresh map each time it is called.
type GenerateFunc func(ctx context.Context) (*world.Grid, world.Stats, error)

// action is a user command decoded from a key press.
type action int

const (
	actionNone action = iota
	actionQuit
	actionRegenerate
	actionUp
	actionDown
	actionLeft
	actionRight
)

// Preview holds the viewer state.
type Preview struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	generate GenerateFunc

	grid    *world.Grid
	stats   world.Stats
	cursor  world.Point
	maps    int
	running bool
}

// New creates a viewer drawing on screen. The screen is closed by Run.
func New(screen *ui.Screen, pal *gamedata.Palette, generate GenerateFunc) *Preview {
	return &Preview{
		screen:   screen,
		renderer: ui.NewRenderer(screen, pal),
		generate: generate,
		running:  true,
	}
}

// Run shows generated maps until the user quits or ctx is cancelled.
func (p *Preview) Run(ctx context.Context) error {
	defer p.screen.Close()

	if err := p.regenerate(ctx); err != nil {
		return err
	}

	// PollEvent blocks; closing the screen on cancellation releases it.
	stop := context.AfterFunc(ctx, p.screen.Close)
	defer stop()

	for p.running {
		p.renderer.Render(p.grid, p.cursor, p.status())

		ev := p.screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if err := p.apply(ctx, keyAction(ev)); err != nil {
				return err
			}
		case *tcell.EventResize:
			p.screen.Sync()
		}
	}
	return ctx.Err()
}

// keyAction maps a key press to a viewer action.
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit
		case 'r', 'R':
			return actionRegenerate
		case 'k':
			return actionUp
		case 'j':
			return actionDown
		case 'h':
			return actionLeft
		case 'l':
			return actionRight
		}
	}
	return actionNone
}

func (p *Preview) apply(ctx context.Context, a action) error {
	switch a {
	case actionQuit:
		p.running = false
	case actionRegenerate:
		return p.regenerate(ctx)
	case actionUp:
		p.moveCursor(0, -1)
	case actionDown:
		p.moveCursor(0, 1)
	case actionLeft:
		p.moveCursor(-1, 0)
	case actionRight:
		p.moveCursor(1, 0)
	}
	return nil
}

// regenerate replaces the map and puts the cursor on the entrance, or the
// centre when the map has none.
func (p *Preview) regenerate(ctx context.Context) error {
	tracer := telemetry.Tracer("preview")
	ctx, span := tracer.Start(ctx, "preview.regenerate")
	defer span.End()

	grid, stats, err := p.generate(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	p.grid, p.stats = grid, stats
	p.maps++

	if stats.HasEntrance {
		p.cursor = stats.Entrance
	} else {
		p.cursor = world.Point{X: grid.SizeX() / 2, Y: grid.SizeY() / 2}
	}

	span.SetAttributes(
		attribute.Int("preview.maps", p.maps),
		attribute.String("map.style", string(stats.Style)),
	)
	return nil
}

// moveCursor moves the cursor by the given delta, staying on the map.
func (p *Preview) moveCursor(dx, dy int) {
	next := world.Point{X: p.cursor.X + dx, Y: p.cursor.Y + dy}
	if p.grid.InBounds(next.X, next.Y) {
		p.cursor = next
	}
}

func (p *Preview) status() string {
	cell, err := p.grid.Get(p.cursor.X, p.cursor.Y)
	area := "-"
	if err == nil {
		area = cell.Area().String()
	}
	return fmt.Sprintf("%s #%d  regions:%d  floor:%d  %v %s  [r]egenerate [q]uit",
		p.stats.Style, p.maps, p.stats.Regions, p.stats.RoomCells, p.cursor, area)
}
