package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/world"
)

// Renderer draws a grid with a cursor and a status line.
type Renderer struct {
	canvas Canvas
	styles map[world.Area]tcell.Style
	glyphs map[world.Area]rune
}

// NewRenderer creates a renderer for canvas using the palette's colours
// and glyphs.
func NewRenderer(canvas Canvas, pal *gamedata.Palette) *Renderer {
	r := &Renderer{
		canvas: canvas,
		styles: make(map[world.Area]tcell.Style),
		glyphs: make(map[world.Area]rune),
	}
	bg := gamedata.TCellColor(pal.Background)
	for _, area := range []world.Area{world.AreaNone, world.AreaEntrance, world.AreaRoom, world.AreaStairs, world.AreaTestMarker} {
		id := area.String()
		r.styles[area] = tcell.StyleDefault.Background(bg).Foreground(gamedata.TCellColor(pal.Color(id)))
		r.glyphs[area] = pal.Glyph(id)
	}
	// Rock is drawn as blank background rather than its glyph.
	r.glyphs[world.AreaNone] = ' '
	return r
}

// Viewport returns the top-left grid cell shown so that cursor stays visible
// in a view of viewW×viewH cells.
func Viewport(g *world.Grid, cursor world.Point, viewW, viewH int) world.Point {
	return world.Point{
		X: scroll(cursor.X, g.SizeX(), viewW),
		Y: scroll(cursor.Y, g.SizeY(), viewH),
	}
}

// scroll centres pos in a view of size view over an extent of size total,
// clamped so the view never runs past either edge.
func scroll(pos, total, view int) int {
	if view <= 0 || total <= view {
		return 0
	}
	off := pos - view/2
	return max(0, min(off, total-view))
}

// Render draws g with the cursor highlighted and status on the last row.
func (r *Renderer) Render(g *world.Grid, cursor world.Point, status string) {
	r.canvas.Clear()

	w, h := r.canvas.Size()
	mapH := max(h-1, 0)
	origin := Viewport(g, cursor, w, mapH)

	for sy := 0; sy < mapH; sy++ {
		for sx := 0; sx < w; sx++ {
			cell, err := g.Get(origin.X+sx, origin.Y+sy)
			if err != nil {
				continue
			}
			style := r.styles[cell.Area()]
			glyph := r.glyphs[cell.Area()]
			if origin.X+sx == cursor.X && origin.Y+sy == cursor.Y {
				style = style.Reverse(true)
				if glyph == ' ' {
					glyph = '+'
				}
			}
			r.canvas.SetContent(sx, sy, glyph, style)
		}
	}

	if h > 0 {
		r.RenderMessage(status, h-1)
	}
	r.canvas.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.canvas.SetContent(i, y, ch, style)
	}
}
