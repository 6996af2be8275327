// Package render draws generated grids as PNG images and coloured text.
package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/samdwyer/rpgmap/internal/errors"
	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/world"
)

// DefaultScale is the side of one cell in pixels.
const DefaultScale = 25

// PNGRenderer paints each cell as a scale×scale block of its area colour.
type PNGRenderer struct {
	Palette *gamedata.Palette
	Scale   int
	// GridLines draws a one-pixel separator on every edge shared by two
	// room cells, so the floor reads as tiles.
	GridLines bool
}

// NewPNGRenderer creates a renderer. A nil palette loads the embedded one and
// a non-positive scale uses DefaultScale.
func NewPNGRenderer(p *gamedata.Palette, scale int) (*PNGRenderer, error) {
	if p == nil {
		var err error
		if p, err = gamedata.LoadPalette(); err != nil {
			return nil, err
		}
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	return &PNGRenderer{Palette: p, Scale: scale}, nil
}

// Image draws g. The image is SizeX*Scale wide and SizeY*Scale high.
func (r *PNGRenderer) Image(g *world.Grid) (image.Image, error) {
	dc, err := r.draw(g)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r *PNGRenderer) draw(g *world.Grid) (*gg.Context, error) {
	w, h := g.SizeX()*r.Scale, g.SizeY()*r.Scale
	if w == 0 || h == 0 {
		return nil, errors.New(errors.ErrCodeRender, "cannot draw an empty %dx%d map", g.SizeX(), g.SizeY())
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.Palette.Background)
	dc.Clear()

	s := float64(r.Scale)
	g.ForEach(func(x, y int, cell world.Cell) {
		if cell.Area() == world.AreaNone {
			return
		}
		dc.SetColor(r.Palette.Color(cell.Area().String()))
		dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
		dc.Fill()
	})

	// TODO: draw HorizWall/VertWall edges once generators place doors.
	if r.GridLines {
		r.drawSeparators(dc, g)
	}
	return dc, nil
}

// drawSeparators marks the pixel row or column on each side of an edge
// shared by two room cells.
func (r *PNGRenderer) drawSeparators(dc *gg.Context, g *world.Grid) {
	s := float64(r.Scale)
	room := func(x, y int) bool {
		c, err := g.Get(x, y)
		return err == nil && c.IsRoom()
	}

	dc.SetColor(r.Palette.GridLine)
	g.ForEach(func(x, y int, cell world.Cell) {
		if !cell.IsRoom() {
			return
		}
		px, py := float64(x)*s, float64(y)*s
		if room(x+1, y) {
			dc.DrawRectangle(px+s-1, py, 1, s)
		}
		if room(x-1, y) {
			dc.DrawRectangle(px, py, 1, s)
		}
		if room(x, y+1) {
			dc.DrawRectangle(px, py+s-1, s, 1)
		}
		if room(x, y-1) {
			dc.DrawRectangle(px, py, s, 1)
		}
	})
	dc.Fill()
}

// Encode writes g to w as a PNG.
func (r *PNGRenderer) Encode(w io.Writer, g *world.Grid) error {
	dc, err := r.draw(g)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to encode png")
	}
	return nil
}

// WriteFile writes g to path as a PNG, replacing any existing file.
func (r *PNGRenderer) WriteFile(path string, g *world.Grid) error {
	dc, err := r.draw(g)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to write %s", path)
	}
	return nil
}
