package render

import (
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/rpgmap/internal/errors"
	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/world"
)

// TextRenderer prints one glyph per cell, one line per row.
type TextRenderer struct {
	Palette *gamedata.Palette
	// Colored wraps each glyph in the area's true-colour escape code.
	Colored bool
}

// NewTextRenderer creates a text renderer. A nil palette loads the embedded one.
func NewTextRenderer(p *gamedata.Palette, colored bool) (*TextRenderer, error) {
	if p == nil {
		var err error
		if p, err = gamedata.LoadPalette(); err != nil {
			return nil, err
		}
	}
	return &TextRenderer{Palette: p, Colored: colored}, nil
}

// Render returns the text dump of g.
func (r *TextRenderer) Render(g *world.Grid) string {
	styles := make(map[world.Area]color.RGBColor)
	var sb strings.Builder

	for y := 0; y < g.SizeY(); y++ {
		for x := 0; x < g.SizeX(); x++ {
			c, _ := g.Get(x, y)
			id := c.Area().String()
			glyph := string(r.Palette.Glyph(id))

			if !r.Colored {
				sb.WriteString(glyph)
				continue
			}
			style, ok := styles[c.Area()]
			if !ok {
				rgba := r.Palette.Color(id)
				style = color.RGB(rgba.R, rgba.G, rgba.B)
				styles[c.Area()] = style
			}
			sb.WriteString(style.Sprint(glyph))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write renders g to w.
func (r *TextRenderer) Write(w io.Writer, g *world.Grid) error {
	if _, err := io.WriteString(w, r.Render(g)); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to write text map")
	}
	return nil
}
