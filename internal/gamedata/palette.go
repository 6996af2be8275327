package gamedata

import (
	"image/color"

	"github.com/samdwyer/rpgmap/internal/errors"
)

// AreaDef describes how one area kind is drawn.
type AreaDef struct {
	ID    string `json:"id"`    // Area name as printed by world.Area (e.g., "room")
	Name  string `json:"name"`  // Display name (e.g., "Floor")
	Glyph string `json:"glyph"` // Single character for text output (e.g., ".")
	Color string `json:"color"` // Hex color code (e.g., "#C8C8C8")
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *AreaDef) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '?'
	}
	return rune(a.Glyph[0])
}

// RGBA returns the area colour, falling back to white on a bad hex code.
func (a *AreaDef) RGBA() color.RGBA {
	c, err := ParseHexColor(a.Color)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Background string    `json:"background"`
	GridLine   string    `json:"gridLine"`
	Areas      []AreaDef `json:"areas"`
}

// Palette holds the parsed colours and glyphs used by every renderer.
type Palette struct {
	Background color.RGBA
	GridLine   color.RGBA
	areas      map[string]*AreaDef
	all        []AreaDef
}

// NewPalette validates a palette file and indexes its areas by ID.
func NewPalette(file PaletteFile) (*Palette, error) {
	bg, err := ParseHexColor(file.Background)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "palette background")
	}
	line, err := ParseHexColor(file.GridLine)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "palette grid line")
	}

	p := &Palette{
		Background: bg,
		GridLine:   line,
		areas:      make(map[string]*AreaDef, len(file.Areas)),
		all:        file.Areas,
	}
	for i := range file.Areas {
		if _, err := ParseHexColor(file.Areas[i].Color); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "palette area %q", file.Areas[i].ID)
		}
		p.areas[file.Areas[i].ID] = &file.Areas[i]
	}
	return p, nil
}

// LoadPalette loads the palette from the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	if len(file.Areas) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no areas in palette.json")
	}
	return NewPalette(file)
}

// Area returns the definition for the area with the given ID, or nil if not found.
func (p *Palette) Area(id string) *AreaDef {
	return p.areas[id]
}

// Color returns the colour for the area ID, or the background when the ID
// is unknown.
func (p *Palette) Color(id string) color.RGBA {
	if a := p.areas[id]; a != nil {
		return a.RGBA()
	}
	return p.Background
}

// Glyph returns the text glyph for the area ID, or '?' when unknown.
func (p *Palette) Glyph(id string) rune {
	if a := p.areas[id]; a != nil {
		return a.GlyphRune()
	}
	return '?'
}

// All returns all area definitions in file order.
func (p *Palette) All() []AreaDef {
	return p.all
}
