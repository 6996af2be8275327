package gamedata

import "github.com/samdwyer/rpgmap/internal/errors"

// PresetDef is a named set of generation parameters loaded from JSON.
// Zero numeric fields leave the generator defaults in place.
type PresetDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "warren")
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // One-line summary for listings
	Style       string `json:"style"`       // Map style the preset drives
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	NumRooms    int    `json:"numRooms"`
	RoomSize    int    `json:"roomSize"`
	Iterations  int    `json:"iterations"`
	SeedLimit   int    `json:"seedLimit"`
	OrphanSize  int    `json:"orphanSize"`
	Connect     int    `json:"connect"`
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []PresetDef `json:"presets"`
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]PresetDef, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}

// PresetRegistry holds loaded presets and provides lookup utilities.
type PresetRegistry struct {
	presets map[string]*PresetDef
	all     []PresetDef
}

// NewPresetRegistry creates a registry from loaded preset definitions.
func NewPresetRegistry(presets []PresetDef) *PresetRegistry {
	registry := &PresetRegistry{
		presets: make(map[string]*PresetDef),
		all:     presets,
	}
	for i := range presets {
		registry.presets[presets[i].ID] = &presets[i]
	}
	return registry
}

// LoadPresetRegistry loads and creates a registry from the embedded presets.json.
func LoadPresetRegistry() (*PresetRegistry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no presets in presets.json")
	}
	return NewPresetRegistry(presets), nil
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *PresetRegistry) GetByID(id string) *PresetDef {
	return r.presets[id]
}

// All returns all presets in file order.
func (r *PresetRegistry) All() []PresetDef {
	return r.all
}

// Count returns the number of presets in the registry.
func (r *PresetRegistry) Count() int {
	return len(r.all)
}
