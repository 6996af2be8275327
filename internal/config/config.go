// Package config resolves the settings for a generation run from built-in
// defaults, embedded presets, a TOML file, RPGMAP_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/samdwyer/rpgmap/internal/errors"
	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/render"
	"github.com/samdwyer/rpgmap/internal/world"
)

// Environment variables read by Load.
const (
	EnvConfig = "RPGMAP_CONFIG"
	EnvPreset = "RPGMAP_PRESET"
	EnvStyle  = "RPGMAP_STYLE"
	EnvRoute  = "RPGMAP_ROUTE"
	EnvWidth  = "RPGMAP_WIDTH"
	EnvHeight = "RPGMAP_HEIGHT"
	EnvScale  = "RPGMAP_SCALE"
	EnvOutput = "RPGMAP_OUTPUT"
	EnvSeed   = "RPGMAP_SEED"
)

// DefaultOutput is the PNG path used when nothing else is set.
const DefaultOutput = "rpgmap.png"

// Config holds everything needed for one generation run.
type Config struct {
	// Preset names an embedded preset. Empty selects the preset named after Style.
	Preset string `toml:"preset"`
	Style  string `toml:"style"`

	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Seed for random number generation. A seed of 0 means the clock is used.
	Seed int64 `toml:"seed"`

	NumRooms   int `toml:"num_rooms"`
	RoomSize   int `toml:"room_size"`
	Iterations int `toml:"iterations"`
	SeedLimit  int `toml:"seed_limit"`
	OrphanSize int `toml:"orphan_size"`
	Connect    int `toml:"connect"`

	// Route is the hallway shape used when joining regions.
	Route string `toml:"route"`

	// Output settings
	Scale     int    `toml:"scale"`
	Output    string `toml:"output"`
	GridLines bool   `toml:"grid_lines"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	p := world.DefaultParams()
	return Config{
		Style:      string(world.StyleHalls),
		Width:      world.DefaultWidth,
		Height:     world.DefaultHeight,
		NumRooms:   p.NumRooms,
		RoomSize:   p.RoomSize,
		Iterations: p.Iterations,
		SeedLimit:  p.SeedLimit,
		OrphanSize: p.OrphanSize,
		Connect:    p.Connect,
		Route:      p.Route.String(),
		Scale:      render.DefaultScale,
		Output:     DefaultOutput,
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// Path of a TOML file. Empty falls back to $RPGMAP_CONFIG; no file is
	// read when both are empty.
	Path string
	// LookupEnv reads environment variables; nil uses os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Flags applies explicitly set command-line flags. May be nil.
	Flags func(*Config)
	// Presets supplies the embedded presets; nil loads them from gamedata.
	Presets *gamedata.PresetRegistry
}

// Load layers the configuration sources and validates the result.
func Load(opts Options) (Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	presets := opts.Presets
	if presets == nil {
		var err error
		if presets, err = gamedata.LoadPresetRegistry(); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "failed to load presets")
		}
	}

	path := opts.Path
	if path == "" {
		path, _ = lookup(EnvConfig)
	}

	var data []byte
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read config %s", path)
		}
	}

	// The preset sits below the file, env and flags but is chosen by them,
	// so resolve the layers once to learn which preset applies.
	chosen := Default()
	if err := layer(&chosen, data, lookup, opts.Flags); err != nil {
		return Config{}, err
	}

	cfg := Default()
	name := chosen.Preset
	if name == "" {
		name = chosen.Style
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if preset := presets.GetByID(name); preset != nil {
		cfg.ApplyPreset(preset)
	} else if chosen.Preset != "" {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown preset %q", chosen.Preset)
	}

	if err := layer(&cfg, data, lookup, opts.Flags); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func layer(cfg *Config, data []byte, lookup func(string) (string, bool), flags func(*Config)) error {
	if data != nil {
		if err := cfg.decodeTOML(data); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return err
	}
	if flags != nil {
		flags(cfg)
	}
	return nil
}

// decodeTOML overwrites only the keys present in data. Unknown keys are
// rejected so typos do not pass silently.
func (c *Config) decodeTOML(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyPreset copies the preset's style, extents and every non-zero
// generation parameter into c.
func (c *Config) ApplyPreset(p *gamedata.PresetDef) {
	c.Preset = p.ID
	if p.Style != "" {
		c.Style = p.Style
	}
	setIfPositive(&c.Width, p.Width)
	setIfPositive(&c.Height, p.Height)
	setIfPositive(&c.NumRooms, p.NumRooms)
	setIfPositive(&c.RoomSize, p.RoomSize)
	setIfPositive(&c.Iterations, p.Iterations)
	setIfPositive(&c.SeedLimit, p.SeedLimit)
	setIfPositive(&c.OrphanSize, p.OrphanSize)
	setIfPositive(&c.Connect, p.Connect)
}

func setIfPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// ApplyEnv overrides c with the RPGMAP_* variables that are set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPreset); ok {
		c.Preset = v
	}
	if v, ok := lookup(EnvStyle); ok {
		c.Style = v
	}
	if v, ok := lookup(EnvRoute); ok {
		c.Route = v
	}
	if v, ok := lookup(EnvOutput); ok {
		c.Output = v
	}
	for key, dst := range map[string]*int{
		EnvWidth:  &c.Width,
		EnvHeight: &c.Height,
		EnvScale:  &c.Scale,
	} {
		if err := envInt(lookup, key, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "environment variable %s must be an integer", EnvSeed)
		}
		c.Seed = seed
	}
	return nil
}

// envInt parses the variable into dst when it is set.
func envInt(lookup func(string) (string, bool), key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "environment variable %s must be an integer", key)
	}
	*dst = n
	return nil
}

// Validate rejects settings no generator or renderer can use.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "map extents must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %d", c.Scale)
	}
	if _, err := world.ParseStyle(c.Style); err != nil {
		return err
	}
	if _, err := world.ParseRouteKind(c.Route); err != nil {
		return err
	}
	if c.NumRooms < 0 || c.RoomSize < 0 || c.Iterations < 0 || c.OrphanSize < 0 || c.Connect < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "generation parameters must not be negative")
	}
	return nil
}

// MapStyle returns the parsed style. Call Validate first.
func (c Config) MapStyle() world.Style {
	style, _ := world.ParseStyle(c.Style)
	return style
}

// Params returns the generator parameters. Call Validate first.
func (c Config) Params() world.Params {
	route, _ := world.ParseRouteKind(c.Route)
	return world.Params{
		NumRooms:   c.NumRooms,
		RoomSize:   c.RoomSize,
		Iterations: c.Iterations,
		SeedLimit:  c.SeedLimit,
		OrphanSize: c.OrphanSize,
		Connect:    c.Connect,
		Route:      route,
	}
}

// Source returns the random source for the configured seed.
func (c Config) Source() *world.Source {
	if c.Seed == 0 {
		return world.NewSource()
	}
	return world.NewSeededSource(c.Seed)
}

// NewGrid returns an empty grid of the configured extents.
func (c Config) NewGrid() *world.Grid {
	return world.NewGrid(c.Width, c.Height, c.Source())
}
