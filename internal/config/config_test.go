package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/rpgmap/internal/errors"
	"github.com/samdwyer/rpgmap/internal/render"
	"github.com/samdwyer/rpgmap/internal/world"
)

// env builds a LookupEnv func from a fixed map.
func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpgmap.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{LookupEnv: env(nil)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Style != "halls" || cfg.Preset != "halls" {
		t.Errorf("style/preset = %q/%q, want halls/halls", cfg.Style, cfg.Preset)
	}
	if cfg.Width != 50 || cfg.Height != 50 {
		t.Errorf("extents = %dx%d, want 50x50", cfg.Width, cfg.Height)
	}
	if cfg.Scale != render.DefaultScale || cfg.Output != DefaultOutput {
		t.Errorf("scale/output = %d/%q", cfg.Scale, cfg.Output)
	}
	if cfg.Params() != world.DefaultParams() {
		t.Errorf("params = %+v, want %+v", cfg.Params(), world.DefaultParams())
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
preset = "warren"
height = 70
scale = 10
`)

	tests := []struct {
		name       string
		env        map[string]string
		flags      func(*Config)
		wantWidth  int
		wantHeight int
		wantScale  int
		wantRooms  int
	}{
		{
			name:       "preset below file",
			wantWidth:  80, // from preset
			wantHeight: 70, // file overrides preset
			wantScale:  10,
			wantRooms:  90,
		},
		{
			name:       "env above file",
			env:        map[string]string{EnvHeight: "33", EnvScale: "12"},
			wantWidth:  80,
			wantHeight: 33,
			wantScale:  12,
			wantRooms:  90,
		},
		{
			name:       "flags above env",
			env:        map[string]string{EnvHeight: "33"},
			flags:      func(c *Config) { c.Height = 20; c.NumRooms = 5 },
			wantWidth:  80,
			wantHeight: 20,
			wantScale:  10,
			wantRooms:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(Options{Path: path, LookupEnv: env(tt.env), Flags: tt.flags})
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Width != tt.wantWidth || cfg.Height != tt.wantHeight {
				t.Errorf("extents = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantWidth, tt.wantHeight)
			}
			if cfg.Scale != tt.wantScale {
				t.Errorf("scale = %d, want %d", cfg.Scale, tt.wantScale)
			}
			if cfg.NumRooms != tt.wantRooms {
				t.Errorf("num_rooms = %d, want %d", cfg.NumRooms, tt.wantRooms)
			}
		})
	}
}

func TestLoadStyleSelectsPreset(t *testing.T) {
	cfg, err := Load(Options{
		LookupEnv: env(nil),
		Flags:     func(c *Config) { c.Style = "test" },
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Preset != "test" || cfg.Width != 40 || cfg.Height != 6 {
		t.Errorf("test preset not applied: %+v", cfg)
	}
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	path := writeConfig(t, `style = "cave"`)

	cfg, err := Load(Options{LookupEnv: env(map[string]string{EnvConfig: path})})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MapStyle() != world.StyleCave {
		t.Errorf("style = %q, want cave", cfg.Style)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing file", Options{Path: filepath.Join(t.TempDir(), "nope.toml"), LookupEnv: env(nil)}},
		{"bad toml", Options{Path: writeConfig(t, `width = `), LookupEnv: env(nil)}},
		{"unknown key", Options{Path: writeConfig(t, `colour = "red"`), LookupEnv: env(nil)}},
		{"bad env int", Options{LookupEnv: env(map[string]string{EnvWidth: "wide"})}},
		{"bad env seed", Options{LookupEnv: env(map[string]string{EnvSeed: "0x"})}},
		{"unknown preset", Options{LookupEnv: env(map[string]string{EnvPreset: "castle"})}},
		{"unknown style", Options{LookupEnv: env(map[string]string{EnvStyle: "maze"})}},
		{"unknown route", Options{LookupEnv: env(map[string]string{EnvRoute: "zigzag"})}},
		{"zero scale", Options{LookupEnv: env(nil), Flags: func(c *Config) { c.Scale = 0 }}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("want INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -1 }, true},
		{"negative scale", func(c *Config) { c.Scale = -5 }, true},
		{"unknown style", func(c *Config) { c.Style = "maze" }, true},
		{"negative rooms", func(c *Config) { c.NumRooms = -1 }, true},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, false},
		{"seed limit above 100", func(c *Config) { c.SeedLimit = 150 }, false},
		{"zero seed limit", func(c *Config) { c.SeedLimit = 0 }, false},
		{"unknown route", func(c *Config) { c.Route = "zigzag" }, true},
		{"empty route", func(c *Config) { c.Route = "" }, true},
		{"declared route", func(c *Config) { c.Route = "diagonal" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRoute(t *testing.T) {
	path := writeConfig(t, `route = "vertical-first"`)

	cfg, err := Load(Options{Path: path, LookupEnv: env(nil)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Params().Route; got != world.RouteVerticalFirst {
		t.Errorf("route = %v, want vertical-first", got)
	}

	cfg, err = Load(Options{Path: path, LookupEnv: env(map[string]string{EnvRoute: "Horizontal-First"})})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Params().Route; got != world.RouteHorizontalFirst {
		t.Errorf("route = %v, want horizontal-first", got)
	}
}

func TestParamsPassSeedLimitThrough(t *testing.T) {
	cfg, err := Load(Options{LookupEnv: env(nil), Flags: func(c *Config) { c.SeedLimit = 0 }})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Params().SeedLimit; got != 0 {
		t.Errorf("seed limit = %d, want 0", got)
	}
}

func TestSourceSeeding(t *testing.T) {
	cfg := Default()
	cfg.Seed = 42

	a, b := cfg.Source().Reseed(), cfg.Source().Reseed()
	if a.Int63() != b.Int63() {
		t.Error("same seed should give the same first draw")
	}

	g := cfg.NewGrid()
	if g.SizeX() != cfg.Width || g.SizeY() != cfg.Height {
		t.Errorf("grid = %dx%d", g.SizeX(), g.SizeY())
	}
}
