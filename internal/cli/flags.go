package cli

import (
	"github.com/spf13/pflag"

	"github.com/samdwyer/rpgmap/internal/config"
	"github.com/samdwyer/rpgmap/internal/world"
)

// mapFlags holds the generation flags shared by generate and preview.
type mapFlags struct {
	configPath string
	preset     string
	style      string
	width      int
	height     int
	seed       int64
	numRooms   int
	roomSize   int
	iterations int
	seedLimit  int
	orphanSize int
	connect    int
	route      string
}

func (f *mapFlags) register(fs *pflag.FlagSet) {
	d := config.Default()

	fs.StringVar(&f.configPath, "config", "", "TOML config file (default $"+config.EnvConfig+")")
	fs.StringVarP(&f.preset, "preset", "p", "", "embedded preset (see 'rpgmap styles')")
	fs.StringVarP(&f.style, "style", "s", d.Style, "map style: halls, cave, annealed, test")
	fs.IntVarP(&f.width, "width", "x", d.Width, "map width in cells")
	fs.IntVarP(&f.height, "height", "y", d.Height, "map height in cells")
	fs.Int64Var(&f.seed, "seed", 0, "random seed (0 uses the clock)")
	fs.IntVar(&f.numRooms, "num-rooms", d.NumRooms, "rooms scattered by the halls style")
	fs.IntVar(&f.roomSize, "room-size", d.RoomSize, "largest room side for the halls style")
	fs.IntVar(&f.iterations, "iterations", d.Iterations, "cave smoothing passes")
	fs.IntVar(&f.seedLimit, "seed-limit", d.SeedLimit, "cave seeding density in percent")
	fs.IntVar(&f.orphanSize, "orphan-size", world.DefaultOrphanSize, "smallest cave region kept")
	fs.IntVar(&f.connect, "connect", d.Connect, "squared distance under which cave regions are joined")
	fs.StringVar(&f.route, "route", d.Route, "hallway route: manhattan, horizontal-first, vertical-first")
}

// apply returns a config layer that copies only the flags set on the
// command line, so defaults never mask file or environment values.
func (f *mapFlags) apply(fs *pflag.FlagSet) func(*config.Config) {
	return func(c *config.Config) {
		if fs.Changed("preset") {
			c.Preset = f.preset
		}
		if fs.Changed("style") {
			c.Style = f.style
		}
		if fs.Changed("width") {
			c.Width = f.width
		}
		if fs.Changed("height") {
			c.Height = f.height
		}
		if fs.Changed("seed") {
			c.Seed = f.seed
		}
		if fs.Changed("num-rooms") {
			c.NumRooms = f.numRooms
		}
		if fs.Changed("room-size") {
			c.RoomSize = f.roomSize
		}
		if fs.Changed("iterations") {
			c.Iterations = f.iterations
		}
		if fs.Changed("seed-limit") {
			c.SeedLimit = f.seedLimit
		}
		if fs.Changed("orphan-size") {
			c.OrphanSize = f.orphanSize
		}
		if fs.Changed("connect") {
			c.Connect = f.connect
		}
		if fs.Changed("route") {
			c.Route = f.route
		}
	}
}

// load resolves the configuration with these flags on top.
func (c *CLI) load(f *mapFlags, fs *pflag.FlagSet, extra func(*config.Config)) (config.Config, error) {
	flags := f.apply(fs)
	return config.Load(config.Options{
		Path:      f.configPath,
		LookupEnv: c.lookupEnv,
		Flags: func(cfg *config.Config) {
			flags(cfg)
			if extra != nil {
				extra(cfg)
			}
		},
	})
}
