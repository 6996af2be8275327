package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/term"

	"github.com/samdwyer/rpgmap/internal/config"
	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/render"
	"github.com/samdwyer/rpgmap/internal/telemetry"
	"github.com/samdwyer/rpgmap/internal/world"
)

// generateOpts holds the output flags of the generate command.
type generateOpts struct {
	scale     int
	output    string
	ascii     bool
	gridLines bool
}

// generateCommand creates the generate command, which writes one map to PNG.
func (c *CLI) generateCommand() *cobra.Command {
	var mf mapFlags
	opts := generateOpts{scale: render.DefaultScale, output: config.DefaultOutput}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a map and write it as a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			cfg, err := c.load(&mf, fs, func(cfg *config.Config) {
				if fs.Changed("scale") {
					cfg.Scale = opts.scale
				}
				if fs.Changed("output") {
					cfg.Output = opts.output
				}
				if fs.Changed("grid-lines") {
					cfg.GridLines = opts.gridLines
				}
			})
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, opts.ascii)
		},
	}

	mf.register(cmd.Flags())
	cmd.Flags().IntVarP(&opts.scale, "scale", "S", opts.scale, "pixels per cell")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG path")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "also print the map as coloured text")
	cmd.Flags().BoolVar(&opts.gridLines, "grid-lines", false, "draw separators between floor cells")

	return cmd
}

// colorOutput reports whether Out is a terminal that can show escape codes.
func (c *CLI) colorOutput() bool {
	f, ok := c.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runGenerate builds the map described by cfg and writes it out.
func (c *CLI) runGenerate(ctx context.Context, cfg config.Config, ascii bool) error {
	logger := loggerFromContext(ctx)
	runID := uuid.New()

	tracer := telemetry.Tracer("cli")
	ctx, span := tracer.Start(ctx, "rpgmap.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID.String()),
		attribute.String("map.preset", cfg.Preset),
		attribute.Int64("map.seed", cfg.Seed),
	)

	logger.Debug("generating map",
		"run", runID,
		"style", cfg.Style,
		"preset", cfg.Preset,
		"route", cfg.Route,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"seed", cfg.Seed,
	)

	prog := newProgress(logger)
	g := cfg.NewGrid()
	stats, err := world.Generate(ctx, g, cfg.MapStyle(), cfg.Params())
	if err != nil {
		span.RecordError(err)
		return err
	}
	prog.done("Generated "+string(stats.Style)+" map",
		"regions", stats.Regions,
		"hallways", stats.Hallways,
		"orphans", stats.OrphansRemoved,
	)
	if !stats.HasEntrance {
		logger.Warn("map has no floor; no entrance placed")
	}

	pal, err := gamedata.LoadPalette()
	if err != nil {
		return err
	}

	png, err := render.NewPNGRenderer(pal, cfg.Scale)
	if err != nil {
		return err
	}
	png.GridLines = cfg.GridLines
	if err := png.WriteFile(cfg.Output, g); err != nil {
		span.RecordError(err)
		return err
	}

	if ascii {
		text, err := render.NewTextRenderer(pal, c.colorOutput())
		if err != nil {
			return err
		}
		if err := text.Write(c.Out, g); err != nil {
			return err
		}
	}

	printSuccess(c.Out, "Generated %s map %dx%d", stats.Style, g.SizeX(), g.SizeY())
	printFile(c.Out, cfg.Output)
	printKeyValue(c.Out, "run", runID.String())
	printKeyValue(c.Out, "regions", strconv.Itoa(stats.Regions))
	printKeyValue(c.Out, "floor", strconv.Itoa(stats.RoomCells))
	if stats.HasEntrance {
		printKeyValue(c.Out, "entrance", stats.Entrance.String())
	}
	return nil
}
