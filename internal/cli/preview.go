package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/samdwyer/rpgmap/internal/config"
	"github.com/samdwyer/rpgmap/internal/gamedata"
	"github.com/samdwyer/rpgmap/internal/preview"
	"github.com/samdwyer/rpgmap/internal/world"
)

// previewCommand creates the preview command, an interactive terminal viewer.
func (c *CLI) previewCommand() *cobra.Command {
	var mf mapFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show generated maps in the terminal (r regenerates, q quits)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(&mf, cmd.Flags(), nil)
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), cfg)
		},
	}

	mf.register(cmd.Flags())
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, cfg config.Config) error {
	pal, err := gamedata.LoadPalette()
	if err != nil {
		return err
	}

	screen, err := c.openScreen()
	if err != nil {
		return err
	}

	p := preview.New(screen, pal, mapGenerator(cfg))
	return p.Run(ctx)
}

// mapGenerator returns a generator that draws successive maps from one
// random source, so a fixed seed gives a repeatable sequence of maps.
func mapGenerator(cfg config.Config) preview.GenerateFunc {
	src := cfg.Source()
	return func(ctx context.Context) (*world.Grid, world.Stats, error) {
		g := world.NewGrid(cfg.Width, cfg.Height, src)
		stats, err := world.Generate(ctx, g, cfg.MapStyle(), cfg.Params())
		if err != nil {
			return nil, stats, err
		}
		loggerFromContext(ctx).Debug("regenerated", "style", stats.Style, "regions", stats.Regions)
		return g, stats, nil
	}
}
