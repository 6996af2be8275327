package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/rpgmap/internal/gamedata"
)

// stylesCommand creates the styles command, which lists the embedded presets.
func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the embedded map presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := gamedata.LoadPresetRegistry()
			if err != nil {
				return err
			}

			printTitle(c.Out, "Presets")
			for _, p := range registry.All() {
				printKeyValue(c.Out, p.ID, fmt.Sprintf("%s %dx%d", p.Style, p.Width, p.Height))
				printDetail(c.Out, "%s", p.Description)
			}
			return nil
		},
	}
}
