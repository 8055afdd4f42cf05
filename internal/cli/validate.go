package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/sheet"
)

// validateCommand creates the validate command, which loads a level and
// reports its sheets and snap points.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [level]",
		Short: "Check that a level loads and summarise its snap points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.faceMeasurer()
			if err != nil {
				return fmt.Errorf("load font: %w", err)
			}
			reg := sheet.NewRegistry()
			lvl, err := c.loadLevel(args[0], reg, m)
			if err != nil {
				return err
			}

			printSuccess("Level %s is valid", StyleValue.Render(lvl.Name))
			for _, s := range reg.All() {
				left := len(s.TransformedPoints(sheet.Left, nil))
				right := len(s.TransformedPoints(sheet.Right, nil))
				printKeyValue(s.Name, fmt.Sprintf("%d blocks, %s left, %s right points, at (%g, %g) %g°",
					len(s.Blocks()),
					StyleNumber.Render(fmt.Sprint(left)),
					StyleNumber.Render(fmt.Sprint(right)),
					s.Position.X, s.Position.Y, geom.Deg(s.Rotation)))
			}
			return nil
		},
	}
}
