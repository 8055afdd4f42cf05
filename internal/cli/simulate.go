package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetdock/pkg/input"
	"github.com/matzehuels/sheetdock/pkg/level"
	"github.com/matzehuels/sheetdock/pkg/render"
	"github.com/matzehuels/sheetdock/pkg/sheet"
)

type simulateOpts struct {
	output string // layout JSON path; stdout when empty
	png    string // optional PNG of the final state
}

// simulateCommand creates the simulate command, which replays a scripted
// input session against a level and prints the resulting layout.
func (c *CLI) simulateCommand() *cobra.Command {
	var opts simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate [level] [script]",
		Short: "Replay a scripted input session and print the final layout",
		Long: `Simulate loads a level, feeds the frames of a TOML input script through the
drag controller and prints where every sheet ended up as layout JSON.

Script example:

  tick = "50ms"

  [[frame]]
  events = [{ move = [120, 40] }, { press = "translate-grab" }]

  [[frame]]
  events = [{ move = [180, 40] }, { release = "translate-grab" }]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write layout JSON to file instead of stdout")
	cmd.Flags().StringVar(&opts.png, "png", "", "also render the final state to this PNG file")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, stdout io.Writer, levelPath, scriptPath string, opts simulateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	script, err := input.LoadScript(scriptPath)
	if err != nil {
		return err
	}

	m, err := c.faceMeasurer()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	reg := sheet.NewRegistry()
	lvl, err := c.loadLevel(levelPath, reg, m)
	if err != nil {
		return err
	}

	ctl, err := c.newController(reg)
	if err != nil {
		return err
	}
	defer ctl.Close()

	ticks, err := input.Replay(input.NewDispatcher(reg, ctl), script)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Replayed %d ticks", ticks))

	if opts.output == "" {
		if err := level.WriteLayout(stdout, lvl.Name, reg); err != nil {
			return err
		}
	} else {
		if err := level.ExportLayout(opts.output, lvl.Name, reg); err != nil {
			return err
		}
		printSuccess("Layout written")
		printFile(opts.output)
	}

	if opts.png != "" {
		f, err := os.Create(opts.png)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.png, err)
		}
		if err := render.RenderPNG(f, reg, render.WithMeasurer(m)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", opts.png, err)
		}
		printFile(opts.png)
	}
	return nil
}
