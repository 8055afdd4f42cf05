package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/level"
	"github.com/matzehuels/sheetdock/pkg/render"
	"github.com/matzehuels/sheetdock/pkg/sheet"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output PNG path; defaults to <level name>.png
	layout     string  // optional layout JSON applied before drawing
	scale      float64 // pixels per world unit
	padding    float64 // margin in world units
	snapPoints bool    // draw snap point arrows
	focus      string  // sheet name to highlight
}

// renderCommand creates the render command for drawing a level to PNG.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 1, padding: 20}

	cmd := &cobra.Command{
		Use:   "render [level]",
		Short: "Render a level to PNG",
		Long: `Render draws every sheet of a level with its text blocks and writes a PNG.

A layout file written by 'simulate' or by the play view can be applied first,
so the image shows the sheets where they were left.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <level>.png)")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "layout JSON to apply before rendering")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per world unit")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "margin around the sheets")
	cmd.Flags().BoolVar(&opts.snapPoints, "snap-points", false, "draw snap point arrows")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "highlight the named sheet")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := c.faceMeasurer()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	reg := sheet.NewRegistry()
	lvl, err := c.loadLevel(path, reg, m)
	if err != nil {
		return err
	}

	if opts.layout != "" {
		if err := applyLayoutFile(opts.layout, reg); err != nil {
			return err
		}
	}

	renderOpts := []render.Option{
		render.WithScale(opts.scale),
		render.WithPadding(opts.padding),
		render.WithSnapPoints(opts.snapPoints),
		render.WithMeasurer(m),
	}
	if opts.focus != "" {
		id := sheetByName(reg, opts.focus)
		if id == sheet.None {
			return errors.New(errors.ErrCodeInvalidInput, "no sheet named %q", opts.focus)
		}
		renderOpts = append(renderOpts, render.WithFocus(id))
	}

	out := opts.output
	if out == "" {
		out = defaultOutput(lvl, ".png")
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := render.RenderPNG(f, reg, renderOpts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	prog.done(fmt.Sprintf("Rendered %d sheets", reg.Len()))
	printSuccess("Rendered %s", StyleValue.Render(lvl.Name))
	printFile(out)
	return nil
}

// applyLayoutFile reads a layout JSON file and moves the sheets in reg.
func applyLayoutFile(path string, reg *sheet.Registry) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return level.ApplyLayout(f, reg)
}

// sheetByName returns the ID of the first sheet called name.
func sheetByName(reg *sheet.Registry, name string) sheet.ID {
	for _, s := range reg.All() {
		if s.Name == name {
			return s.ID()
		}
	}
	return sheet.None
}

// defaultOutput derives an output file name from the level name.
func defaultOutput(lvl *level.Level, ext string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, lvl.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(lvl.Path), filepath.Ext(lvl.Path))
	}
	return name + ext
}
