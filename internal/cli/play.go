package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetdock/pkg/input"
	"github.com/matzehuels/sheetdock/pkg/observability"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

type playOpts struct {
	watch   bool   // reload the level when its files change
	layout  string // layout JSON applied at start
	output  string // where 's' saves the layout
	logFile string // log destination while the TUI owns the terminal
}

// playCommand creates the interactive play command.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play [level]",
		Short: "Drag and rotate the sheets of a level in the terminal",
		Long: `Play opens the level on a terminal canvas.

Drag a sheet with the left mouse button to move it and with the right button
to rotate it. While it moves, its snap points dock onto the opposite points of
the other sheets. '[' and ']' rotate the sheet under the pointer and 'f'
toggles fine adjustment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the level when its files change")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "layout JSON to apply at start")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "layout file written by 's' (default <level>.layout.json)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while playing")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, path string, opts playOpts) error {
	m, err := c.faceMeasurer()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	cur, err := c.openSession(path, m)
	if err != nil {
		return err
	}
	defer func() { cur.close() }()

	if opts.layout != "" {
		if err := applyLayoutFile(opts.layout, cur.reg); err != nil {
			return err
		}
	}

	// The TUI owns the terminal; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	c.Logger.SetOutput(logOut)
	observability.SetInteractionHooks(newLogHooks(c.Logger))
	defer func() {
		c.Logger.SetOutput(c.logOut)
		observability.SetInteractionHooks(newLogHooks(c.Logger))
	}()

	model := newPlayModel(c, path, m, cur)
	if opts.output != "" {
		model.savePath = opts.output
	}

	if opts.watch {
		w, err := newLevelWatcher(cur.lvl)
		if err != nil {
			return fmt.Errorf("watch level: %w", err)
		}
		defer w.Stop()
		model.changes = w.Changes
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if pm, ok := final.(*PlayModel); ok {
		cur = pm.cur
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// openSession loads the level at path into a new registry and attaches a
// controller and dispatcher to it.
func (c *CLI) openSession(path string, m textlayout.Measurer) (*session, error) {
	reg := sheet.NewRegistry()
	lvl, err := c.loadLevel(path, reg, m)
	if err != nil {
		return nil, err
	}
	ctl, err := c.newController(reg)
	if err != nil {
		return nil, err
	}
	return &session{lvl: lvl, reg: reg, ctl: ctl, disp: input.NewDispatcher(reg, ctl)}, nil
}
