// Package cli implements the sheetdock command-line interface.
//
// The commands load a level (a set of sheets carrying text blocks), drive
// the drag controller over it and report or render the result. The CLI is
// built using cobra, logs through charmbracelet/log and reads its tuning
// from internal/config.
//
// # Commands
//
// The main commands are:
//   - play: Interactive terminal canvas for dragging and rotating sheets
//   - render: Draw a level as a PNG image
//   - simulate: Replay a scripted input session and print the final layout
//   - validate: Check that a level loads and report its snap points
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and snapping sessions are logged via
// observability hooks at debug level.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetdock/internal/config"
	"github.com/matzehuels/sheetdock/pkg/buildinfo"
	"github.com/matzehuels/sheetdock/pkg/drag"
	"github.com/matzehuels/sheetdock/pkg/level"
	"github.com/matzehuels/sheetdock/pkg/observability"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/snap"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

// appName is the application name used for config files and display.
const appName = "sheetdock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	logOut     io.Writer
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sheetdock drags text-carrying sheets that dock onto each other",
		Long: `Sheetdock positions and rotates rectangular sheets that carry paired text
blocks. While a sheet is dragged, the snap points along its text blocks dock
onto the opposite points of the sheets that stand still.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default .sheetdock.toml in . or $HOME)")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration, applies the log level and registers
// the logging hooks. The verbose flag is registered by main.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	observability.SetInteractionHooks(newLogHooks(c.Logger))
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "snap_threshold", cfg.SnapThreshold, "tick", cfg.Tick)
	return nil
}

// =============================================================================
// Shared Setup
// =============================================================================

// loadLevel loads the level at path into reg using m for text layout.
func (c *CLI) loadLevel(path string, reg *sheet.Registry, m textlayout.Measurer) (*level.Level, error) {
	lvl, err := level.Load(path, reg, level.Options{Measurer: m, Clearance: c.Config.Clearance})
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("level loaded", "name", lvl.Name, "sheets", len(lvl.Sheets))
	return lvl, nil
}

// faceMeasurer returns the font-backed measurer at the configured size.
func (c *CLI) faceMeasurer() (*textlayout.FaceMeasurer, error) {
	return textlayout.NewFaceMeasurer(c.Config.FontSize)
}

// newController attaches a drag controller to reg using the configured
// threshold and speeds.
func (c *CLI) newController(reg *sheet.Registry) (*drag.Controller, error) {
	return drag.New(reg, snap.Resolver{Threshold: c.Config.SnapThreshold},
		drag.WithRotationSpeed(c.Config.RotationSpeed),
		drag.WithFineFactor(c.Config.FineFactor),
	)
}
