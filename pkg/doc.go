// Package pkg provides the libraries behind sheetdock.
//
// # Overview
//
// Sheetdock moves rectangular sheets that carry text blocks. Every text line
// has a snap point just off the side of its block; while a sheet is dragged,
// its points dock onto the opposite points of the sheets that stand still.
//
//	pointer / keys
//	      ↓
//	 [input] dispatcher (hit test, held actions, frame ticks)
//	      ↓
//	 [drag] controller (focus, translate / rotate, sessions)
//	      ↓
//	 [snap] session snapshot + first-match search + correction
//	      ↓
//	 [sheet] registry (sheets, blocks, snap points) built on [geom] poses
//
// # Quick Start
//
// Load a level, attach a controller and replay some input:
//
//	reg := sheet.NewRegistry()
//	lvl, _ := level.Load("examples/levels/dialogue.json", reg, level.Options{})
//
//	ctl, _ := drag.New(reg, snap.Resolver{Threshold: 20})
//	defer ctl.Close()
//
//	d := input.NewDispatcher(reg, ctl)
//	d.Frame([]input.Event{
//	    input.PointerMoved{Pos: geom.V(540, 140)},
//	    input.ActionPressed{Action: input.TranslateGrab},
//	}, 50*time.Millisecond)
//	d.Frame([]input.Event{input.PointerMoved{Pos: geom.V(400, 112)}}, 50*time.Millisecond)
//
//	level.WriteLayout(os.Stdout, lvl.Name, reg)
//
// # Main Packages
//
// [geom] - 2D vectors and rigid poses (translation plus rotation in radians).
//
// [textlayout] - Text measuring on a font face or a character grid.
//
// [sheet] - Sheets, text blocks, affinities, snap points and the registry.
//
// [snap] - Snapping sessions and the rotate-then-translate correction.
//
// [drag] - The drag/rotate state machine and session bracketing.
//
// [input] - Named actions, input events, frame dispatch and TOML scripts.
//
// [level] - JSON and TOML level files and layout export.
//
// [render] - PNG rendering of sheets, text and snap points.
//
// [observability] - Hooks for focus, session and snap events.
//
// [errors] - Structured error codes.
package pkg
