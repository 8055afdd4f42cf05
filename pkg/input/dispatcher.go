package input

import (
	"time"

	"github.com/matzehuels/sheetdock/pkg/drag"
	"github.com/matzehuels/sheetdock/pkg/sheet"
)

// Dispatcher routes events to a drag controller.
type Dispatcher struct {
	reg   *sheet.Registry
	ctl   *drag.Controller
	hover sheet.ID
	held  map[Action]bool
}

// NewDispatcher returns a dispatcher driving ctl over the sheets in reg.
func NewDispatcher(reg *sheet.Registry, ctl *drag.Controller) *Dispatcher {
	return &Dispatcher{
		reg:  reg,
		ctl:  ctl,
		held: make(map[Action]bool),
	}
}

// Controller returns the driven controller.
func (d *Dispatcher) Controller() *drag.Controller { return d.ctl }

// Hover returns the sheet under the pointer at the last pointer event.
func (d *Dispatcher) Hover() sheet.ID { return d.hover }

// Held reports whether a is currently pressed.
func (d *Dispatcher) Held(a Action) bool { return d.held[a] }

// Frame processes one tick: events in arrival order, then held-key rotation
// for elapsed, then the controller's per-tick reconciliation.
func (d *Dispatcher) Frame(events []Event, elapsed time.Duration) {
	for _, ev := range events {
		d.Apply(ev)
	}
	if dir := d.rotateDir(); dir != 0 {
		d.ctl.Rotate(dir * elapsed.Seconds())
	}
	d.ctl.Advance()
}

// Apply processes a single event without advancing the tick.
func (d *Dispatcher) Apply(ev Event) {
	switch e := ev.(type) {
	case PointerMoved:
		d.hoverAt(e)
		d.ctl.PointerMoved(e.Pos)
	case ActionPressed:
		d.press(e.Action)
	case ActionReleased:
		d.release(e.Action)
	}
}

func (d *Dispatcher) hoverAt(e PointerMoved) {
	id := d.reg.SheetAt(e.Pos)
	if id == d.hover {
		return
	}
	if d.hover != sheet.None {
		d.ctl.PointerExit(d.hover)
	}
	d.hover = id
	if id != sheet.None {
		d.ctl.PointerEnter(id)
	}
}

func (d *Dispatcher) press(a Action) {
	d.held[a] = true
	switch a {
	case TranslateGrab:
		d.ctl.BeginTranslate(d.hover)
	case RotateGrab:
		d.ctl.BeginRotate(d.hover)
	case FineAdjust:
		d.ctl.SetFineAdjust(true)
	}
}

func (d *Dispatcher) release(a Action) {
	delete(d.held, a)
	switch a {
	case TranslateGrab:
		d.ctl.EndTranslate(d.ctl.Target())
	case RotateGrab:
		d.ctl.EndRotate(d.ctl.Target())
	case FineAdjust:
		d.ctl.SetFineAdjust(false)
	}
}

// rotateDir is +1 for clockwise, -1 for counter-clockwise, 0 when both or
// neither are held.
func (d *Dispatcher) rotateDir() float64 {
	var dir float64
	if d.held[RotateCW] {
		dir++
	}
	if d.held[RotateCCW] {
		dir--
	}
	return dir
}
