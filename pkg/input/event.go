// Package input turns raw pointer and key events into drag controller calls.
//
// A host feeds one [Dispatcher.Frame] per tick with the events that arrived
// since the last tick. Frame applies them in arrival order, then applies
// held-key rotation scaled by the elapsed time, then advances the
// controller's tick. Pointer positions are hit-tested against the registry to
// produce pointer enter and exit calls.
package input

import (
	"strings"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
)

// Action is a named input action.
type Action int

const (
	TranslateGrab Action = iota + 1
	RotateGrab
	RotateCW
	RotateCCW
	FineAdjust
)

var actionNames = map[Action]string{
	TranslateGrab: "translate-grab",
	RotateGrab:    "rotate-grab",
	RotateCW:      "rotate-cw",
	RotateCCW:     "rotate-ccw",
	FineAdjust:    "fine-adjust",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAction parses an action name such as "rotate-cw".
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown action %q", s)
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Event is one input event.
type Event interface {
	isEvent()
}

// PointerMoved reports a new pointer position in world coordinates.
type PointerMoved struct {
	Pos geom.Vec
}

// ActionPressed reports that an action started.
type ActionPressed struct {
	Action Action
}

// ActionReleased reports that an action stopped.
type ActionReleased struct {
	Action Action
}

func (PointerMoved) isEvent()   {}
func (ActionPressed) isEvent()  {}
func (ActionReleased) isEvent() {}
