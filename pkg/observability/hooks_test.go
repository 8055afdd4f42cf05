package observability

import (
	"testing"

	"github.com/matzehuels/sheetdock/pkg/geom"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	h := NoopInteractionHooks{}
	h.OnFocusChange(1, 2)
	h.OnSessionOpen("s", 1, "translate", 12)
	h.OnSessionClose("s", 1, 40, 3)
	h.OnSnap("s", 1, geom.V(100, 50), 0.1)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Interaction().(NoopInteractionHooks); !ok {
		t.Error("Interaction() should return NoopInteractionHooks by default")
	}

	custom := &testInteractionHooks{}
	SetInteractionHooks(custom)
	if Interaction() != custom {
		t.Error("SetInteractionHooks should set custom hooks")
	}

	// Setting nil keeps the previous hooks.
	SetInteractionHooks(nil)
	if Interaction() != custom {
		t.Error("SetInteractionHooks(nil) should be ignored")
	}

	Interaction().OnSnap("s", 3, geom.V(1, 2), 0)
	if custom.snaps != 1 {
		t.Errorf("snaps = %d, want 1", custom.snaps)
	}

	Reset()
	if _, ok := Interaction().(NoopInteractionHooks); !ok {
		t.Error("Reset() should restore NoopInteractionHooks")
	}
}

type testInteractionHooks struct {
	NoopInteractionHooks
	snaps int
}

func (h *testInteractionHooks) OnSnap(string, int, geom.Vec, float64) { h.snaps++ }
