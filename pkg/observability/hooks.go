// Package observability provides hooks for logging and metrics of the drag
// and snap interaction.
//
// The core packages (drag, snap) stay free of any logging backend. They call
// these hooks at interesting moments, and the composition root registers an
// implementation at startup:
//
//	func main() {
//	    observability.SetInteractionHooks(&logHooks{logger: l})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Interaction().OnSessionOpen(sess.ID, int(sheetID), "translate", n)
//
// All hooks default to no-ops.
package observability

import (
	"sync"

	"github.com/matzehuels/sheetdock/pkg/geom"
)

// =============================================================================
// Interaction Hooks
// =============================================================================

// InteractionHooks receives events from the drag controller and snap resolver.
// Sheet IDs are passed as plain ints so this package does not depend on the
// sheet model.
type InteractionHooks interface {
	// OnFocusChange records a change of pointer or effective focus.
	OnFocusChange(pointer, effective int)

	// OnSessionOpen records a snapping session opening for sheet. reason is
	// "translate", "rotate" or "key-rotate"; candidates is the size of the
	// static candidate snapshot.
	OnSessionOpen(session string, sheet int, reason string, candidates int)

	// OnSessionClose records a snapping session closing after updates pose
	// updates, snaps of which ended in a correction.
	OnSessionClose(session string, sheet int, updates, snaps int)

	// OnSnap records a correction onto the still point at.
	OnSnap(session string, sheet int, at geom.Vec, rotDelta float64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnFocusChange(int, int)                 {}
func (NoopInteractionHooks) OnSessionOpen(string, int, string, int) {}
func (NoopInteractionHooks) OnSessionClose(string, int, int, int)   {}
func (NoopInteractionHooks) OnSnap(string, int, geom.Vec, float64)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	interactionHooks InteractionHooks = NoopInteractionHooks{}
	hooksMu          sync.RWMutex
)

// SetInteractionHooks registers custom interaction hooks.
// This should be called once at application startup before any sheets move.
func SetInteractionHooks(h InteractionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		interactionHooks = h
	}
}

// Interaction returns the registered interaction hooks.
func Interaction() InteractionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return interactionHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	interactionHooks = NoopInteractionHooks{}
}
