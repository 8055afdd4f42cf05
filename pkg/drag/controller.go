// Package drag implements the focus and drag state machine that decides which
// sheet owns the interaction, accumulates the floating drag pose from raw
// input, and brackets snapping sessions.
//
// A Controller is attached to exactly one [sheet.Registry]; constructing a
// second controller for the same registry fails. All methods are meant to be
// called from a single goroutine and never block. Preconditions that do not
// hold turn a call into a silent no-op.
//
// Sessions are opened in two ways:
//
//   - BeginTranslate/BeginRotate open a session that lasts until the target
//     ends it.
//   - Rotate opens a session (if none is open) and stamps it with the current
//     tick. Advance closes it once a whole tick passes without a Rotate call.
//
// Both can overlap on the same sheet; the session closes when neither holds it.
package drag

import (
	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/observability"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/snap"
)

// Mode is the controller's interaction mode.
type Mode int

const (
	Idle Mode = iota
	Translating
	Rotating
)

func (m Mode) String() string {
	switch m {
	case Translating:
		return "translating"
	case Rotating:
		return "rotating"
	}
	return "idle"
}

// Controller tracks pointer and drag focus, the floating drag pose, and the
// current snapping session.
type Controller struct {
	reg      *sheet.Registry
	resolver snap.Resolver

	rotationSpeed float64
	fineFactor    float64

	mode    Mode
	target  sheet.ID
	pointer sheet.ID
	fine    bool

	drag   geom.Pose
	cursor geom.Vec

	session *snap.Session
	last    snap.Result

	// Discrete-rotate bracket. lastRotate is the tick of the latest Rotate.
	bracket      bool
	bracketSheet sheet.ID
	lastRotate   uint64
	tick         uint64
}

// New attaches a controller to reg. It fails with ErrCodeDuplicate if reg
// already has one; call Close to detach.
func New(reg *sheet.Registry, resolver snap.Resolver, opts ...Option) (*Controller, error) {
	if reg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil registry")
	}
	if !reg.ClaimController() {
		return nil, errors.New(errors.ErrCodeDuplicate, "registry already has a drag controller")
	}
	c := &Controller{
		reg:           reg,
		resolver:      resolver,
		rotationSpeed: DefaultRotationSpeed,
		fineFactor:    DefaultFineFactor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close ends any session and detaches the controller from its registry.
func (c *Controller) Close() {
	c.mode = Idle
	c.target = sheet.None
	c.bracket = false
	c.bracketSheet = sheet.None
	c.closeSession()
	c.reg.ReleaseController()
}

// =============================================================================
// Queries
// =============================================================================

// Focus returns the effective focus: the drag target if set, else the pointer
// focus.
func (c *Controller) Focus() sheet.ID {
	if c.target != sheet.None {
		return c.target
	}
	return c.pointer
}

// HasFocus reports whether id is the effective focus.
func (c *Controller) HasFocus(id sheet.ID) bool {
	return id != sheet.None && c.Focus() == id
}

func (c *Controller) Mode() Mode             { return c.mode }
func (c *Controller) Target() sheet.ID       { return c.target }
func (c *Controller) PointerFocus() sheet.ID { return c.pointer }
func (c *Controller) DragPose() geom.Pose    { return c.drag }
func (c *Controller) FineAdjust() bool       { return c.fine }
func (c *Controller) Tick() uint64           { return c.tick }
func (c *Controller) SessionOpen() bool      { return c.session.IsOpen() }

// Session returns the open snapping session, or nil.
func (c *Controller) Session() *snap.Session {
	if !c.session.IsOpen() {
		return nil
	}
	return c.session
}

// LastResult returns the outcome of the most recent pose update.
func (c *Controller) LastResult() snap.Result { return c.last }

// =============================================================================
// Pointer focus
// =============================================================================

// PointerEnter records that the pointer now overlaps sheet id. If id thereby
// becomes the effective focus, the drag pose is seeded from its committed pose.
func (c *Controller) PointerEnter(id sheet.ID) {
	if id == sheet.None || c.pointer == id {
		return
	}
	before := c.Focus()
	c.pointer = id
	if c.Focus() == id {
		if s := c.reg.Get(id); s != nil {
			c.drag = s.DragPose()
		}
	}
	c.focusChanged(before)
}

// PointerExit clears pointer focus if it still names id.
func (c *Controller) PointerExit(id sheet.ID) {
	if id == sheet.None || c.pointer != id {
		return
	}
	before := c.Focus()
	c.pointer = sheet.None
	c.focusChanged(before)
}

// PointerMoved feeds a new pointer position. While translating, the drag pose
// follows the pointer delta; while rotating, the vertical delta turns it by
// one degree per pixel. Both are scaled down under fine adjust.
func (c *Controller) PointerMoved(pos geom.Vec) {
	delta := pos.Sub(c.cursor)
	c.cursor = pos

	switch c.mode {
	case Translating:
		c.drag.Pos = c.drag.Pos.Add(delta.Scale(c.dragSpeed()))
	case Rotating:
		c.drag.Rot += geom.Rad(delta.Y * c.dragSpeed())
	default:
		return
	}
	c.resolve(c.target)
}

// Cursor returns the last pointer position seen.
func (c *Controller) Cursor() geom.Vec { return c.cursor }

// SetFineAdjust sets the fine-adjust modifier.
func (c *Controller) SetFineAdjust(on bool) { c.fine = on }

func (c *Controller) dragSpeed() float64 {
	if c.fine {
		return c.fineFactor
	}
	return 1
}

// =============================================================================
// Drag sessions
// =============================================================================

// BeginTranslate starts translating id. It is ignored unless the controller
// is idle and id has pointer focus.
func (c *Controller) BeginTranslate(id sheet.ID) { c.begin(id, Translating) }

// BeginRotate starts rotate-dragging id under the same guard as BeginTranslate.
func (c *Controller) BeginRotate(id sheet.ID) { c.begin(id, Rotating) }

func (c *Controller) begin(id sheet.ID, mode Mode) {
	if c.mode != Idle || id == sheet.None || id != c.pointer {
		return
	}
	s := c.reg.Get(id)
	if s == nil {
		return
	}
	before := c.Focus()
	c.mode = mode
	c.target = id
	c.drag = s.DragPose()
	reason := "translate"
	if mode == Rotating {
		reason = "rotate"
	}
	c.openSession(id, reason)
	c.focusChanged(before)
}

// End ends the drag session of id. Only the current target can end it, and
// ending twice is harmless. The snapping session stays open while a discrete
// rotate bracket still holds it.
func (c *Controller) End(id sheet.ID) {
	if c.mode == Idle || id != c.target {
		return
	}
	before := c.Focus()
	c.mode = Idle
	c.target = sheet.None
	if !c.bracket {
		c.closeSession()
	}
	c.focusChanged(before)
}

// EndTranslate ends a translate session of id.
func (c *Controller) EndTranslate(id sheet.ID) {
	if c.mode == Translating {
		c.End(id)
	}
}

// EndRotate ends a rotate-drag session of id.
func (c *Controller) EndRotate(id sheet.ID) {
	if c.mode == Rotating {
		c.End(id)
	}
}

// =============================================================================
// Discrete rotation
// =============================================================================

// Rotate turns the focused sheet by rotationSpeed×delta degrees, where delta
// is a signed time step in seconds. It is ignored without focus.
func (c *Controller) Rotate(delta float64) {
	id := c.Focus()
	if id == sheet.None {
		return
	}
	s := c.reg.Get(id)
	if s == nil {
		return
	}

	fresh := !c.bracket || c.bracketSheet != id
	if fresh && c.mode == Idle {
		c.drag = s.DragPose()
	}
	speed := c.rotationSpeed
	if c.fine {
		speed /= 10
	}
	c.drag.Rot += geom.Rad(speed * delta)

	if fresh {
		c.openSession(id, "key-rotate")
		c.bracket = true
		c.bracketSheet = id
	}
	c.lastRotate = c.tick
	c.resolve(id)
}

// Advance runs the per-tick reconciliation and moves to the next tick. A
// discrete-rotate bracket whose last Rotate is older than the current tick is
// released, closing the session unless a drag still holds it.
func (c *Controller) Advance() {
	if c.bracket && c.lastRotate < c.tick {
		c.bracket = false
		c.bracketSheet = sheet.None
		if c.mode == Idle {
			c.closeSession()
		}
	}
	c.tick++
}

// =============================================================================
// Internals
// =============================================================================

// openSession opens a snapping session for id. A request while a session for
// the same sheet is open is folded into it. A session for another sheet can
// only be a leftover bracket, which is released first.
func (c *Controller) openSession(id sheet.ID, reason string) {
	if c.session.IsOpen() {
		if c.session.Sheet == id {
			return
		}
		c.bracket = false
		c.closeSession()
	}
	mustHold(!c.session.IsOpen(), "second snap session opened for sheet %d", id)

	c.session = snap.Open(c.reg, id)
	observability.Interaction().OnSessionOpen(c.session.ID, int(id), reason, c.session.Candidates())
}

func (c *Controller) closeSession() {
	if !c.session.IsOpen() {
		c.session = nil
		return
	}
	sess := c.session
	observability.Interaction().OnSessionClose(sess.ID, int(sess.Sheet), sess.Updates(), sess.Snaps())
	sess.Close()
	c.session = nil
}

func (c *Controller) resolve(id sheet.ID) {
	s := c.reg.Get(id)
	if s == nil {
		return
	}
	mustHold(c.target == sheet.None || c.target == id, "resolving sheet %d while %d is the target", id, c.target)
	c.last = c.resolver.Update(c.session, s, c.drag)
}

func (c *Controller) focusChanged(before sheet.ID) {
	if after := c.Focus(); after != before {
		observability.Interaction().OnFocusChange(int(c.pointer), int(after))
	}
}
