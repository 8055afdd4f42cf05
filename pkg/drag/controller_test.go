package drag

import (
	"math"
	"testing"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/observability"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/snap"
)

// addPoint gives s a one-line block whose only snap point sits at pointLocal
// in the sheet's frame.
func addPoint(s *sheet.Sheet, aff sheet.Affinity, pointLocal geom.Vec) {
	offset := geom.V(10+sheet.DefaultClearance, 5)
	if aff == sheet.Right {
		offset = geom.V(-sheet.DefaultClearance, 5)
	}
	b := sheet.NewTextBlock("t", "x", aff, sheet.Placement{})
	s.AddBlock(b)
	b.Finalize([]string{"x"}, geom.V(10, 10), 10, geom.Translation(pointLocal.Sub(offset)), sheet.DefaultClearance)
}

type fixture struct {
	reg  *sheet.Registry
	ctl  *Controller
	a, b *sheet.Sheet
}

// newFixture registers two plain 50x50 sheets, A at the origin and B at
// (200, 0), and attaches a controller.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{reg: sheet.NewRegistry()}
	f.a = sheet.New("A", geom.V(50, 50))
	f.b = sheet.New("B", geom.V(50, 50))
	f.b.Position = geom.V(200, 0)
	f.reg.Register(f.a)
	f.reg.Register(f.b)

	ctl, err := New(f.reg, snap.Resolver{}, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(ctl.Close)
	f.ctl = ctl
	return f
}

func TestNewRejectsSecondController(t *testing.T) {
	reg := sheet.NewRegistry()
	first, err := New(reg, snap.Resolver{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = New(reg, snap.Resolver{})
	if !errors.Is(err, errors.ErrCodeDuplicate) {
		t.Fatalf("second New() error = %v, want %s", err, errors.ErrCodeDuplicate)
	}

	first.Close()
	second, err := New(reg, snap.Resolver{})
	if err != nil {
		t.Fatalf("New() after Close error: %v", err)
	}
	second.Close()

	if _, err := New(nil, snap.Resolver{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestBeginRequiresPointerFocus(t *testing.T) {
	tests := []struct {
		name   string
		enterB bool
		rotate bool
	}{
		{"translate without focus", false, false},
		{"translate on other sheet", true, false},
		{"rotate without focus", false, true},
		{"rotate on other sheet", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.enterB {
				f.ctl.PointerEnter(f.b.ID())
			}
			if tt.rotate {
				f.ctl.BeginRotate(f.a.ID())
			} else {
				f.ctl.BeginTranslate(f.a.ID())
			}

			if f.ctl.Mode() != Idle {
				t.Errorf("Mode() = %v, want idle", f.ctl.Mode())
			}
			if f.ctl.SessionOpen() {
				t.Error("session opened without pointer focus")
			}
			if f.ctl.Target() != sheet.None {
				t.Errorf("Target() = %d, want none", f.ctl.Target())
			}
		})
	}
}

func TestBeginWhileBusyIgnored(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())
	sess := f.ctl.Session()

	f.ctl.BeginRotate(f.a.ID())
	if f.ctl.Mode() != Translating {
		t.Errorf("Mode() = %v, want translating", f.ctl.Mode())
	}
	if f.ctl.Session() != sess {
		t.Error("session replaced by a second begin")
	}
}

func TestTranslateFollowsPointer(t *testing.T) {
	tests := []struct {
		name string
		fine bool
		want geom.Vec
	}{
		{"normal", false, geom.V(45, 30)},
		{"fine adjust", true, geom.V(27, 25.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.ctl.PointerMoved(geom.V(10, 10))
			f.ctl.PointerEnter(f.a.ID())
			f.ctl.BeginTranslate(f.a.ID())
			f.ctl.SetFineAdjust(tt.fine)
			f.ctl.PointerMoved(geom.V(30, 15))

			if got := f.ctl.DragPose().Pos; !geom.Near(got, tt.want, 1e-9) {
				t.Errorf("drag pos = %v, want %v", got, tt.want)
			}
			if got := f.a.DragPose().Pos; !geom.Near(got, tt.want, 1e-9) {
				t.Errorf("sheet pivot = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateDragUsesVerticalDelta(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginRotate(f.a.ID())
	f.ctl.PointerMoved(geom.V(500, 30))

	if got := geom.Deg(f.a.Rotation); math.Abs(got-30) > 1e-9 {
		t.Errorf("rotation = %v°, want 30°", got)
	}
	if got := f.a.DragPose().Pos; got != geom.V(25, 25) {
		t.Errorf("pivot moved to %v", got)
	}
}

func TestPointerMovedWhileIdleOnlyTracksCursor(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.PointerMoved(geom.V(40, 40))

	if f.a.Position != (geom.Vec{}) {
		t.Errorf("idle pointer motion moved the sheet to %v", f.a.Position)
	}
	if f.ctl.Cursor() != geom.V(40, 40) {
		t.Errorf("Cursor() = %v, want (40, 40)", f.ctl.Cursor())
	}
}

func TestEndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())

	f.ctl.End(f.a.ID())
	focus, pointer := f.ctl.Focus(), f.ctl.PointerFocus()

	f.ctl.End(f.a.ID())
	if f.ctl.Mode() != Idle {
		t.Errorf("Mode() = %v, want idle", f.ctl.Mode())
	}
	if f.ctl.Focus() != focus || f.ctl.PointerFocus() != pointer {
		t.Errorf("focus changed by second End: %d/%d, want %d/%d",
			f.ctl.Focus(), f.ctl.PointerFocus(), focus, pointer)
	}
	if f.ctl.SessionOpen() {
		t.Error("session still open after End")
	}
}

func TestOnlyTargetCanEnd(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())

	f.ctl.End(f.b.ID())
	f.ctl.EndRotate(f.a.ID())
	if f.ctl.Mode() != Translating || f.ctl.Target() != f.a.ID() {
		t.Fatalf("state = %v/%d, want translating/%d", f.ctl.Mode(), f.ctl.Target(), f.a.ID())
	}

	f.ctl.EndTranslate(f.a.ID())
	if f.ctl.Mode() != Idle || f.ctl.Target() != sheet.None {
		t.Errorf("state = %v/%d, want idle/none", f.ctl.Mode(), f.ctl.Target())
	}
}

func TestDragFocusWins(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())

	f.ctl.PointerExit(f.a.ID())
	f.ctl.PointerEnter(f.b.ID())
	if f.ctl.Focus() != f.a.ID() {
		t.Errorf("Focus() = %d, want drag target %d", f.ctl.Focus(), f.a.ID())
	}
	if !f.ctl.HasFocus(f.a.ID()) || f.ctl.HasFocus(f.b.ID()) {
		t.Error("HasFocus disagrees with Focus")
	}

	f.ctl.End(f.a.ID())
	if f.ctl.Focus() != f.b.ID() {
		t.Errorf("Focus() after End = %d, want pointer focus %d", f.ctl.Focus(), f.b.ID())
	}
}

func TestStaleExitIgnored(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.PointerEnter(f.b.ID())
	f.ctl.PointerExit(f.a.ID())

	if f.ctl.PointerFocus() != f.b.ID() {
		t.Errorf("PointerFocus() = %d, want %d", f.ctl.PointerFocus(), f.b.ID())
	}

	f.ctl.PointerExit(f.b.ID())
	if f.ctl.Focus() != sheet.None {
		t.Errorf("Focus() = %d, want none", f.ctl.Focus())
	}
}

func TestPointerEnterSeedsDragPose(t *testing.T) {
	f := newFixture(t)
	f.b.Rotation = geom.Rad(15)
	f.ctl.PointerEnter(f.b.ID())

	if got, want := f.ctl.DragPose(), f.b.DragPose(); got != want {
		t.Errorf("DragPose() = %v, want %v", got, want)
	}

	// Entering another sheet during a drag does not reseed.
	f.ctl.BeginTranslate(f.b.ID())
	f.ctl.PointerEnter(f.a.ID())
	if got, want := f.ctl.DragPose(), f.b.DragPose(); got != want {
		t.Errorf("DragPose() = %v, want the drag target's %v", got, want)
	}
}

func TestRotateRequiresFocus(t *testing.T) {
	f := newFixture(t)
	f.ctl.Rotate(1)
	if f.ctl.SessionOpen() {
		t.Error("Rotate without focus opened a session")
	}
	if f.a.Rotation != 0 || f.b.Rotation != 0 {
		t.Error("Rotate without focus turned a sheet")
	}
}

func TestRotateSpeed(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		fine  bool
		delta float64
		want  float64
	}{
		{"default", nil, false, 0.5, 50},
		{"fine adjust", nil, true, 0.5, 5},
		{"counter-clockwise", nil, false, -0.25, -25},
		{"custom speed", []Option{WithRotationSpeed(90)}, false, 1, 90},
		{"non-positive speed ignored", []Option{WithRotationSpeed(0)}, false, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.opts...)
			f.ctl.PointerEnter(f.a.ID())
			f.ctl.SetFineAdjust(tt.fine)
			f.ctl.Rotate(tt.delta)

			if got := geom.Deg(f.a.Rotation); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("rotation = %v°, want %v°", got, tt.want)
			}
		})
	}
}

func TestFineFactorOption(t *testing.T) {
	f := newFixture(t, WithFineFactor(0.5))
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())
	f.ctl.SetFineAdjust(true)
	f.ctl.PointerMoved(geom.V(10, 0))

	if got := f.a.Position; got != geom.V(5, 0) {
		t.Errorf("Position = %v, want (5, 0)", got)
	}
}

func TestRotateBracketClosesAfterIdleTick(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())

	for tick := 1; tick <= 3; tick++ {
		f.ctl.Rotate(0.05)
		f.ctl.Advance()
		if !f.ctl.SessionOpen() {
			t.Fatalf("tick %d: session closed, want open", tick)
		}
	}

	f.ctl.Advance()
	if f.ctl.SessionOpen() {
		t.Error("tick 4: session open, want closed")
	}
	if f.ctl.Tick() != 4 {
		t.Errorf("Tick() = %d, want 4", f.ctl.Tick())
	}
}

func TestRotateBracketFoldsIntoOneSession(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())

	f.ctl.Rotate(0.05)
	sess := f.ctl.Session()
	f.ctl.Advance()
	f.ctl.Rotate(0.05)
	f.ctl.Rotate(0.05)
	if f.ctl.Session() != sess {
		t.Error("repeated Rotate opened a new session")
	}
}

func TestBracketOutlivesDragEnd(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())
	f.ctl.Rotate(0.1)
	f.ctl.End(f.a.ID())

	if !f.ctl.SessionOpen() {
		t.Fatal("session closed while the rotate bracket holds it")
	}
	f.ctl.Advance()
	if !f.ctl.SessionOpen() {
		t.Fatal("session closed in the tick it was stamped")
	}
	f.ctl.Advance()
	if f.ctl.SessionOpen() {
		t.Error("session still open after an idle tick")
	}
}

func TestDragOutlivesBracket(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())
	f.ctl.Rotate(0.1)
	f.ctl.Advance()
	f.ctl.Advance()

	if !f.ctl.SessionOpen() {
		t.Error("bracket expiry closed the drag's session")
	}
}

func TestRotateOnNewFocusReplacesBracket(t *testing.T) {
	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.Rotate(0.3)
	first := f.ctl.Session()

	f.ctl.PointerEnter(f.b.ID())
	f.ctl.Rotate(0.3)

	if first.IsOpen() {
		t.Error("bracket session of the previous sheet left open")
	}
	if s := f.ctl.Session(); s == nil || s.Sheet != f.b.ID() {
		t.Fatalf("Session() = %+v, want one for sheet %d", s, f.b.ID())
	}
	if got := geom.Deg(f.b.Rotation); math.Abs(got-30) > 1e-9 {
		t.Errorf("B rotation = %v°, want 30°", got)
	}
	if got := geom.Deg(f.a.Rotation); math.Abs(got-30) > 1e-9 {
		t.Errorf("A rotation = %v°, want 30°", got)
	}
}

func TestTranslateSnapsWithoutTouchingDragPose(t *testing.T) {
	reg := sheet.NewRegistry()
	a := sheet.New("A", geom.V(200, 100))
	a.Pivot = geom.Vec{}
	addPoint(a, sheet.Right, geom.V(100, 50))
	b := sheet.New("B", geom.V(50, 50))
	addPoint(b, sheet.Left, geom.V(40, 30))
	b.Position = geom.V(45, 23) // point at (85, 53)
	reg.Register(a)
	reg.Register(b)

	ctl, err := New(reg, snap.Resolver{Threshold: 20})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer ctl.Close()

	ctl.PointerEnter(b.ID())
	ctl.BeginTranslate(b.ID())
	ctl.PointerMoved(geom.V(20, 0)) // point at (105, 53)

	if !ctl.LastResult().Snapped {
		t.Fatal("expected a snap")
	}
	if got := b.TransformedPoints(sheet.Left, nil)[0].Pose.Pos; got != geom.V(100, 50) {
		t.Errorf("B's point = %v, want (100, 50)", got)
	}
	if got := ctl.DragPose().Pos; got != geom.V(90, 48) {
		t.Errorf("drag pose = %v, want raw (90, 48)", got)
	}

	ctl.PointerMoved(geom.V(120, 0))
	if ctl.LastResult().Snapped {
		t.Error("still snapped after leaving the threshold")
	}
	if got := b.DragPose().Pos; got != geom.V(190, 48) {
		t.Errorf("B pivot = %v, want (190, 48)", got)
	}
}

type recordingHooks struct {
	observability.NoopInteractionHooks
	opened  []string
	closed  int
	focus   []int
	snapped int
}

func (h *recordingHooks) OnSessionOpen(_ string, _ int, reason string, _ int) {
	h.opened = append(h.opened, reason)
}
func (h *recordingHooks) OnSessionClose(string, int, int, int)  { h.closed++ }
func (h *recordingHooks) OnFocusChange(_, effective int)        { h.focus = append(h.focus, effective) }
func (h *recordingHooks) OnSnap(string, int, geom.Vec, float64) { h.snapped++ }

func TestHooksEmitted(t *testing.T) {
	h := &recordingHooks{}
	observability.SetInteractionHooks(h)
	t.Cleanup(observability.Reset)

	f := newFixture(t)
	f.ctl.PointerEnter(f.a.ID())
	f.ctl.BeginTranslate(f.a.ID())
	f.ctl.End(f.a.ID())
	f.ctl.BeginRotate(f.a.ID())
	f.ctl.End(f.a.ID())
	f.ctl.Rotate(0.1)
	f.ctl.Advance()
	f.ctl.Advance()
	f.ctl.PointerExit(f.a.ID())

	want := []string{"translate", "rotate", "key-rotate"}
	if len(h.opened) != len(want) {
		t.Fatalf("opened = %v, want %v", h.opened, want)
	}
	for i := range want {
		if h.opened[i] != want[i] {
			t.Errorf("opened[%d] = %q, want %q", i, h.opened[i], want[i])
		}
	}
	if h.closed != 3 {
		t.Errorf("closed = %d, want 3", h.closed)
	}
	if len(h.focus) != 2 || h.focus[0] != int(f.a.ID()) || h.focus[1] != 0 {
		t.Errorf("focus changes = %v, want [%d 0]", h.focus, f.a.ID())
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Idle, "idle"},
		{Translating, "translating"},
		{Rotating, "rotating"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
