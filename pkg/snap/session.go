package snap

import (
	"github.com/google/uuid"

	"github.com/matzehuels/sheetdock/pkg/sheet"
)

// Session is the static candidate snapshot of one snapping session.
// It is owned by whoever opened it and must not be read after Close.
type Session struct {
	ID    string
	Sheet sheet.ID

	// StaticLeft holds other sheets' Right-affinity points.
	StaticLeft []sheet.WorldPoint
	// StaticRight holds other sheets' Left-affinity points.
	StaticRight []sheet.WorldPoint

	open    bool
	updates int
	snaps   int
}

// Open snapshots the snap points of every sheet other than moving, in
// registration order, at their committed poses.
func Open(reg *sheet.Registry, moving sheet.ID) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		Sheet: moving,
		open:  true,
	}
	for _, other := range reg.Others(moving) {
		s.StaticRight = append(s.StaticRight, other.TransformedPoints(sheet.Left, nil)...)
		s.StaticLeft = append(s.StaticLeft, other.TransformedPoints(sheet.Right, nil)...)
	}
	return s
}

// IsOpen reports whether the session is still open. A nil session is closed.
func (s *Session) IsOpen() bool { return s != nil && s.open }

// Close ends the session and drops the snapshot.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.open = false
	s.StaticLeft = nil
	s.StaticRight = nil
}

// Candidates returns the total number of static points in the snapshot.
func (s *Session) Candidates() int {
	if s == nil {
		return 0
	}
	return len(s.StaticLeft) + len(s.StaticRight)
}

// Updates returns how many pose updates were resolved in this session.
func (s *Session) Updates() int { return s.updates }

// Snaps returns how many of those updates ended in a correction.
func (s *Session) Snaps() int { return s.snaps }
