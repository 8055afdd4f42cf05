package snap

import (
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/observability"
	"github.com/matzehuels/sheetdock/pkg/sheet"
)

// DefaultThreshold is the per-axis screen-space distance below which two
// points match.
const DefaultThreshold = 20.0

// Match is a docking pair found by the scan.
type Match struct {
	// Still is the stationary sheet's point from the session snapshot.
	Still sheet.WorldPoint
	// Moving is the dragged sheet's point at the hypothetical drag pose.
	Moving sheet.WorldPoint
	// Side is the moving point's affinity.
	Side sheet.Affinity
}

// Result is the outcome of one update.
type Result struct {
	Snapped bool
	Match   Match
	// Rendered is the sheet's pose after the update, in drag-pose form.
	Rendered geom.Pose
}

// Resolver runs the snap search. The zero value uses DefaultThreshold.
type Resolver struct {
	Threshold float64
}

func (r Resolver) threshold() float64 {
	if r.Threshold <= 0 {
		return DefaultThreshold
	}
	return r.Threshold
}

// Find scans the moving sheet's points at the drag pose against the session
// snapshot and returns the first match in scan order.
func (r Resolver) Find(sess *Session, s *sheet.Sheet, drag geom.Pose) (Match, bool) {
	if !sess.IsOpen() {
		return Match{}, false
	}
	tol := r.threshold()

	left := s.TransformedPoints(sheet.Left, &drag)
	if i, j, ok := firstMatch(left, sess.StaticLeft, tol); ok {
		return Match{Still: sess.StaticLeft[j], Moving: left[i], Side: sheet.Left}, true
	}

	right := s.TransformedPoints(sheet.Right, &drag)
	if i, j, ok := firstMatch(right, sess.StaticRight, tol); ok {
		return Match{Still: sess.StaticRight[j], Moving: right[i], Side: sheet.Right}, true
	}

	return Match{}, false
}

// firstMatch returns the first (moving, still) index pair in nested scan order
// whose positions are within tol on both axes.
func firstMatch(moving, still []sheet.WorldPoint, tol float64) (int, int, bool) {
	for i, mp := range moving {
		for j, sp := range still {
			if mp.Pose.Pos.Within(sp.Pose.Pos, tol) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Update resolves one pose update of the dragged sheet s. The sheet is
// rendered at drag and, if a match is found, corrected onto it. drag itself
// is never modified. Without an open session the sheet is simply rendered at
// drag.
func (r Resolver) Update(sess *Session, s *sheet.Sheet, drag geom.Pose) Result {
	m, ok := r.Find(sess, s, drag)
	s.MoveTo(drag)
	if !sess.IsOpen() {
		return Result{Rendered: s.DragPose()}
	}
	sess.updates++
	if !ok {
		return Result{Rendered: s.DragPose()}
	}

	rotDelta := Correct(s, m)
	sess.snaps++
	observability.Interaction().OnSnap(sess.ID, int(s.ID()), m.Still.Pose.Pos, rotDelta)

	return Result{Snapped: true, Match: m, Rendered: s.DragPose()}
}

// Correct moves s so that the matched moving point lands on the still point,
// rotating first and translating second. It returns the applied rotation.
func Correct(s *sheet.Sheet, m Match) float64 {
	still := m.Still.Pose
	moving := s.PointWorld(m.Moving.Point)

	rotDelta := still.Rot - moving.Rot
	s.Rotation += rotDelta

	// The rotation displaced the point; measure it again before translating.
	moving = s.PointWorld(m.Moving.Point)
	s.Position = s.Position.Add(still.Pos.Sub(moving.Pos))

	return rotDelta
}
