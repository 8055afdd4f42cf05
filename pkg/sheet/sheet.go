package sheet

import (
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

// ID identifies a registered sheet. The zero ID means "no sheet".
type ID int

// None is the zero ID.
const None ID = 0

// Sheet is a positionable, rotatable rectangle hosting text blocks.
//
// Position is the world position of the sheet's unrotated top-left corner and
// Rotation (radians) turns the sheet about Pivot, a point in sheet-local
// coordinates. Together they are the committed pose.
type Sheet struct {
	Name     string
	Size     geom.Vec
	Position geom.Vec
	Rotation float64
	Pivot    geom.Vec

	blocks []*TextBlock
	id     ID
}

// New returns an unregistered sheet pivoting about its centre.
func New(name string, size geom.Vec) *Sheet {
	return &Sheet{
		Name:  name,
		Size:  size,
		Pivot: size.Scale(0.5),
	}
}

// ID returns the registry ID, or None before registration.
func (s *Sheet) ID() ID { return s.id }

// Blocks returns the sheet's text blocks in collection order.
func (s *Sheet) Blocks() []*TextBlock { return s.blocks }

// Block returns the i-th block, or nil when out of range.
func (s *Sheet) Block(i int) *TextBlock {
	if i < 0 || i >= len(s.blocks) {
		return nil
	}
	return s.blocks[i]
}

// AddBlock appends b to the sheet. The block is not laid out until Layout runs.
func (s *Sheet) AddBlock(b *TextBlock) {
	b.bind(BlockRef{Sheet: s.id, Block: len(s.blocks)})
	s.blocks = append(s.blocks, b)
}

// Layout measures every block, places it on the sheet and finalises its snap
// points.
func (s *Sheet) Layout(m textlayout.Measurer, clearance float64) {
	for _, b := range s.blocks {
		lines := textlayout.Lines(b.Text)
		size := m.Measure(lines)
		local := PlaceBlock(s.Size, size, b.Affinity, b.Placement, clearance)
		b.Finalize(lines, size, m.LinePitch(), local, clearance)
	}
}

// =============================================================================
// Poses
// =============================================================================

// Transform returns the sheet-to-world transform at the committed pose.
func (s *Sheet) Transform() geom.Pose {
	return geom.PivotPose(s.Position.Add(s.Pivot), s.Rotation, s.Pivot)
}

// TransformAt returns the sheet-to-world transform the sheet would have if its
// pivot sat at drag.Pos with rotation drag.Rot.
func (s *Sheet) TransformAt(drag geom.Pose) geom.Pose {
	return geom.PivotPose(drag.Pos, drag.Rot, s.Pivot)
}

// DragPose returns the committed pose in drag-pose form: the pivot's world
// position and the rotation.
func (s *Sheet) DragPose() geom.Pose {
	return geom.Pose{Pos: s.Position.Add(s.Pivot), Rot: s.Rotation}
}

// MoveTo renders the sheet exactly at a drag pose, keeping the pivot.
func (s *Sheet) MoveTo(drag geom.Pose) {
	s.Position = drag.Pos.Sub(s.Pivot)
	s.Rotation = drag.Rot
}

// Contains reports whether the world point p lies on the sheet.
func (s *Sheet) Contains(p geom.Vec) bool {
	l := s.Transform().Inverse().Apply(p)
	return l.X >= 0 && l.Y >= 0 && l.X < s.Size.X && l.Y < s.Size.Y
}

// Corners returns the sheet's world-space corners clockwise from top-left.
func (s *Sheet) Corners() [4]geom.Vec {
	t := s.Transform()
	return [4]geom.Vec{
		t.Apply(geom.V(0, 0)),
		t.Apply(geom.V(s.Size.X, 0)),
		t.Apply(s.Size),
		t.Apply(geom.V(0, s.Size.Y)),
	}
}

// =============================================================================
// Snap points in world space
// =============================================================================

// WorldPoint is a snap point carried into world space.
type WorldPoint struct {
	Pose  geom.Pose
	Point SnapPoint
}

// TransformedPoints returns the world poses of the sheet's snap points for
// side, scanning blocks in collection order and points in generation order.
//
// With at nil the committed pose is used; otherwise the points are placed as
// if the sheet sat at the hypothetical drag pose *at.
func (s *Sheet) TransformedPoints(side Affinity, at *geom.Pose) []WorldPoint {
	t := s.Transform()
	if at != nil {
		t = s.TransformAt(*at)
	}
	var out []WorldPoint
	for _, b := range s.blocks {
		pts := PointsFor(b, side)
		if len(pts) == 0 {
			continue
		}
		bt := geom.Compose(t, b.local)
		for _, p := range pts {
			out = append(out, WorldPoint{
				Pose:  geom.Compose(bt, p.Local),
				Point: p,
			})
		}
	}
	return out
}

// PointWorld returns the world pose of a single snap point of this sheet at
// the committed pose.
func (s *Sheet) PointWorld(p SnapPoint) geom.Pose {
	b := s.Block(p.Block.Block)
	if b == nil {
		return geom.Identity()
	}
	return geom.Compose(s.Transform(), geom.Compose(b.local, p.Local))
}

func (s *Sheet) bind(id ID) {
	s.id = id
	for i, b := range s.blocks {
		b.bind(BlockRef{Sheet: id, Block: i})
	}
}
