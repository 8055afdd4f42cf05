package sheet

import (
	"github.com/matzehuels/sheetdock/pkg/geom"
)

// BlockRef is a non-owning handle to a text block: the owning sheet's ID and
// the block's index within that sheet. Resolve it through [Registry.Block].
type BlockRef struct {
	Sheet ID
	Block int
}

// SnapPoint is a candidate alignment location generated for one text line.
// Local is expressed in the owning block's frame. Index is the point's
// position in the block's combined point list.
type SnapPoint struct {
	Local geom.Pose
	Index int
	Block BlockRef
}

// TextBlock is a rectangular region of a sheet holding text, tagged with a
// side affinity. Its layout is finalised once its rendered size is known;
// until then it exposes no snap points.
type TextBlock struct {
	Name      string
	Text      string
	Affinity  Affinity
	Placement Placement

	ref        BlockRef
	lines      []string
	size       geom.Vec
	local      geom.Pose
	points     []SnapPoint
	rightStart int
	laidOut    bool
}

// NewTextBlock returns an unplaced block.
func NewTextBlock(name, text string, aff Affinity, pl Placement) *TextBlock {
	return &TextBlock{
		Name:      name,
		Text:      text,
		Affinity:  aff,
		Placement: pl,
	}
}

// Ref returns the block's handle.
func (b *TextBlock) Ref() BlockRef { return b.ref }

// Lines returns the display lines recorded at layout time.
func (b *TextBlock) Lines() []string { return b.lines }

// Size returns the block extent recorded at layout time.
func (b *TextBlock) Size() geom.Vec { return b.size }

// Local returns the block's pose within its sheet.
func (b *TextBlock) Local() geom.Pose { return b.local }

// LaidOut reports whether Finalize has run.
func (b *TextBlock) LaidOut() bool { return b.laidOut }

// Finalize records the block's layout and regenerates its snap points. It is
// the single layout hook: points are built here and nowhere else.
//
// One point is generated per line, centred vertically in the line's band and
// offset horizontally by clearance past the far edge (Left) or before the
// near edge (Right). Both blocks get the Left set followed by the Right set.
func (b *TextBlock) Finalize(lines []string, size geom.Vec, pitch float64, local geom.Pose, clearance float64) {
	b.lines = lines
	b.size = size
	b.local = local
	b.rightStart = 0

	n := len(lines)
	// Fresh slice: slices handed out by PointsFor stay valid after re-layout.
	b.points = make([]SnapPoint, 0, 2*n)
	switch b.Affinity {
	case Left:
		b.appendSide(Left, n, pitch, clearance)
	case Right:
		b.appendSide(Right, n, pitch, clearance)
	case Both:
		b.appendSide(Left, n, pitch, clearance)
		b.rightStart = len(b.points)
		b.appendSide(Right, n, pitch, clearance)
	}
	b.laidOut = true
}

func (b *TextBlock) appendSide(side Affinity, lines int, pitch, clearance float64) {
	x := b.size.X + clearance
	if side == Right {
		x = -clearance
	}
	for i := 0; i < lines; i++ {
		b.points = append(b.points, SnapPoint{
			Local: geom.Translation(geom.V(x, (float64(i)+0.5)*pitch)),
			Index: len(b.points),
			Block: b.ref,
		})
	}
}

// Points returns every snap point of the block in generation order.
func (b *TextBlock) Points() []SnapPoint { return b.points }

// PointsFor returns the block's points for the requested side, or nil when
// the block has none of that affinity.
//
// A Both query returns every point. A Both block queried for one side returns
// only that side's slice. A single-affinity block returns its points only for
// its own affinity.
func PointsFor(b *TextBlock, side Affinity) []SnapPoint {
	if b == nil || !b.laidOut || len(b.points) == 0 {
		return nil
	}
	switch {
	case side == Both:
		return b.points
	case b.Affinity == Both:
		if side == Left {
			return b.points[:b.rightStart:b.rightStart]
		}
		return b.points[b.rightStart:]
	case b.Affinity == side:
		return b.points
	}
	return nil
}

// bind updates the block's handle and the back-references of its points.
func (b *TextBlock) bind(ref BlockRef) {
	b.ref = ref
	for i := range b.points {
		b.points[i].Block = ref
	}
}
