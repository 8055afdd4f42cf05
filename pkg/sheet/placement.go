package sheet

import (
	"math"

	"github.com/matzehuels/sheetdock/pkg/geom"
)

// DefaultClearance is the gap between a block's text and its snap points,
// and between an edge block and the sheet border.
const DefaultClearance = 2.0

// Placement describes where a block sits on its sheet.
//
// Edge sides use HalfPosition, the distance along the edge measured in the
// edge's reading direction. Internal blocks use Position as an anchor and
// Rotation (degrees) as their orientation; the block is pushed clear of the
// anchor towards its own half.
type Placement struct {
	Side     Side
	Position geom.Vec
	Rotation float64
}

// HalfPosition returns the distance along the edge for edge placements.
func (p Placement) HalfPosition() float64 { return p.Position.X }

// PlaceBlock computes a block's pose within a sheet of size sheetSize.
//
// Edge blocks are rotated in quarter turns so their text reads along the
// edge; Right-affinity blocks are turned a further half turn so the two
// halves of a pair face each other across the seam. Both is placed like Left.
func PlaceBlock(sheetSize, blockSize geom.Vec, aff Affinity, pl Placement, clearance float64) geom.Pose {
	var pos geom.Vec
	quarter := 0
	hp := pl.HalfPosition()

	switch pl.Side {
	case SideRight:
		pos = geom.V(sheetSize.X-blockSize.X-clearance, hp)
	case SideLeft:
		pos = geom.V(clearance, sheetSize.Y-hp)
		quarter = 2
	case SideTop:
		pos = geom.V(hp, clearance)
		quarter = 3
	case SideBottom:
		pos = geom.V(sheetSize.X-hp, sheetSize.Y-blockSize.X-clearance)
		quarter = 1
	case SideInternal:
		return placeInternal(blockSize, aff, pl, clearance)
	}

	if aff == Right {
		quarter += 2
	}
	quarter %= 4

	switch quarter {
	case 1:
		pos = pos.Add(geom.V(blockSize.Y, 0))
	case 2:
		pos = pos.Add(blockSize)
	case 3:
		pos = pos.Add(geom.V(0, blockSize.X))
	}

	return geom.Pose{Pos: pos, Rot: float64(quarter) * math.Pi / 2}
}

func placeInternal(blockSize geom.Vec, aff Affinity, pl Placement, clearance float64) geom.Pose {
	rot := geom.Rad(pl.Rotation)

	dx := -clearance - blockSize.X
	if aff == Right {
		dx = clearance
	}
	offset := geom.V(dx, -blockSize.Y/2).Rotate(rot)

	return geom.Pose{Pos: pl.Position.Add(offset), Rot: rot}
}
