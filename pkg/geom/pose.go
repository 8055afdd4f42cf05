package geom

import (
	"fmt"
	"math"
)

// Pose is a rigid transform: rotate by Rot radians about the origin, then
// translate by Pos. The zero value is the identity.
type Pose struct {
	Pos Vec
	Rot float64
}

// Identity returns the identity pose.
func Identity() Pose { return Pose{} }

// Translation returns a pose that only translates.
func Translation(v Vec) Pose { return Pose{Pos: v} }

// Rotation returns a pose that only rotates about the origin.
func Rotation(rad float64) Pose { return Pose{Rot: rad} }

// PivotPose returns the transform of a frame rotated by rad about its local
// pivot, with that pivot placed at pivotWorld. It is the composition
// T(pivotWorld) ∘ R(rad) ∘ T(-pivot).
func PivotPose(pivotWorld Vec, rad float64, pivot Vec) Pose {
	return Pose{
		Pos: pivotWorld.Sub(pivot.Rotate(rad)),
		Rot: rad,
	}
}

// Compose returns outer ∘ inner: the pose that applies inner first and then
// outer.
func Compose(outer, inner Pose) Pose {
	return Pose{
		Pos: outer.Pos.Add(inner.Pos.Rotate(outer.Rot)),
		Rot: outer.Rot + inner.Rot,
	}
}

// Apply maps a point from p's local frame into its parent frame.
func (p Pose) Apply(v Vec) Vec {
	return v.Rotate(p.Rot).Add(p.Pos)
}

// ApplyPose maps a pose expressed in p's local frame into p's parent frame.
func (p Pose) ApplyPose(o Pose) Pose {
	return Compose(p, o)
}

// Inverse returns the pose q such that Compose(p, q) and Compose(q, p) are the
// identity.
func (p Pose) Inverse() Pose {
	return Pose{
		Pos: p.Pos.Neg().Rotate(-p.Rot),
		Rot: -p.Rot,
	}
}

// Near reports whether p and o agree within tol on position and rotation.
func (p Pose) Near(o Pose, tol float64) bool {
	return Near(p.Pos, o.Pos, tol) && math.Abs(p.Rot-o.Rot) <= tol
}

// String formats the pose with the rotation in degrees.
func (p Pose) String() string {
	return fmt.Sprintf("(%.2f, %.2f) %.2f°", p.Pos.X, p.Pos.Y, Deg(p.Rot))
}
