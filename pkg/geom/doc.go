// Package geom provides the 2D rigid transform used to move between the
// coordinate frames of a sheet, its text blocks, and their snap points.
//
// # Poses
//
// A [Pose] is a translation plus a rotation. Poses compose right to left:
//
//	world := geom.Compose(sheetPose, geom.Compose(blockPose, pointPose))
//
// is the pose that first applies pointPose, then blockPose, then sheetPose.
// Composition is associative but not commutative.
//
// # Units
//
// Rotations are radians everywhere inside this module. Degrees only appear at
// the edges (level files, configuration, CLI output) and are converted with
// [Rad] and [Deg]. Angles are never normalised to a canonical range; callers
// only ever compare relative deltas against a tolerance.
package geom
