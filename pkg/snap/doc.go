// Package snap decides, on every pose update of a dragged sheet, whether the
// sheet is shown at its raw drag pose or corrected onto a stationary sheet's
// snap point.
//
// # Sessions
//
// A [Session] is opened when a drag (or a burst of key rotation) begins. It
// snapshots the world positions of every other sheet's snap points once:
//
//   - StaticLeft holds Right-affinity points; they attract moving Left points.
//   - StaticRight holds Left-affinity points; they attract moving Right points.
//
// The snapshot is not refreshed while the session is open. Only the moving
// sheet's own points are recomputed on each update, through the hypothetical
// drag pose rather than the sheet's rendered pose.
//
// # Matching
//
// [Resolver.Update] scans moving Left points against StaticLeft, then moving
// Right points against StaticRight, both in list order. The first pair whose
// axis distances are both below the threshold wins. There is no nearest-pair
// search: scan order (sheets by registration, blocks by collection order,
// points by generation order) is the tie-break.
//
// # Correction
//
// A match rotates the sheet about its pivot so the moving point's world
// rotation equals the still point's, then translates it so the recomputed
// moving point coincides with the still point. Rotation comes first because
// rotating displaces every point, including the matched one.
//
// Correction only changes the sheet's rendered pose. The drag pose is owned
// by the caller and never modified, so a small follow-up motion can pull the
// sheet back out of a snap.
package snap
