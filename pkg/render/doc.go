// Package render draws the sheets of a registry to a PNG image.
//
// # Overview
//
// Each sheet is drawn at its committed pose as a filled rectangle in a
// colour derived from its name, with its text blocks drawn at their local
// poses. The image is fitted to the union of all sheet corners plus a
// padding margin.
//
//	err := render.RenderPNG(w, reg, render.WithScale(2), render.WithSnapPoints(true))
//
// # Snap points
//
// [WithSnapPoints] overlays a small arrow at every snap point. Arrows of
// Left-affinity points face outward to the right of their block; arrows of
// Right-affinity points face left. Docked pairs therefore show two arrows
// meeting tip to tip.
//
// # Text
//
// Text is drawn with the face of a [textlayout.FaceMeasurer]. The same
// measurer should have been used to lay out the blocks, otherwise the text
// and the snap points disagree about the line pitch.
package render
