// Package textlayout measures text blocks so their layout can be finalised.
//
// The snap model never computes text layout itself; it asks a [Measurer] for
// the rendered extent of a block and the line pitch used to place one snap
// point per line. Two measurers are provided: [FaceMeasurer] for pixel space
// (PNG rendering) and [CellMeasurer] for terminal cell space (the TUI).
package textlayout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/sheetdock/pkg/geom"
)

// Measurer reports the rendered size of text and the pitch between lines.
type Measurer interface {
	// Measure returns the width and height of the given lines.
	Measure(lines []string) geom.Vec
	// LinePitch returns the vertical distance between consecutive baselines.
	LinePitch() float64
}

// markup matches the inline BBCode-style tags level files may carry, such as
// [b], [/i] or [right].
var markup = regexp.MustCompile(`\[/?[a-z]+\]`)

// StripMarkup removes inline formatting tags from s.
func StripMarkup(s string) string {
	return markup.ReplaceAllString(s, "")
}

// Lines splits text into display lines with markup removed. Trailing carriage
// returns are dropped so CRLF files behave like LF files.
func Lines(text string) []string {
	raw := strings.Split(StripMarkup(text), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimRight(l, "\r")
	}
	return out
}

// =============================================================================
// Font measurer
// =============================================================================

// FaceMeasurer measures text with a font face in pixel units.
type FaceMeasurer struct {
	Face  font.Face
	pitch float64
}

// NewFaceMeasurer returns a measurer backed by the embedded Go Regular font
// at the given point size (72 DPI, so points equal pixels).
func NewFaceMeasurer(size float64) (*FaceMeasurer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	m := face.Metrics()
	return &FaceMeasurer{
		Face:  face,
		pitch: float64(m.Height.Ceil()),
	}, nil
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(lines []string) geom.Vec {
	var w float64
	for _, l := range lines {
		adv := font.MeasureString(m.Face, l)
		if px := float64(adv.Ceil()); px > w {
			w = px
		}
	}
	return geom.V(w, float64(len(lines))*m.pitch)
}

// LinePitch implements Measurer.
func (m *FaceMeasurer) LinePitch() float64 { return m.pitch }

// =============================================================================
// Cell measurer
// =============================================================================

// CellMeasurer measures text on a fixed character grid: every rune is one
// cell wide and every line is one cell tall.
type CellMeasurer struct{}

// Measure implements Measurer.
func (CellMeasurer) Measure(lines []string) geom.Vec {
	var w int
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}
	return geom.V(float64(w), float64(len(lines)))
}

// LinePitch implements Measurer.
func (CellMeasurer) LinePitch() float64 { return 1 }
