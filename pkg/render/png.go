package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

// DefaultFontSize is the text size used when no measurer is given.
const DefaultFontSize = 14.0

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	scale      float64
	padding    float64
	snapPoints bool
	focus      sheet.ID
	measurer   *textlayout.FaceMeasurer
	background color.Color
}

// WithScale sets the pixels per world unit (default 1).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPadding sets the margin around the sheets in world units (default 20).
func WithPadding(p float64) Option {
	return func(r *renderer) {
		if p >= 0 {
			r.padding = p
		}
	}
}

// WithSnapPoints toggles the snap point overlay.
func WithSnapPoints(on bool) Option {
	return func(r *renderer) { r.snapPoints = on }
}

// WithFocus highlights the outline of one sheet.
func WithFocus(id sheet.ID) Option {
	return func(r *renderer) { r.focus = id }
}

// WithMeasurer sets the text face. Blocks should have been laid out with it.
func WithMeasurer(m *textlayout.FaceMeasurer) Option {
	return func(r *renderer) { r.measurer = m }
}

// WithBackground sets the canvas colour.
func WithBackground(c color.Color) Option {
	return func(r *renderer) { r.background = c }
}

// Bounds returns the world-space bounding box of every sheet's corners.
func Bounds(reg *sheet.Registry) (lo, hi geom.Vec, ok bool) {
	lo = geom.V(math.Inf(1), math.Inf(1))
	hi = geom.V(math.Inf(-1), math.Inf(-1))
	for _, s := range reg.All() {
		for _, c := range s.Corners() {
			lo = geom.V(math.Min(lo.X, c.X), math.Min(lo.Y, c.Y))
			hi = geom.V(math.Max(hi.X, c.X), math.Max(hi.Y, c.Y))
			ok = true
		}
	}
	return lo, hi, ok
}

// Render draws every registered sheet and returns the image.
func Render(reg *sheet.Registry, opts ...Option) (image.Image, error) {
	r := renderer{scale: 1, padding: 20, background: color.RGBA{R: 24, G: 24, B: 28, A: 255}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.measurer == nil {
		m, err := textlayout.NewFaceMeasurer(DefaultFontSize)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		r.measurer = m
	}

	lo, hi, ok := Bounds(reg)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sheets to render")
	}
	lo = lo.Sub(geom.V(r.padding, r.padding))
	hi = hi.Add(geom.V(r.padding, r.padding))
	w := int(math.Ceil((hi.X - lo.X) * r.scale))
	h := int(math.Ceil((hi.Y - lo.Y) * r.scale))

	dc := gg.NewContext(w, h)
	dc.SetColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(-lo.X, -lo.Y)
	dc.SetFontFace(r.measurer.Face)

	for _, s := range reg.All() {
		r.drawSheet(dc, s)
	}
	if r.snapPoints {
		for _, s := range reg.All() {
			drawArrows(dc, s.TransformedPoints(sheet.Left, nil), 1, leftArrow)
			drawArrows(dc, s.TransformedPoints(sheet.Right, nil), -1, rightArrow)
		}
	}
	return dc.Image(), nil
}

// RenderPNG draws every registered sheet and writes the image as PNG.
func RenderPNG(w io.Writer, reg *sheet.Registry, opts ...Option) error {
	img, err := Render(reg, opts...)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *renderer) drawSheet(dc *gg.Context, s *sheet.Sheet) {
	fill := SheetColor(s.Name)
	t := s.Transform()

	dc.Push()
	dc.Translate(t.Pos.X, t.Pos.Y)
	dc.Rotate(t.Rot)

	dc.DrawRectangle(0, 0, s.Size.X, s.Size.Y)
	dc.SetColor(fill)
	dc.FillPreserve()
	outline := borderColor(fill)
	if r.focus != sheet.None && r.focus == s.ID() {
		outline = focusColor(fill)
	}
	dc.SetColor(outline)
	dc.SetLineWidth(2)
	dc.Stroke()

	pitch := r.measurer.LinePitch()
	dc.SetColor(textColor)
	for _, b := range s.Blocks() {
		if !b.LaidOut() {
			continue
		}
		local := b.Local()
		dc.Push()
		dc.Translate(local.Pos.X, local.Pos.Y)
		dc.Rotate(local.Rot)
		for i, line := range b.Lines() {
			dc.DrawStringAnchored(line, 0, (float64(i)+0.5)*pitch, 0, 0.35)
		}
		dc.Pop()
	}
	dc.Pop()
}

// drawArrows draws a small triangle at every point, pointing along +x of the
// point's frame when dir is 1 and along -x when dir is -1.
func drawArrows(dc *gg.Context, pts []sheet.WorldPoint, dir float64, c color.Color) {
	const length, half = 6.0, 3.0
	dc.SetColor(c)
	for _, p := range pts {
		tip := p.Pose.Apply(geom.V(dir*length, 0))
		b1 := p.Pose.Apply(geom.V(0, -half))
		b2 := p.Pose.Apply(geom.V(0, half))
		dc.MoveTo(tip.X, tip.Y)
		dc.LineTo(b1.X, b1.Y)
		dc.LineTo(b2.X, b2.Y)
		dc.ClosePath()
		dc.Fill()
	}
}
