package cli

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/render"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

// viewport maps terminal cells to world coordinates. Cell (0, 0) covers the
// world rectangle starting at origin.
type viewport struct {
	cell   geom.Vec // world extent of one cell
	origin geom.Vec
	cols   int
	rows   int
}

// newViewport sizes cells after m so text drawn one rune per cell roughly
// matches the measured block extents.
func newViewport(m textlayout.Measurer, cols, rows int) viewport {
	w := m.Measure([]string{"M"}).X
	h := m.LinePitch()
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return viewport{cell: geom.V(w, h), cols: cols, rows: rows}
}

// toWorld returns the world position of the centre of a cell.
func (v viewport) toWorld(col, row int) geom.Vec {
	return geom.V(
		v.origin.X+(float64(col)+0.5)*v.cell.X,
		v.origin.Y+(float64(row)+0.5)*v.cell.Y,
	)
}

// toCell returns the cell containing world point p.
func (v viewport) toCell(p geom.Vec) (col, row int, ok bool) {
	col = int(math.Floor((p.X - v.origin.X) / v.cell.X))
	row = int(math.Floor((p.Y - v.origin.Y) / v.cell.Y))
	return col, row, col >= 0 && row >= 0 && col < v.cols && row < v.rows
}

// fit moves the origin so the bounds of every sheet sit in view with a one
// cell margin. Sheets larger than the view are anchored at the top left.
func (v *viewport) fit(reg *sheet.Registry) {
	lo, hi, ok := render.Bounds(reg)
	if !ok {
		v.origin = geom.Vec{}
		return
	}
	span := hi.Sub(lo)
	view := geom.V(float64(v.cols)*v.cell.X, float64(v.rows)*v.cell.Y)
	v.origin = geom.V(
		lo.X-math.Max(v.cell.X, (view.X-span.X)/2),
		lo.Y-math.Max(v.cell.Y, (view.Y-span.Y)/2),
	)
}

// =============================================================================
// Rasterizer
// =============================================================================

type canvasCell struct {
	r     rune
	owner sheet.ID
	fg    string
	bg    string
}

type canvas struct {
	vp    viewport
	cells []canvasCell
}

func newCanvas(vp viewport) *canvas {
	c := &canvas{vp: vp, cells: make([]canvasCell, vp.cols*vp.rows)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) at(col, row int) *canvasCell {
	return &c.cells[row*c.vp.cols+col]
}

// paint fills every cell whose centre lies on a sheet. Later sheets in the
// registry are drawn on top.
func (c *canvas) paint(reg *sheet.Registry, focus sheet.ID) {
	sheets := reg.All()
	for row := 0; row < c.vp.rows; row++ {
		for col := 0; col < c.vp.cols; col++ {
			p := c.vp.toWorld(col, row)
			for i := len(sheets) - 1; i >= 0; i-- {
				s := sheets[i]
				if !s.Contains(p) {
					continue
				}
				fill := render.SheetColor(s.Name)
				if s.ID() == focus {
					fill = fill.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.2).Clamped()
				}
				cell := c.at(col, row)
				cell.owner = s.ID()
				cell.bg = fill.Hex()
				break
			}
		}
	}
}

// text writes the lines of every laid out block, one rune per cell spread
// over the measured line width.
func (c *canvas) text(reg *sheet.Registry, m textlayout.Measurer) {
	pitch := m.LinePitch()
	for _, s := range reg.All() {
		for _, b := range s.Blocks() {
			if !b.LaidOut() {
				continue
			}
			pose := geom.Compose(s.Transform(), b.Local())
			for i, line := range b.Lines() {
				n := utf8.RuneCountInString(line)
				if n == 0 {
					continue
				}
				step := m.Measure([]string{line}).X / float64(n)
				j := 0
				for _, r := range line {
					local := geom.V((float64(j)+0.5)*step, (float64(i)+0.5)*pitch)
					j++
					col, row, ok := c.vp.toCell(pose.Apply(local))
					if !ok {
						continue
					}
					cell := c.at(col, row)
					if cell.owner != s.ID() {
						continue
					}
					cell.r = r
					cell.fg = "#f2f2f2"
				}
			}
		}
	}
}

// marks draws snap points: ▸ for left, ◂ for right, ◆ for the point the
// dragged sheet is docked onto.
func (c *canvas) marks(reg *sheet.Registry, docked *sheet.WorldPoint) {
	put := func(p geom.Vec, r rune, fg string) {
		col, row, ok := c.vp.toCell(p)
		if !ok {
			return
		}
		cell := c.at(col, row)
		cell.r = r
		cell.fg = fg
	}
	for _, s := range reg.All() {
		for _, wp := range s.TransformedPoints(sheet.Left, nil) {
			put(wp.Pose.Pos, '▸', "#facc33")
		}
		for _, wp := range s.TransformedPoints(sheet.Right, nil) {
			put(wp.Pose.Pos, '◂', "#4dd9f2")
		}
	}
	if docked != nil {
		put(docked.Pose.Pos, '◆', "#ff5f87")
	}
}

// String renders the canvas, grouping runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.vp.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= c.vp.cols; col++ {
			if col < c.vp.cols && sameStyle(c.at(col, row), c.at(start, row)) {
				continue
			}
			b.WriteString(c.run(row, start, col))
			start = col
		}
	}
	return b.String()
}

func sameStyle(a, b *canvasCell) bool { return a.fg == b.fg && a.bg == b.bg }

func (c *canvas) run(row, from, to int) string {
	rs := make([]rune, 0, to-from)
	for col := from; col < to; col++ {
		rs = append(rs, c.at(col, row).r)
	}
	first := c.at(from, row)
	if first.bg == "" && first.fg == "" {
		return string(rs)
	}
	st := lipgloss.NewStyle()
	if first.bg != "" {
		st = st.Background(lipgloss.Color(first.bg))
	}
	if first.fg != "" {
		st = st.Foreground(lipgloss.Color(first.fg))
	}
	return st.Render(string(rs))
}
