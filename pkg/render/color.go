package render

import (
	"hash/fnv"

	"github.com/lucasb-eyer/go-colorful"
)

// SheetColor returns the fill colour of a sheet. The hue is derived from the
// sheet name; saturation and value are fixed at one half.
func SheetColor(name string) colorful.Color {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := float64(h.Sum32()%3600) / 10
	return colorful.Hsv(hue, 0.5, 0.5)
}

// borderColor darkens c for the sheet outline.
func borderColor(c colorful.Color) colorful.Color {
	return c.BlendLab(colorful.Color{}, 0.35).Clamped()
}

// focusColor brightens c for the outline of the focused sheet.
func focusColor(c colorful.Color) colorful.Color {
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.6).Clamped()
}

var (
	textColor  = colorful.Color{R: 0.95, G: 0.95, B: 0.95}
	leftArrow  = colorful.Color{R: 0.98, G: 0.8, B: 0.2}
	rightArrow = colorful.Color{R: 0.3, G: 0.85, B: 0.95}
)
