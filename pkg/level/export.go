package level

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/sheet"
)

// Layout is the committed pose of every sheet, in registration order.
type Layout struct {
	Name   string       `json:"name,omitempty"`
	Sheets []SheetState `json:"sheets"`
}

// SheetState is one sheet's committed pose. Rotation is in degrees.
type SheetState struct {
	Name     string  `json:"name"`
	Position Vec     `json:"position"`
	Rotation float64 `json:"rotation"`
}

// Snapshot captures the current layout of reg.
func Snapshot(name string, reg *sheet.Registry) Layout {
	all := reg.All()
	out := Layout{Name: name, Sheets: make([]SheetState, len(all))}
	for i, s := range all {
		out.Sheets[i] = SheetState{
			Name:     s.Name,
			Position: Vec{X: round(s.Position.X), Y: round(s.Position.Y)},
			Rotation: round(geom.Deg(s.Rotation)),
		}
	}
	return out
}

// round trims float noise so exported layouts diff cleanly.
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}

// WriteLayout encodes the layout of reg as indented JSON.
func WriteLayout(w io.Writer, name string, reg *sheet.Registry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(name, reg)); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ExportLayout writes the layout of reg to a file.
func ExportLayout(path, name string, reg *sheet.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(f, name, reg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ApplyLayout reads a layout written by WriteLayout and moves the matching
// sheets of reg. Sheets are matched by name; unknown names are an error.
func ApplyLayout(r io.Reader, reg *sheet.Registry) error {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}

	byName := make(map[string]*sheet.Sheet, reg.Len())
	for _, s := range reg.All() {
		byName[s.Name] = s
	}
	for _, st := range l.Sheets {
		s, ok := byName[st.Name]
		if !ok {
			return errors.New(errors.ErrCodeInvalidLevel, "layout names unknown sheet %q", st.Name)
		}
		s.Position = st.Position.geom()
		s.Rotation = geom.Rad(st.Rotation)
	}
	return nil
}
