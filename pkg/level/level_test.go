package level

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

const firstSheet = `{
  "name": "first",
  "size": {"x": 300, "y": 200},
  "texts": {
    "zeta":  {"side": "right", "half": "left", "text": "1. [b]left[/b]\n[i]left[/i]", "half_position": 100},
    "alpha": {"side": "internal", "half": "right", "text": "inside", "position": {"x": 150, "y": 100}, "rotation": 90}
  }
}`

const secondSheet = `
name = "second"
size = { x = 200, y = 100 }
rotation = 90
position = { x = 500, y = 20 }

[texts.note]
side = "left"
half = "right"
text = "right\nright .1"
half_position = 30
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"level.json", FormatJSON, false},
		{"dir/Level.JSON", FormatJSON, false},
		{"level.toml", FormatTOML, false},
		{"level.yaml", "", true},
		{"level", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeUnsupported) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeUnsupported)
			}
			if got != tt.want {
				t.Errorf("FormatFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"intro.json":         `{"name": "Intro", "sheets": ["first.json", "res:sheets/second.toml"]}`,
		"first.json":         firstSheet,
		"sheets/second.toml": secondSheet,
	})

	reg := sheet.NewRegistry()
	lvl, err := Load(filepath.Join(dir, "intro.json"), reg, Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lvl.Name != "Intro" {
		t.Errorf("Name = %q, want Intro", lvl.Name)
	}
	if reg.Len() != 2 {
		t.Fatalf("registry has %d sheets, want 2", reg.Len())
	}

	first, second := reg.All()[0], reg.All()[1]
	if first.Name != "first" || second.Name != "second" {
		t.Fatalf("sheet order = %s, %s; want first, second", first.Name, second.Name)
	}

	t.Run("texts in sorted order", func(t *testing.T) {
		blocks := first.Blocks()
		if len(blocks) != 2 || blocks[0].Name != "alpha" || blocks[1].Name != "zeta" {
			t.Fatalf("blocks = %v, want [alpha zeta]", blockNames(blocks))
		}
		for _, b := range blocks {
			if !b.LaidOut() {
				t.Errorf("block %s not laid out", b.Name)
			}
		}
	})

	t.Run("markup stripped", func(t *testing.T) {
		lines := first.Blocks()[1].Lines()
		if len(lines) != 2 || lines[0] != "1. left" || lines[1] != "left" {
			t.Errorf("Lines() = %q, want [\"1. left\" \"left\"]", lines)
		}
	})

	t.Run("affinity from half", func(t *testing.T) {
		if got := first.Blocks()[0].Affinity; got != sheet.Right {
			t.Errorf("alpha affinity = %v, want right", got)
		}
		if n := len(first.TransformedPoints(sheet.Left, nil)); n != 2 {
			t.Errorf("first has %d left points, want 2", n)
		}
		if n := len(second.TransformedPoints(sheet.Right, nil)); n != 2 {
			t.Errorf("second has %d right points, want 2", n)
		}
	})

	t.Run("poses", func(t *testing.T) {
		if first.Position != (geom.Vec{}) {
			t.Errorf("first at %v, want origin", first.Position)
		}
		if second.Position != geom.V(500, 20) {
			t.Errorf("second at %v, want (500, 20)", second.Position)
		}
		if math.Abs(geom.Deg(second.Rotation)-90) > 1e-9 {
			t.Errorf("second rotation = %v°, want 90°", geom.Deg(second.Rotation))
		}
	})

	t.Run("half position", func(t *testing.T) {
		// Right edge, left half: x = w - blockW - clearance, y = half position.
		zeta := first.Blocks()[1]
		want := geom.V(300-zeta.Size().X-sheet.DefaultClearance, 100)
		if got := zeta.Local().Pos; !geom.Near(got, want, 1e-9) {
			t.Errorf("zeta at %v, want %v", got, want)
		}
	})
}

func TestLoadAutoPositions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"set.toml": `sheets = ["a.json", "b.json"]`,
		"a.json":   `{"name": "a", "size": {"x": 100, "y": 50}, "texts": {}}`,
		"b.json":   `{"name": "b", "size": {"x": 80, "y": 50}, "texts": {}}`,
	})
	reg := sheet.NewRegistry()
	lvl, err := Load(filepath.Join(dir, "set.toml"), reg, Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lvl.Name != "set" {
		t.Errorf("Name = %q, want file stem", lvl.Name)
	}
	if got := lvl.Sheets[1].Position; got != geom.V(100+SheetGap, 0) {
		t.Errorf("b at %v, want (%v, 0)", got, 100+SheetGap)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		entry string
		want  errors.Code
	}{
		{
			name:  "missing set",
			files: map[string]string{},
			entry: "nope.json",
			want:  errors.ErrCodeFileNotFound,
		},
		{
			name:  "unsupported extension",
			files: map[string]string{"set.yaml": "sheets: []"},
			entry: "set.yaml",
			want:  errors.ErrCodeUnsupported,
		},
		{
			name:  "malformed json",
			files: map[string]string{"set.json": `{"sheets": [`},
			entry: "set.json",
			want:  errors.ErrCodeInvalidFormat,
		},
		{
			name:  "no sheets",
			files: map[string]string{"set.json": `{"sheets": []}`},
			entry: "set.json",
			want:  errors.ErrCodeInvalidLevel,
		},
		{
			name:  "path traversal",
			files: map[string]string{"set.json": `{"sheets": ["../a.json"]}`},
			entry: "set.json",
			want:  errors.ErrCodeInvalidLevel,
		},
		{
			name:  "missing sheet",
			files: map[string]string{"set.json": `{"sheets": ["a.json"]}`},
			entry: "set.json",
			want:  errors.ErrCodeFileNotFound,
		},
		{
			name: "bad size",
			files: map[string]string{
				"set.json": `{"sheets": ["a.json"]}`,
				"a.json":   `{"name": "a", "size": {"x": 0, "y": 10}}`,
			},
			entry: "set.json",
			want:  errors.ErrCodeInvalidLevel,
		},
		{
			name: "unknown side",
			files: map[string]string{
				"set.json": `{"sheets": ["a.json"]}`,
				"a.json":   `{"name": "a", "size": {"x": 10, "y": 10}, "texts": {"t": {"side": "middle", "text": "x"}}}`,
			},
			entry: "set.json",
			want:  errors.ErrCodeInvalidFormat,
		},
		{
			name: "empty text",
			files: map[string]string{
				"set.json": `{"sheets": ["a.json"]}`,
				"a.json":   `{"name": "a", "size": {"x": 10, "y": 10}, "texts": {"t": {"text": "[b][/b]"}}}`,
			},
			entry: "set.json",
			want:  errors.ErrCodeInvalidLevel,
		},
		{
			name: "both on an edge",
			files: map[string]string{
				"set.json": `{"sheets": ["a.json"]}`,
				"a.json":   `{"name": "a", "size": {"x": 10, "y": 10}, "texts": {"t": {"side": "top", "half": "both", "text": "x"}}}`,
			},
			entry: "set.json",
			want:  errors.ErrCodeInvalidLevel,
		},
		{
			name: "duplicate names",
			files: map[string]string{
				"set.json": `{"sheets": ["a.json", "b.json"]}`,
				"a.json":   `{"name": "same", "size": {"x": 10, "y": 10}}`,
				"b.json":   `{"name": "same", "size": {"x": 10, "y": 10}}`,
			},
			entry: "set.json",
			want:  errors.ErrCodeInvalidLevel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			reg := sheet.NewRegistry()
			_, err := Load(filepath.Join(dir, tt.entry), reg, Options{})
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error code = %s, want %s (%v)", errors.GetCode(err), tt.want, err)
			}
			if reg.Len() != 0 {
				t.Errorf("failed load registered %d sheets", reg.Len())
			}
		})
	}
}

func TestBuildWithFaceMeasurer(t *testing.T) {
	m, err := textlayout.NewFaceMeasurer(14)
	if err != nil {
		t.Fatal(err)
	}
	cfg := SheetConfig{
		Name: "s",
		Size: Vec{X: 300, Y: 200},
		Texts: map[string]TextParams{
			"t": {Side: sheet.SideRight, Half: sheet.Left, Text: "one\ntwo\nthree"},
		},
	}
	s := cfg.Build(Options{Measurer: m})
	pts := s.Blocks()[0].Points()
	if len(pts) != 3 {
		t.Fatalf("len(Points()) = %d, want 3", len(pts))
	}
	pitch := m.LinePitch()
	for i, p := range pts {
		if want := (float64(i) + 0.5) * pitch; p.Local.Pos.Y != want {
			t.Errorf("point %d y = %v, want %v", i, p.Local.Pos.Y, want)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	reg := sheet.NewRegistry()
	a := sheet.New("a", geom.V(100, 50))
	a.Position = geom.V(12.5, -3)
	a.Rotation = geom.Rad(45)
	b := sheet.New("b", geom.V(100, 50))
	reg.Register(a)
	reg.Register(b)

	var buf bytes.Buffer
	if err := WriteLayout(&buf, "demo", reg); err != nil {
		t.Fatalf("WriteLayout() error: %v", err)
	}
	out := buf.Bytes()

	a.Position = geom.V(999, 999)
	a.Rotation = 0
	if err := ApplyLayout(bytes.NewReader(out), reg); err != nil {
		t.Fatalf("ApplyLayout() error: %v", err)
	}
	if a.Position != geom.V(12.5, -3) {
		t.Errorf("a.Position = %v, want (12.5, -3)", a.Position)
	}
	if math.Abs(geom.Deg(a.Rotation)-45) > 1e-9 {
		t.Errorf("a.Rotation = %v°, want 45°", geom.Deg(a.Rotation))
	}

	snap := Snapshot("demo", reg)
	if len(snap.Sheets) != 2 || snap.Sheets[0].Name != "a" || snap.Sheets[1].Name != "b" {
		t.Errorf("Snapshot order = %+v, want a, b", snap.Sheets)
	}
}

func TestApplyLayoutUnknownSheet(t *testing.T) {
	reg := sheet.NewRegistry()
	reg.Register(sheet.New("a", geom.V(10, 10)))

	err := ApplyLayout(bytes.NewReader([]byte(`{"sheets": [{"name": "zz"}]}`)), reg)
	if !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("ApplyLayout() error = %v, want %s", err, errors.ErrCodeInvalidLevel)
	}
}

func blockNames(bs []*sheet.TextBlock) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}
