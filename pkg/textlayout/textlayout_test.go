package textlayout

import (
	"testing"

	"github.com/matzehuels/sheetdock/pkg/geom"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a\nbb", []string{"a", "bb"}},
		{"markup", "1. [b]left[/b]\n[i]left[/i]", []string{"1. left", "left"}},
		{"crlf", "x\r\ny", []string{"x", "y"}},
		{"single", "only", []string{"only"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Lines(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCellMeasurer(t *testing.T) {
	var m CellMeasurer
	got := m.Measure([]string{"abc", "héllo", ""})
	if got != geom.V(5, 3) {
		t.Errorf("Measure() = %v, want (5, 3)", got)
	}
	if m.LinePitch() != 1 {
		t.Errorf("LinePitch() = %v, want 1", m.LinePitch())
	}
}

func TestFaceMeasurer(t *testing.T) {
	m, err := NewFaceMeasurer(14)
	if err != nil {
		t.Fatalf("NewFaceMeasurer() error = %v", err)
	}
	if m.LinePitch() <= 0 {
		t.Fatalf("LinePitch() = %v, want > 0", m.LinePitch())
	}

	short := m.Measure([]string{"ab"})
	long := m.Measure([]string{"ab", "abcdefgh"})
	if long.X <= short.X {
		t.Errorf("longer line measured %v, not wider than %v", long.X, short.X)
	}
	if long.Y != 2*m.LinePitch() {
		t.Errorf("height = %v, want %v", long.Y, 2*m.LinePitch())
	}
}
