package sheet

import (
	"strings"

	"github.com/matzehuels/sheetdock/pkg/errors"
)

// Affinity tags which half of a sheet a text block belongs to. It decides
// which edge of the block exposes snap points and which points the block can
// dock against: opposite affinities dock together.
type Affinity int

const (
	// Left blocks expose points just past their far (right) edge, ready to
	// dock an incoming Right block.
	Left Affinity = iota
	// Right blocks expose points just before their near (left) edge.
	Right
	// Both blocks expose the Left set followed by the Right set.
	Both
)

var affinityNames = map[Affinity]string{
	Left:  "left",
	Right: "right",
	Both:  "both",
}

// String returns the lower-case affinity name.
func (a Affinity) String() string {
	if s, ok := affinityNames[a]; ok {
		return s
	}
	return "unknown"
}

// Opposite returns the affinity a block must have to dock against a.
// Both is its own opposite.
func (a Affinity) Opposite() Affinity {
	switch a {
	case Left:
		return Right
	case Right:
		return Left
	}
	return Both
}

// ParseAffinity parses a case-insensitive affinity name.
func ParseAffinity(s string) (Affinity, error) {
	for a, name := range affinityNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown affinity %q (must be left, right or both)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Affinity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Affinity) UnmarshalText(b []byte) error {
	v, err := ParseAffinity(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Side is where on its sheet a text block is placed.
type Side int

const (
	SideRight Side = iota
	SideBottom
	SideLeft
	SideTop
	SideInternal
)

var sideNames = map[Side]string{
	SideRight:    "right",
	SideBottom:   "bottom",
	SideLeft:     "left",
	SideTop:      "top",
	SideInternal: "internal",
}

func (s Side) String() string {
	if n, ok := sideNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseSide parses a case-insensitive side name.
func ParseSide(s string) (Side, error) {
	for side, name := range sideNames {
		if strings.EqualFold(s, name) {
			return side, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown side %q (must be right, bottom, left, top or internal)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
