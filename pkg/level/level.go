package level

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

// SheetGap is the horizontal gap between sheets that have no starting
// position.
const SheetGap = 40.0

// Vec is a 2D vector as written in level files.
type Vec struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

func (v Vec) geom() geom.Vec { return geom.V(v.X, v.Y) }

// SheetSet is the top-level level file.
type SheetSet struct {
	Name   string   `json:"name" toml:"name"`
	Sheets []string `json:"sheets" toml:"sheets"`
}

// SheetConfig describes one sheet.
type SheetConfig struct {
	Name     string                `json:"name" toml:"name"`
	Size     Vec                   `json:"size" toml:"size"`
	Position *Vec                  `json:"position,omitempty" toml:"position"`
	Rotation float64               `json:"rotation,omitempty" toml:"rotation"`
	Texts    map[string]TextParams `json:"texts" toml:"texts"`
}

// TextParams describes one text block. HalfPosition, when set, overrides
// Position.X for edge placements.
type TextParams struct {
	Side         sheet.Side     `json:"side" toml:"side"`
	Half         sheet.Affinity `json:"half" toml:"half"`
	Text         string         `json:"text" toml:"text"`
	Position     Vec            `json:"position" toml:"position"`
	HalfPosition *float64       `json:"half_position,omitempty" toml:"half_position"`
	Rotation     float64        `json:"rotation,omitempty" toml:"rotation"`
}

// Placement converts the parameters to a sheet placement.
func (p TextParams) Placement() sheet.Placement {
	pos := p.Position.geom()
	if p.HalfPosition != nil {
		pos.X = *p.HalfPosition
	}
	return sheet.Placement{Side: p.Side, Position: pos, Rotation: p.Rotation}
}

// Level is a loaded level.
type Level struct {
	Name   string
	Path   string
	Files  []string // resolved sheet file paths, in set order
	Sheets []*sheet.Sheet
}

// Options controls how a level is built.
type Options struct {
	Measurer  textlayout.Measurer
	Clearance float64
}

func (o Options) withDefaults() Options {
	if o.Measurer == nil {
		o.Measurer = textlayout.CellMeasurer{}
	}
	if o.Clearance <= 0 {
		o.Clearance = sheet.DefaultClearance
	}
	return o
}

// ReadSet reads a sheet set file.
func ReadSet(path string) (*SheetSet, error) {
	var set SheetSet
	if err := readFile(path, &set); err != nil {
		return nil, err
	}
	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(set.Sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLevel, "%s: sheet set lists no sheets", path)
	}
	return &set, nil
}

// ReadSheet reads and validates a sheet file.
func ReadSheet(path string) (*SheetConfig, error) {
	var cfg SheetConfig
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "%s", path)
	}
	return &cfg, nil
}

// Validate checks a sheet configuration.
func (c *SheetConfig) Validate() error {
	if err := errors.ValidateName(c.Name); err != nil {
		return err
	}
	if err := errors.ValidateSize(c.Size.X, c.Size.Y); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLevel, err, "sheet %q", c.Name)
	}
	if math.IsNaN(c.Rotation) || math.IsInf(c.Rotation, 0) {
		return errors.New(errors.ErrCodeInvalidLevel, "sheet %q: invalid rotation", c.Name)
	}
	for name, t := range c.Texts {
		if strings.TrimSpace(textlayout.StripMarkup(t.Text)) == "" {
			return errors.New(errors.ErrCodeInvalidLevel, "sheet %q: text %q is empty", c.Name, name)
		}
		if t.Side != sheet.SideInternal && t.Half == sheet.Both {
			return errors.New(errors.ErrCodeInvalidLevel, "sheet %q: text %q: half \"both\" needs side \"internal\"", c.Name, name)
		}
	}
	return nil
}

// Build creates the sheet described by c and lays out its blocks. The sheet
// is not registered.
func (c *SheetConfig) Build(opts Options) *sheet.Sheet {
	opts = opts.withDefaults()
	s := sheet.New(c.Name, c.Size.geom())
	if c.Position != nil {
		s.Position = c.Position.geom()
	}
	s.Rotation = geom.Rad(c.Rotation)

	names := make([]string, 0, len(c.Texts))
	for name := range c.Texts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Texts[name]
		s.AddBlock(sheet.NewTextBlock(name, t.Text, t.Half, t.Placement()))
	}
	s.Layout(opts.Measurer, opts.Clearance)
	return s
}

// Load reads the sheet set at path, builds every sheet and registers it in
// reg in set order. Sheets without a starting position are laid out left to
// right. Nothing is registered if any sheet fails to load.
func Load(path string, reg *sheet.Registry, opts Options) (*Level, error) {
	set, err := ReadSet(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	lvl := &Level{Name: set.Name, Path: path}
	seen := make(map[string]bool, len(set.Sheets))
	var x float64
	for _, ref := range set.Sheets {
		p, err := resolveSheetPath(dir, ref)
		if err != nil {
			return nil, err
		}
		cfg, err := ReadSheet(p)
		if err != nil {
			return nil, err
		}
		if seen[cfg.Name] {
			return nil, errors.New(errors.ErrCodeInvalidLevel, "%s: duplicate sheet name %q", path, cfg.Name)
		}
		seen[cfg.Name] = true

		s := cfg.Build(opts)
		if cfg.Position == nil {
			s.Position = geom.V(x, 0)
		}
		x = math.Max(x, s.Position.X+s.Size.X) + SheetGap
		lvl.Files = append(lvl.Files, p)
		lvl.Sheets = append(lvl.Sheets, s)
	}

	for _, s := range lvl.Sheets {
		reg.Register(s)
	}
	return lvl, nil
}

// resolveSheetPath turns a sheet reference from a set file into a path.
func resolveSheetPath(dir, ref string) (string, error) {
	rel := ref
	for _, prefix := range []string{"res://", "res:"} {
		if len(rel) >= len(prefix) && strings.EqualFold(rel[:len(prefix)], prefix) {
			rel = rel[len(prefix):]
			break
		}
	}
	if err := errors.ValidatePath(rel); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidLevel, err, "sheet %q", ref)
	}
	return filepath.Join(dir, filepath.FromSlash(rel)), nil
}

func readFile(path string, v any) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "level file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if err := decode(data, f, v); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return nil
}
