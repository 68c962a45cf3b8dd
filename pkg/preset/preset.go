// Package preset reads IFS map sets from TOML.
//
// A preset names an ordered list of maps plus the iteration count and seed
// it looks best with:
//
//	name = "sierpinski"
//	description = "Three half-scale maps at the corners of a triangle"
//	iterations = 10000
//	seed = "random:2000"
//
//	[[maps]]
//	center = [0.0, 0.5]
//	size = [0.5, 0.5]
//	angle_degrees = 0.0
//
// Angles are given either in radians (angle) or in degrees (angle_degrees),
// never both. Built-in presets are embedded in the binary; user presets are
// loaded from files with [Load]. Presets are read-only: nothing here writes
// map sets back to disk.
package preset

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/ifs"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// Preset is a named map set definition.
type Preset struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description,omitempty"`
	Iterations  int      `toml:"iterations,omitempty"`
	Seed        string   `toml:"seed,omitempty"`
	Maps        []MapDef `toml:"maps"`
}

// MapDef is the TOML form of one [ifs.AffineMap].
type MapDef struct {
	Center       [2]float32 `toml:"center"`
	Size         [2]float32 `toml:"size"`
	Angle        *float32   `toml:"angle,omitempty"`
	AngleDegrees *float32   `toml:"angle_degrees,omitempty"`
}

// AffineMap converts the definition, resolving degrees to radians.
func (d MapDef) AffineMap() ifs.AffineMap {
	m := ifs.AffineMap{
		Center: mgl32.Vec2{d.Center[0], d.Center[1]},
		Size:   mgl32.Vec2{d.Size[0], d.Size[1]},
	}
	switch {
	case d.Angle != nil:
		m.Angle = *d.Angle
	case d.AngleDegrees != nil:
		m.Angle = mgl32.DegToRad(*d.AngleDegrees)
	}
	return m
}

// FromMap builds the TOML form of m, keeping the angle in radians.
func FromMap(m ifs.AffineMap) MapDef {
	angle := m.Angle
	return MapDef{
		Center: [2]float32{m.Center.X(), m.Center.Y()},
		Size:   [2]float32{m.Size.X(), m.Size.Y()},
		Angle:  &angle,
	}
}

// MapSet returns a fresh map set holding the preset's maps in order.
func (p *Preset) MapSet() *ifs.MapSet {
	set := ifs.NewMapSetOf()
	for _, d := range p.Maps {
		set.Add(d.AffineMap())
	}
	return set
}

// StartSeed parses the preset's seed, falling back to def when unset.
func (p *Preset) StartSeed(def ifs.Seed) (ifs.Seed, error) {
	if p.Seed == "" {
		return def, nil
	}
	return ifs.ParseSeed(p.Seed)
}

// Validate checks the preset for structural errors.
func (p *Preset) Validate() error {
	if err := errors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	if len(p.Maps) == 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "preset %s: no maps", p.Name)
	}
	if err := errors.ValidateIterations(p.Iterations); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "preset %s", p.Name)
	}
	if p.Seed != "" {
		if _, err := ifs.ParseSeed(p.Seed); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "preset %s", p.Name)
		}
	}
	for i, d := range p.Maps {
		if d.Angle != nil && d.AngleDegrees != nil {
			return errors.New(errors.ErrCodeInvalidPreset, "preset %s: map %d sets both angle and angle_degrees", p.Name, i)
		}
		vals := []float32{d.Center[0], d.Center[1], d.Size[0], d.Size[1]}
		if d.Angle != nil {
			vals = append(vals, *d.Angle)
		}
		if d.AngleDegrees != nil {
			vals = append(vals, *d.AngleDegrees)
		}
		for _, v := range vals {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return errors.New(errors.ErrCodeInvalidPreset, "preset %s: map %d has a non-finite value", p.Name, i)
			}
		}
	}
	return nil
}

// Expanding returns the indices of maps that are not contractions. Such maps
// are allowed but keep the point cloud from settling on an attractor.
func (p *Preset) Expanding() []int {
	var out []int
	for i, d := range p.Maps {
		if !d.AffineMap().IsContraction() {
			out = append(out, i)
		}
	}
	return out
}

// Decode reads and validates one preset.
func Decode(r io.Reader) (*Preset, error) {
	var p Preset
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode preset")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidPreset, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode writes p as TOML.
func Encode(w io.Writer, p *Preset) error {
	return toml.NewEncoder(w).Encode(p)
}

// Load reads a preset file.
func Load(filename string) (*Preset, error) {
	if err := errors.ValidatePath(filename); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset file %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

// Catalog is a set of presets addressed by name.
type Catalog struct {
	presets map[string]*Preset
}

// NewCatalog builds a catalog; later presets replace earlier ones of the same name.
func NewCatalog(presets ...*Preset) *Catalog {
	c := &Catalog{presets: make(map[string]*Preset, len(presets))}
	for _, p := range presets {
		c.Add(p)
	}
	return c
}

// Builtin returns the catalog of presets embedded in the binary.
func Builtin() (*Catalog, error) {
	return loadFS(builtinFS, "builtin")
}

// LoadDir adds every *.toml file under dir to a copy of the built-in catalog.
func LoadDir(dir string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	user, err := loadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	for _, name := range user.Names() {
		p, _ := user.Get(name)
		c.Add(p)
	}
	return c, nil
}

func loadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	c := NewCatalog()
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".toml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read preset %s: %w", e.Name(), err)
		}
		p, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		c.Add(p)
	}
	return c, nil
}

// Add inserts or replaces a preset.
func (c *Catalog) Add(p *Preset) {
	c.presets[p.Name] = p
}

// Get looks up a preset by name.
func (c *Catalog) Get(name string) (*Preset, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	p, ok := c.presets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodePresetNotFound, "unknown preset %q (available: %s)",
			name, strings.Join(c.Names(), ", "))
	}
	return p, nil
}

// Names returns the preset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the presets sorted by name.
func (c *Catalog) All() []*Preset {
	out := make([]*Preset, 0, len(c.presets))
	for _, name := range c.Names() {
		out = append(out, c.presets[name])
	}
	return slices.Clip(out)
}
