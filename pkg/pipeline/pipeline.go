// Package pipeline runs the generate → render pipeline shared by the CLI
// commands and the stream server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: resolve a map set (preset or explicit maps), build the seed
//     point set and iterate it with [ifs.Generator]
//  2. Render: encode the points in each requested format with
//     [github.com/matzehuels/ifsgen/pkg/render/sink]
//
// Both stages are cached. Generation is deterministic, so the points are
// keyed by a hash of the maps plus the iteration count and seed, and each
// artifact by a hash of the points plus its render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Preset:  "sierpinski",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ifsgen/pkg/cache"
	"github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/ifs"
	"github.com/matzehuels/ifsgen/pkg/preset"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Stream Server
// =============================================================================

const (
	// DefaultIterations is the number of rounds per frame.
	DefaultIterations = 10000

	// DefaultPreset is used when neither a preset nor maps are given.
	DefaultPreset = "sierpinski"

	// DefaultSeed is the starting point set when the preset names none.
	DefaultSeed = "random:2000"

	// DefaultWidth and DefaultHeight size image outputs in pixels.
	DefaultWidth  = 800
	DefaultHeight = 800

	// DefaultColumns and DefaultRows size terminal output in cells.
	DefaultColumns = 80
	DefaultRows    = 24
)

// Format constants for output formats.
const (
	FormatVertices = "vertices"
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatText     = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatVertices: true,
	FormatJSON:     true,
	FormatSVG:      true,
	FormatPNG:      true,
	FormatText:     true,
}

// FormatExtensions maps a format to its output file extension.
var FormatExtensions = map[string]string{
	FormatVertices: ".f32",
	FormatJSON:     ".json",
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
	FormatText:     ".txt",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Generate options
	Preset     string `json:"preset,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	Seed       string `json:"seed,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Maps overrides Preset when non-empty.
	Maps []ifs.AffineMap `json:"-"`

	// Render options
	Formats    []string    `json:"formats,omitempty"`
	Width      int         `json:"width,omitempty"`
	Height     int         `json:"height,omitempty"`
	Columns    int         `json:"columns,omitempty"`
	Rows       int         `json:"rows,omitempty"`
	Radius     float64     `json:"radius,omitempty"`
	Bounds     *ifs.Bounds `json:"bounds,omitempty"`
	AutoBounds bool        `json:"auto_bounds,omitempty"`
	Foreground string      `json:"foreground,omitempty"`
	Background string      `json:"background,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Catalog *preset.Catalog `json:"-"`

	// resolved is the map set picked by ValidateForGenerate.
	resolved *ifs.MapSet
	// seed is the parsed form of Seed.
	seed ifs.Seed
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Maps is the map set the points were generated from.
	Maps []ifs.AffineMap

	// Points is the generated point cloud.
	Points ifs.PointCloud

	// PointsHash is the content hash of the vertex encoding of Points.
	PointsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MapCount     int
	SeedPoints   int
	PointCount   int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the points came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate resolves the map set and seed and checks the
// iteration count against the configured limits.
func (o *Options) ValidateForGenerate() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	var p *preset.Preset
	if len(o.Maps) > 0 {
		o.resolved = ifs.NewMapSetOf(o.Maps...)
	} else {
		if o.Preset == "" {
			o.Preset = DefaultPreset
		}
		if o.Catalog == nil {
			c, err := preset.Builtin()
			if err != nil {
				return err
			}
			o.Catalog = c
		}
		var err error
		if p, err = o.Catalog.Get(o.Preset); err != nil {
			return err
		}
		o.resolved = p.MapSet()
	}

	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
		if p != nil && p.Iterations > 0 {
			o.Iterations = p.Iterations
		}
	}
	if err := errors.ValidateIterations(o.Iterations); err != nil {
		return err
	}

	seed, err := ifs.ParseSeed(DefaultSeed)
	switch {
	case o.Seed != "":
		seed, err = ifs.ParseSeed(o.Seed)
	case p != nil:
		seed, err = p.StartSeed(seed)
	}
	if err != nil {
		return err
	}
	o.seed = seed
	o.Seed = seed.String()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 || o.Columns < 0 || o.Rows < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "output size must be positive")
	}
	if o.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "radius must be >= 0, got %g", o.Radius)
	}
	if o.Bounds != nil && o.Bounds.Empty() {
		return errors.New(errors.ErrCodeInvalidInput, "bounds must have positive width and height")
	}
	return nil
}

// MapSet returns the map set resolved by validation.
func (o *Options) MapSet() *ifs.MapSet { return o.resolved }

// StartPoints returns the seed point set resolved by validation.
func (o *Options) StartPoints() ifs.PointCloud { return o.seed.Points() }

// PointsKeyOpts returns cache key options for generation.
func (o *Options) PointsKeyOpts() cache.PointsKeyOpts {
	return cache.PointsKeyOpts{Iterations: o.Iterations, Seed: o.Seed}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG:
		k.Width, k.Height, k.Radius = o.Width, o.Height, o.Radius
	case FormatText:
		k.Width, k.Height = o.Columns, o.Rows
	case FormatJSON:
		k.Preset, k.Iterations, k.Seed = o.Preset, o.Iterations, o.Seed
		if set := o.MapSet(); set != nil {
			k.MapsHash = HashMaps(set)
		}
		return k
	default:
		return k
	}
	k.AutoBounds = o.AutoBounds
	if o.Bounds != nil {
		k.Bounds = [4]float32{o.Bounds.MinX, o.Bounds.MinY, o.Bounds.MaxX, o.Bounds.MaxY}
	}
	if o.Foreground != "" || o.Background != "" {
		k.Colors = o.Foreground + "/" + o.Background
	}
	return k
}

// String summarises the generation inputs for log lines.
func (o *Options) String() string {
	src := o.Preset
	if len(o.Maps) > 0 {
		src = fmt.Sprintf("%d maps", len(o.Maps))
	}
	return fmt.Sprintf("%s iterations=%d seed=%s", src, o.Iterations, o.Seed)
}
