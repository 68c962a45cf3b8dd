package sink

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	maps       []ifs.AffineMap
	preset     string
	iterations int
	seed       string
	indent     bool
}

// WithJSONMaps includes the map set that produced the points.
func WithJSONMaps(maps []ifs.AffineMap) JSONOption {
	return func(r *jsonRenderer) { r.maps = maps }
}

// WithJSONSource records the preset name, iteration count and seed so the
// output documents how to regenerate it.
func WithJSONSource(preset string, iterations int, seed string) JSONOption {
	return func(r *jsonRenderer) { r.preset, r.iterations, r.seed = preset, iterations, seed }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Count      int          `json:"count"`
	Skipped    int          `json:"skipped,omitempty"`
	Preset     string       `json:"preset,omitempty"`
	Iterations int          `json:"iterations,omitempty"`
	Seed       string       `json:"seed,omitempty"`
	Bounds     *jsonBounds  `json:"bounds"`
	Maps       []jsonMap    `json:"maps,omitempty"`
	Points     [][2]float32 `json:"points"`
}

type jsonBounds struct {
	MinX float32 `json:"min_x"`
	MinY float32 `json:"min_y"`
	MaxX float32 `json:"max_x"`
	MaxY float32 `json:"max_y"`
}

type jsonMap struct {
	Center [2]float32 `json:"center"`
	Size   [2]float32 `json:"size"`
	Angle  float32    `json:"angle"`
}

// RenderJSON exports the points, their bounds and optionally the maps.
// Non-finite points cannot be represented in JSON; they are left out and
// counted in "skipped".
func RenderJSON(points ifs.PointCloud, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Count:      len(points),
		Preset:     r.preset,
		Iterations: r.iterations,
		Seed:       r.seed,
		Points:     make([][2]float32, 0, len(points)),
	}
	for _, p := range points {
		if !finite32(p.X()) || !finite32(p.Y()) {
			out.Skipped++
			continue
		}
		out.Points = append(out.Points, [2]float32{p.X(), p.Y()})
	}
	if b, ok := points.Bounds(); ok {
		out.Bounds = &jsonBounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
	}
	for _, m := range r.maps {
		out.Maps = append(out.Maps, jsonMap{
			Center: [2]float32{m.Center.X(), m.Center.Y()},
			Size:   [2]float32{m.Size.X(), m.Size.Y()},
			Angle:  m.Angle,
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func finite32(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
