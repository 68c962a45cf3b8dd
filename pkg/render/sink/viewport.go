package sink

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// DefaultBounds is the orthographic view used when no bounds are given.
var DefaultBounds = ifs.Bounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}

// Defaults for image sinks: white points on black.
const (
	DefaultSize       = 800
	DefaultForeground = "#ffffff"
	DefaultBackground = "#000000"
)

// Option configures the image sinks (SVG, PNG, braille).
// Braille output takes its size in cells as explicit arguments.
type Option func(*config)

type config struct {
	bounds     ifs.Bounds
	auto       bool
	width      int
	height     int
	radius     float64
	foreground string
	background string
}

// WithBounds sets the visible region in point space.
func WithBounds(b ifs.Bounds) Option {
	return func(c *config) { c.bounds = b; c.auto = false }
}

// WithAutoBounds fits the viewport to the finite points of the cloud.
func WithAutoBounds() Option { return func(c *config) { c.auto = true } }

// WithSize sets the output size in pixels (SVG, PNG).
func WithSize(width, height int) Option {
	return func(c *config) { c.width, c.height = width, height }
}

// WithRadius sets the point radius in output pixels. Zero draws single
// pixels in PNG output and half-pixel circles in SVG output.
func WithRadius(r float64) Option { return func(c *config) { c.radius = r } }

// WithColors sets the point and background colors as hex strings.
func WithColors(foreground, background string) Option {
	return func(c *config) { c.foreground, c.background = foreground, background }
}

func newConfig(opts []Option) config {
	c := config{
		bounds:     DefaultBounds,
		width:      DefaultSize,
		height:     DefaultSize,
		foreground: DefaultForeground,
		background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// viewRect resolves the viewport for points as a geom.Rect.
func (c config) viewRect(points ifs.PointCloud) geom.Rect {
	if c.auto {
		if r, ok := fitRect(points); ok {
			return r
		}
	}
	b := c.bounds
	if b.Empty() {
		b = DefaultBounds
	}
	return geom.Rect{
		Min: geom.Coord{X: float64(b.MinX), Y: float64(b.MinY)},
		Max: geom.Coord{X: float64(b.MaxX), Y: float64(b.MaxY)},
	}
}

// fitRect returns the bounding rectangle of the finite points, padded by 5%
// and widened to a unit square when the cloud is a single point or a line.
func fitRect(points ifs.PointCloud) (geom.Rect, bool) {
	var r geom.Rect
	found := false
	for _, p := range points {
		c := geom.Coord{X: float64(p.X()), Y: float64(p.Y())}
		if !finite(c.X) || !finite(c.Y) {
			continue
		}
		if !found {
			r = geom.Rect{Min: c, Max: c}
			found = true
			continue
		}
		r.ExpandToContainCoord(c)
	}
	if !found {
		return r, false
	}
	pad := func(lo, hi *float64) {
		span := *hi - *lo
		if span <= 0 {
			*lo -= 0.5
			*hi += 0.5
			return
		}
		*lo -= span * 0.05
		*hi += span * 0.05
	}
	pad(&r.Min.X, &r.Max.X)
	pad(&r.Min.Y, &r.Max.Y)
	return r, true
}

// project maps a point into a width×height image with y pointing down.
func project(view geom.Rect, width, height int, p ifs.Point) (float64, float64, bool) {
	x, y := float64(p.X()), float64(p.Y())
	if !finite(x) || !finite(y) {
		return 0, 0, false
	}
	px := (x - view.Min.X) / view.Width() * float64(width)
	py := (view.Max.Y - y) / view.Height() * float64(height)
	return px, py, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
