package ifs

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Point is a 2D coordinate. Two float32 values with no padding, so a
// PointCloud is laid out exactly like a GPU vertex buffer of vec2.
type Point = mgl32.Vec2

// PointCloud is an ordered sequence of points in generation order.
type PointCloud []Point

// Clone returns an independent copy of c. A nil cloud clones to an empty,
// non-nil cloud so callers can always append to the result.
func (c PointCloud) Clone() PointCloud {
	out := make(PointCloud, len(c))
	copy(out, c)
	return out
}

// Floats returns the cloud as tightly packed x, y pairs. The returned slice
// shares memory with c.
func (c PointCloud) Floats() []float32 {
	if len(c) == 0 {
		return []float32{}
	}
	return unsafe.Slice(&c[0][0], 2*len(c))
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Width returns the horizontal extent.
func (b Bounds) Width() float32 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float32 { return b.MaxY - b.MinY }

// Empty reports whether the box has no area.
func (b Bounds) Empty() bool { return !(b.MaxX > b.MinX && b.MaxY > b.MinY) }

// Bounds returns the bounding box of all finite points, and false when there
// are none.
func (c PointCloud) Bounds() (Bounds, bool) {
	var b Bounds
	found := false
	for _, p := range c {
		if !finite(p[0]) || !finite(p[1]) {
			continue
		}
		if !found {
			b = Bounds{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
			found = true
			continue
		}
		b.MinX = min(b.MinX, p[0])
		b.MinY = min(b.MinY, p[1])
		b.MaxX = max(b.MaxX, p[0])
		b.MaxY = max(b.MaxY, p[1])
	}
	return b, found
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
