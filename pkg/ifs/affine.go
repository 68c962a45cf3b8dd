package ifs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// AffineMap is one contraction transform of an IFS.
//
// The zero value is a degenerate map that collapses every point onto the
// origin. Size components in (0, 1) make the map a contraction; this is not
// enforced.
type AffineMap struct {
	Center mgl32.Vec2 // translation applied last
	Size   mgl32.Vec2 // per-axis scale factors
	Angle  float32    // rotation in radians, applied first
}

// Identity returns the map that leaves every point unchanged.
func Identity() AffineMap {
	return AffineMap{Size: mgl32.Vec2{1, 1}}
}

// Matrix returns the homogeneous 3x3 transform Translate(Center) ·
// Scale(Size) · Rotate(Angle). It is pure: equal fields always produce a
// bit-identical matrix.
func (m AffineMap) Matrix() mgl32.Mat3 {
	return mgl32.Translate2D(m.Center.X(), m.Center.Y()).
		Mul3(mgl32.Scale2D(m.Size.X(), m.Size.Y())).
		Mul3(mgl32.HomogRotate2D(m.Angle))
}

// Apply transforms a single point.
func (m AffineMap) Apply(p Point) Point {
	return apply(m.Matrix(), p)
}

// IsContraction reports whether both scale factors lie strictly inside (0, 1).
func (m AffineMap) IsContraction() bool {
	return m.Size.X() > 0 && m.Size.X() < 1 && m.Size.Y() > 0 && m.Size.Y() < 1
}

func (m AffineMap) String() string {
	return fmt.Sprintf("center=(%g,%g) size=(%g,%g) angle=%g",
		m.Center.X(), m.Center.Y(), m.Size.X(), m.Size.Y(), m.Angle)
}

// apply multiplies the column-major homogeneous matrix with (p, 1).
func apply(mat mgl32.Mat3, p Point) Point {
	return Point{
		mat[0]*p[0] + mat[3]*p[1] + mat[6],
		mat[1]*p[0] + mat[4]*p[1] + mat[7],
	}
}
