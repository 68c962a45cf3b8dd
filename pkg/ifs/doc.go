// Package ifs generates point clouds for Iterated Function Systems.
//
// # Overview
//
// An IFS is a finite list of affine contraction maps. Each map is described by
// an [AffineMap]: a center, a pair of scale factors and a rotation angle. The
// maps live in a [MapSet], an ordered container whose order is also the order
// in which the maps are applied.
//
// [Generate] evolves a working set of points through the map set:
//
//	set := ifs.NewMapSetOf(
//	    ifs.AffineMap{Center: mgl32.Vec2{0.5, 0}, Size: mgl32.Vec2{0.5, 0.5}},
//	)
//	cloud := ifs.Generate(set, 2, ifs.PointCloud{{0, 0}})
//	// cloud == PointCloud{{0.75, 0}}
//
// # Iteration Semantics
//
// Every round applies every map, in stored order, to every point of the
// working set, in place. A round therefore composes the whole map sequence
// onto each point; the set never grows. This is a flat evolution of one point
// set, not the random "chaos game" and not the exhaustive tree in which every
// point spawns one child per map. With contraction maps every starting point
// converges to the fixed point of the composed map sequence.
//
// # Transform Order
//
// [AffineMap.Matrix] always composes
//
//	p' = Translate(center) · Scale(size) · Rotate(angle) · p
//
// so a point is rotated first, then scaled, then translated.
//
// # Frame Loops
//
// Hosts that generate once per rendered frame should keep a [Generator] and
// use [Generator.AppendGenerate] with a buffer they own:
//
//	var g ifs.Generator
//	buf := make(ifs.PointCloud, 0, len(start))
//	for frame := range frames {
//	    buf = g.AppendGenerate(buf[:0], set, iterations, start)
//	    upload(buf.Floats())
//	}
//
// The result never aliases the starting set or generator state.
//
// # Concurrency
//
// Generation is single-threaded and synchronous. A MapSet must not be mutated
// while a generation call reads it; hosts that edit from another goroutine
// should pass a [MapSet.Snapshot] instead.
package ifs
