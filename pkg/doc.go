// Package pkg provides the libraries behind ifsgen, a generator for fractal
// point clouds defined by iterated function systems.
//
// # Overview
//
// A map set is an ordered list of affine contractions, each given by a
// center, a size and a rotation angle. Generation applies every map, in
// order, to every point of a working set, for a number of rounds. The
// packages are organized as:
//
//  1. [ifs] - affine maps, map sets, seeds and the generator
//  2. [preset] - TOML map-set definitions and the built-in catalogue
//  3. [render/sink] - vertex, JSON, SVG, PNG and braille outputs
//  4. [cache] - file, Redis and null caches for points and artifacts
//  5. [pipeline] - generate → render orchestration with caching
//  6. [stream] - HTTP routes and the websocket frame stream
//
// # Architecture
//
//	preset / explicit maps
//	         ↓
//	    [ifs] MapSet + Seed
//	         ↓
//	    [ifs] Generator (rounds × maps × points)
//	         ↓
//	    [render/sink] per frame or per file
//
// # Quick Start
//
//	import (
//	    "github.com/go-gl/mathgl/mgl32"
//	    "github.com/matzehuels/ifsgen/pkg/ifs"
//	    "github.com/matzehuels/ifsgen/pkg/render/sink"
//	)
//
//	set := ifs.NewMapSetOf(
//	    ifs.AffineMap{Center: mgl32.Vec2{0, 0.5}, Size: mgl32.Vec2{0.5, 0.5}},
//	    ifs.AffineMap{Center: mgl32.Vec2{-0.5, -0.5}, Size: mgl32.Vec2{0.5, 0.5}},
//	    ifs.AffineMap{Center: mgl32.Vec2{0.5, -0.5}, Size: mgl32.Vec2{0.5, 0.5}},
//	)
//	seed, _ := ifs.ParseSeed("random:2000")
//	points := ifs.Generate(set, 12, seed.Points())
//	png, err := sink.RenderPNG(points)
//
// [ifs]: github.com/matzehuels/ifsgen/pkg/ifs
// [preset]: github.com/matzehuels/ifsgen/pkg/preset
// [render/sink]: github.com/matzehuels/ifsgen/pkg/render/sink
// [cache]: github.com/matzehuels/ifsgen/pkg/cache
// [pipeline]: github.com/matzehuels/ifsgen/pkg/pipeline
// [stream]: github.com/matzehuels/ifsgen/pkg/stream
package pkg
