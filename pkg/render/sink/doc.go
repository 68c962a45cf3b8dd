// Package sink provides output format renderers for generated point clouds.
//
// # Overview
//
// A "sink" turns an [ifs.PointCloud] into bytes for a consumer. This
// package provides renderers for:
//
//   - Vertices: raw little-endian float32 pairs, ready for a GPU vertex buffer
//   - JSON: point and map export for external tools
//   - SVG: one circle per point
//   - PNG: rasterised with github.com/gogpu/gg
//   - Braille: terminal text, 2x4 micro-pixels per cell
//
// # Viewport
//
// Every image sink maps points through a viewport. The default is the
// orthographic [-1, 1]² view; [WithBounds] sets another one and
// [WithAutoBounds] fits the viewport to the cloud. The y axis points up in
// point space and down in image space, so images are flipped vertically.
//
//	svg := sink.RenderSVG(points, sink.WithAutoBounds(), sink.WithRadius(0.004))
//	png, err := sink.RenderPNG(points, sink.WithSize(1024, 1024))
//
// Points outside the viewport are dropped by the raster sinks and clipped by
// the SVG viewBox. Non-finite points (from expanding maps) are skipped.
//
// # Vertex Layout
//
// [RenderVertices] emits 8 bytes per point (x then y, IEEE 754 float32,
// little endian) with no header or padding, so len(buf)/8 is the point count.
// [DecodeVertices] reads the same layout back.
//
// [ifs.PointCloud]: github.com/matzehuels/ifsgen/pkg/ifs.PointCloud
package sink
