// Package render groups the consumers of generated point clouds.
//
// Generation lives in [ifs] and produces an ordered [ifs.PointCloud]. The
// [sink] subpackage turns one cloud into bytes:
//
//   - vertices: little-endian float32 x, y pairs, 8 bytes per point, ready
//     for a GPU vertex buffer or a websocket frame
//   - JSON: point list with count, bounds and optionally the maps
//   - SVG: one circle per point, y axis pointing up
//   - PNG: rasterised with gogpu/gg
//   - braille: terminal text with 2x4 dots per cell
//
// Image sinks map the fixed [-1, 1]² view to the output by default, with
// white points on black. [sink.WithBounds] and [sink.WithAutoBounds] change
// the view.
//
//	svg := sink.RenderSVG(points, sink.WithSize(800, 800))
//	png, err := sink.RenderPNG(points, sink.WithAutoBounds())
//
// [ifs]: github.com/matzehuels/ifsgen/pkg/ifs
// [ifs.PointCloud]: github.com/matzehuels/ifsgen/pkg/ifs.PointCloud
// [sink]: github.com/matzehuels/ifsgen/pkg/render/sink
// [sink.WithBounds]: github.com/matzehuels/ifsgen/pkg/render/sink.WithBounds
// [sink.WithAutoBounds]: github.com/matzehuels/ifsgen/pkg/render/sink.WithAutoBounds
package render
