// Package stream serves generated point clouds over HTTP and websockets.
//
// # Routes
//
//	GET /healthz                    "ok"
//	GET /presets                    catalogue as JSON
//	GET /presets/{name}             one preset as TOML
//	GET /render/{name}.{format}     one artifact through the cached pipeline
//	GET /ws                         per-frame vertex stream
//
// # Frame Stream
//
// A websocket client picks the map set and pacing with query parameters:
//
//	/ws?preset=fern&iterations=200&seed=random:5000&fps=30&frames=0
//
// The server first sends one text message holding a JSON [Hello], then one
// binary message per frame. Each frame is the vertex buffer of a fresh
// Generate call (little-endian float32 x, y pairs, 8 bytes per point), so a
// browser can hand it straight to a WebGL buffer. frames=0 streams until the
// client disconnects; otherwise the server closes normally after that many
// frames.
//
// Every connection owns its own map set snapshot and [ifs.Generator], so no
// state is shared between frame loops.
//
// [ifs.Generator]: github.com/matzehuels/ifsgen/pkg/ifs.Generator
package stream
