package sink

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// VertexStride is the size of one encoded point in bytes.
const VertexStride = 8

// RenderVertices encodes points as a tightly packed vertex buffer.
func RenderVertices(points ifs.PointCloud) []byte {
	return AppendVertices(make([]byte, 0, VertexStride*len(points)), points)
}

// AppendVertices appends the vertex encoding of points to dst.
func AppendVertices(dst []byte, points ifs.PointCloud) []byte {
	for _, p := range points {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(p.X()))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(p.Y()))
	}
	return dst
}

// DecodeVertices reads a buffer produced by RenderVertices.
func DecodeVertices(data []byte) (ifs.PointCloud, error) {
	if len(data)%VertexStride != 0 {
		return nil, fmt.Errorf("vertex buffer length %d is not a multiple of %d", len(data), VertexStride)
	}
	points := make(ifs.PointCloud, len(data)/VertexStride)
	for i := range points {
		off := i * VertexStride
		points[i][0] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		points[i][1] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
	}
	return points, nil
}
