package ifs

import "github.com/go-gl/mathgl/mgl32"

// Generate evolves start through set for the given number of rounds and
// returns the result as a new cloud. See [Generator.AppendGenerate].
func Generate(set *MapSet, iterations int, start PointCloud) PointCloud {
	var g Generator
	return g.Generate(set, iterations, start)
}

// Generator runs the flat IFS iteration. It caches the per-map matrices
// between calls so a frame loop does not reallocate them.
//
// The zero value is ready to use. A Generator is not safe for concurrent use
// and never retains the clouds it returns.
type Generator struct {
	mats []mgl32.Mat3
}

// Generate is AppendGenerate into a freshly allocated cloud.
func (g *Generator) Generate(set *MapSet, iterations int, start PointCloud) PointCloud {
	return g.AppendGenerate(make(PointCloud, 0, len(start)), set, iterations, start)
}

// AppendGenerate copies start onto the end of dst and evolves the copied
// points: for each of the iterations rounds, each map of set in stored order
// is applied in place to every working point. It returns the extended dst.
//
// An empty start stays empty. Zero or negative iterations return start
// unchanged. start itself is never modified, and dst must not overlap it.
func (g *Generator) AppendGenerate(dst PointCloud, set *MapSet, iterations int, start PointCloud) PointCloud {
	base := len(dst)
	dst = append(dst, start...)
	work := dst[base:]
	if len(work) == 0 || iterations <= 0 || set == nil || set.Len() == 0 {
		return dst
	}

	g.mats = g.mats[:0]
	for _, m := range set.maps {
		g.mats = append(g.mats, m.Matrix())
	}

	for round := 0; round < iterations; round++ {
		for _, mat := range g.mats {
			for i := range work {
				work[i] = apply(mat, work[i])
			}
		}
	}
	return dst
}
