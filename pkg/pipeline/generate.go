package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/ifsgen/pkg/cache"
	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// Generate runs the generation stage without caching. Options must have
// passed ValidateForGenerate.
func Generate(opts Options) ifs.PointCloud {
	var g ifs.Generator
	return g.Generate(opts.MapSet(), opts.Iterations, opts.StartPoints())
}

// HashMaps returns a content hash of the map set. Identical maps in the same
// order give the same hash regardless of which preset they came from.
func HashMaps(set *ifs.MapSet) string {
	type entry struct {
		Center [2]float32 `json:"c"`
		Size   [2]float32 `json:"s"`
		Angle  float32    `json:"a"`
	}
	maps := set.Maps()
	entries := make([]entry, len(maps))
	for i, m := range maps {
		entries[i] = entry{
			Center: [2]float32{m.Center.X(), m.Center.Y()},
			Size:   [2]float32{m.Size.X(), m.Size.Y()},
			Angle:  m.Angle,
		}
	}
	data, _ := json.Marshal(entries)
	return cache.Hash(data)
}
