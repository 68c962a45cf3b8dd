package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ifsgen/pkg/cache"
	"github.com/matzehuels/ifsgen/pkg/ifs"
	"github.com/matzehuels/ifsgen/pkg/observability"
	"github.com/matzehuels/ifsgen/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer, a nil cache
// disables caching and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Maps: opts.MapSet().Maps()}

	// Stage 1: Generate
	genStart := time.Now()
	points, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Points = points
	result.PointsHash = cache.Hash(sink.RenderVertices(points))
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.MapCount = len(result.Maps)
	result.Stats.SeedPoints = len(opts.StartPoints())
	result.Stats.PointCount = len(points)
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated points",
		"maps", result.Stats.MapCount,
		"iterations", opts.Iterations,
		"points", result.Stats.PointCount,
		"cached", genHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, points, result.PointsHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates points with caching and reports whether
// they came from the cache. Cached points are stored in vertex format.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (ifs.PointCloud, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PointsKey(HashMaps(opts.MapSet()), opts.PointsKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		} else if hit {
			if points, err := sink.DecodeVertices(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "points")
				return points, true, nil
			}
			r.Logger.Debug("discarding corrupt cache entry", "key", cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "points")
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.MapSet().Len(), opts.Iterations)
	start := time.Now()
	points := Generate(opts)
	hooks.OnGenerateComplete(ctx, len(points), time.Since(start), nil)

	data := sink.RenderVertices(points)
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPoints); err != nil {
		r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "points", len(data))
	}
	return points, false, nil
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, points ifs.PointCloud, pointsHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if pointsHash == "" {
		pointsHash = cache.Hash(sink.RenderVertices(points))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(pointsHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(points, sub)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(pointsHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
