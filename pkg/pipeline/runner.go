package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ringstack/pkg/cache"
	"github.com/matzehuels/ringstack/pkg/observability"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete sample → geometry → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: Sample
	sampleStart := time.Now()
	sampled, sampleHit, err := r.SampleWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	result.Stack = sampled.Stack
	result.Truncated = sampled.Truncated
	result.Requested = sampled.Requested
	result.StackHash = stackHash(sampled.Stack)
	result.Overlapping = sampled.Stack.Overlapping()
	result.Stats.Resonators = sampled.Stack.Len()
	result.Stats.SampleTime = time.Since(sampleStart)
	result.CacheInfo.SampleHit = sampleHit

	logger.Info("sampled resonators",
		"resonators", sampled.Stack.Len(),
		"requested", sampled.Requested,
		"duration", result.Stats.SampleTime)
	if sampled.Truncated {
		logger.Warn("stack truncated", "requested", sampled.Requested, "actual", sampled.Actual)
	}
	if len(result.Overlapping) > 0 {
		logger.Debug("resonators overlap", "indices", result.Overlapping)
	}

	// Stage 2: Geometry
	geoStart := time.Now()
	geo, err := r.Geometry(ctx, sampled.Stack, opts)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	result.Polygons = geo.Polygons
	result.Canvas = geo.Canvas
	result.Stats.GeometryTime = time.Since(geoStart)

	logger.Info("built geometry",
		"polygons", len(geo.Polygons),
		"canvas", geo.CanvasSize,
		"duration", result.Stats.GeometryTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sampled.Stack, geo, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SampleWithCacheInfo samples a stack with caching and returns cache hit info.
// An explicit opts.Stack is returned as is and never cached.
func (r *Runner) SampleWithCacheInfo(ctx context.Context, opts Options) (resonator.SampleResult, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSample(); err != nil {
		return resonator.SampleResult{}, false, err
	}

	if opts.Stack != nil {
		n := opts.Stack.Len()
		return resonator.SampleResult{Stack: *opts.Stack, Requested: n, Actual: n}, false, nil
	}

	hooks := observability.Pipeline()
	cacheKey := r.Keyer.StackKey(opts.StackKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := unmarshalSample(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "stack")
				return res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "stack")
	}

	start := time.Now()
	hooks.OnSampleStart(ctx, opts.Seed, opts.Count, opts.MaxSize)
	res, err := Sample(opts)
	hooks.OnSampleComplete(ctx, res.Actual, res.Truncated, time.Since(start), err)
	if err != nil {
		return resonator.SampleResult{}, false, err
	}

	if data, err := marshalSample(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLStack); err == nil {
			observability.Cache().OnCacheSet(ctx, "stack", len(data))
		} else {
			opts.Logger.Debug("cache write failed", "err", err)
		}
	}
	return res, false, nil
}

// Sample is a convenience wrapper that calls SampleWithCacheInfo and discards the cache hit info.
func (r *Runner) Sample(ctx context.Context, opts Options) (resonator.SampleResult, error) {
	res, _, err := r.SampleWithCacheInfo(ctx, opts)
	return res, err
}

// Geometry builds the polygons and canvas for stack.
func (r *Runner) Geometry(ctx context.Context, stack resonator.Stack, opts Options) (Geometry, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGeometry(); err != nil {
		return Geometry{}, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnGeometryStart(ctx, stack.Len())
	geo, err := BuildGeometry(stack, opts)
	hooks.OnGeometryComplete(ctx, len(geo.Polygons), time.Since(start), err)
	return geo, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, stack resonator.Stack, geo Geometry, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hash := stackHash(stack)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, geo.CanvasSize))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(geo, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, geo.CanvasSize))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, stack resonator.Stack, geo Geometry, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, stack, geo, opts)
	return artifacts, err
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
