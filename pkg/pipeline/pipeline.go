// Package pipeline provides the resonator design pipeline shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Sample: draw a stack of concentric resonators from a seed, or take an
//     explicit stack supplied by the caller
//  2. Geometry: build the layer polygons and the occupancy canvas
//  3. Render: encode the requested formats (SVG, JSON, PNG, preview)
//
// Sampled stacks and rendered artifacts are cached; geometry is cheap and
// always recomputed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    7,
//	    Count:   4,
//	    MaxSize: 100,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	sampled, err := runner.Sample(ctx, opts)
//	geo, err := runner.Geometry(ctx, sampled.Stack, opts)
//	artifacts, err := runner.Render(ctx, sampled.Stack, geo, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringstack/pkg/cache"
	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/layout"
	"github.com/matzehuels/ringstack/pkg/raster"
	"github.com/matzehuels/ringstack/pkg/resonator"
	"github.com/matzehuels/ringstack/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCount is the number of resonators requested.
	DefaultCount = 4

	// DefaultMaxSize is the side length of the outermost resonator.
	DefaultMaxSize = 100

	// DefaultCanvasSize is the smallest raster canvas. Larger stacks get a
	// canvas as large as their outermost resonator.
	DefaultCanvasSize = 128

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultLayer is the fabrication layer of the outermost resonator.
	DefaultLayer = layout.DefaultLayer

	// DefaultScale is the PNG pixel scale.
	DefaultScale = 4

	// DefaultPreviewSize is the side length of the preview image.
	DefaultPreviewSize = 512

	// MaxCount bounds Count so a request cannot ask for unbounded work.
	MaxCount = 64

	// MaxCanvasSize bounds the raster canvas.
	MaxCanvasSize = 4096
)

// Format constants for output formats.
const (
	FormatSVG     = sink.FormatSVG
	FormatJSON    = sink.FormatJSON
	FormatPNG     = sink.FormatPNG
	FormatPreview = sink.FormatPreview
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the design pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Sample options
	Seed    uint64           `json:"seed,omitempty"`
	Count   int              `json:"count,omitempty"`
	MaxSize int              `json:"max_size,omitempty"`
	Stack   *resonator.Stack `json:"stack,omitempty"` // explicit stack, skips sampling
	Refresh bool             `json:"refresh,omitempty"`

	// Geometry options
	CanvasSize         int  `json:"canvas_size,omitempty"`
	Layer              int  `json:"layer,omitempty"`
	PerResonatorLayers bool `json:"per_resonator_layers,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       int      `json:"scale,omitempty"`
	PreviewSize int      `json:"preview_size,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Stack is the sampled or supplied resonator stack.
	Stack resonator.Stack

	// Truncated is set when the sampler stopped before Count resonators.
	Truncated bool

	// Requested is the number of resonators asked for.
	Requested int

	// StackHash is the content hash of the stack.
	StackHash string

	// Polygons are the layer polygons in stack order.
	Polygons []layout.Polygon

	// Canvas is the occupancy raster.
	Canvas *raster.Canvas

	// Overlapping lists resonators whose inner neighbor reaches into their
	// frame. Informational only.
	Overlapping []int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Resonators   int
	SampleTime   time.Duration
	GeometryTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SampleHit bool // Whether the sampled stack came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, png, preview)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSample(); err != nil {
		return err
	}
	if err := o.ValidateForGeometry(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetSampleDefaults sets default values for sampling.
func (o *Options) SetSampleDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForSample validates and sets defaults for sampling. An explicit
// stack must satisfy every resonator invariant.
func (o *Options) ValidateForSample() error {
	o.SetSampleDefaults()
	if o.Stack != nil {
		if o.Stack.IsEmpty() {
			return errors.New(errors.ErrCodeInvalidInput, "stack has no resonators")
		}
		return o.Stack.Validate()
	}
	if o.Count < 1 || o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidConfiguration, "count must be in 1..%d, got %d", MaxCount, o.Count)
	}
	if o.MaxSize <= 4 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "max size must exceed 4, got %d", o.MaxSize)
	}
	if o.MaxSize > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidConfiguration, "max size must not exceed %d, got %d", MaxCanvasSize, o.MaxSize)
	}
	return nil
}

// SetGeometryDefaults sets default values for geometry.
func (o *Options) SetGeometryDefaults() {
	if o.Layer == 0 {
		o.Layer = DefaultLayer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGeometry validates and sets defaults for geometry.
func (o *Options) ValidateForGeometry() error {
	o.SetGeometryDefaults()
	if o.CanvasSize < 0 || o.CanvasSize > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidConfiguration, "canvas size must be in 0..%d, got %d", MaxCanvasSize, o.CanvasSize)
	}
	if o.Layer < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "layer must not be negative, got %d", o.Layer)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.PreviewSize == 0 {
		o.PreviewSize = DefaultPreviewSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 1 || o.Scale > 32 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "scale must be in 1..32, got %d", o.Scale)
	}
	if o.PreviewSize < 1 || o.PreviewSize > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidConfiguration, "preview size must be in 1..%d, got %d", MaxCanvasSize, o.PreviewSize)
	}
	return ValidateFormats(o.Formats)
}

// CanvasSizeFor returns the canvas size used for stack: the configured size,
// or the larger of [DefaultCanvasSize] and the outermost resonator.
func (o *Options) CanvasSizeFor(stack resonator.Stack) int {
	if o.CanvasSize > 0 {
		return o.CanvasSize
	}
	return max(DefaultCanvasSize, stack.MaxSize())
}

// StackKeyOpts returns cache key options for sampling.
func (o *Options) StackKeyOpts() cache.StackKeyOpts {
	return cache.StackKeyOpts{
		Seed:    o.Seed,
		Count:   o.Count,
		MaxSize: o.MaxSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string, canvasSize int) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:       format,
		Layer:        o.Layer,
		PerResonator: o.PerResonatorLayers,
	}
	switch format {
	case FormatPNG:
		opts.CanvasSize = canvasSize
		opts.Scale = o.Scale
	case FormatPreview:
		opts.Scale = o.PreviewSize
	case FormatJSON:
		if o.Stack == nil {
			seed := o.Seed
			opts.Seed = &seed
		}
	}
	return opts
}

// layoutOptions returns the exporter options.
func (o *Options) layoutOptions() []layout.Option {
	opts := []layout.Option{layout.WithLayer(o.Layer)}
	if o.PerResonatorLayers {
		opts = append(opts, layout.WithPerResonatorLayers())
	}
	return opts
}
