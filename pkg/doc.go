// Package pkg provides the core libraries for ringstack split-ring resonator
// design.
//
// # Overview
//
// Ringstack samples stacks of concentric square split-ring resonators (SRRs),
// turns each resonator into a closed polygon with a gap notch on one side,
// rasterizes the stack for inspection and exports the polygons as layers for
// fabrication layout writers.
//
// # Architecture
//
// The typical data flow:
//
//	seed
//	  ↓
//	[resonator] sample a stack (size, frame width, gap size, gap side)
//	  ↓                      ↘
//	[contour] + [layout]     [raster]
//	  polygons per layer       occupancy canvas
//	  ↓                      ↙
//	[sink] SVG / JSON / PNG / preview
//
// Both views read the same stack and never each other.
//
// # Quick Start
//
//	sampled, _ := resonator.NewSampler(7).Sample(4, 100)
//	polygons, _ := layout.Export(sampled.Stack)
//	canvas, _ := raster.Rasterize(sampled.Stack, 128)
//	svg := sink.RenderSVG(polygons)
//	png, _ := sink.RenderCanvasPNG(canvas)
//
// # Main Packages
//
// ## Geometry
//
// [geom] - Points, affine matrices with exact quarter turns, and polygon
// helpers (signed area, bounds, containment).
//
// [resonator] - Resonator specs, gap sides, the immutable [resonator.Stack]
// and the seeded sampler.
//
// [contour] - One closed counter-clockwise contour per resonator, gap notch
// included.
//
// [raster] - Square occupancy canvas built directly from the specs.
//
// [layout] - Layer polygons handed to layout writers.
//
// ## Output and Storage
//
// [sink] - SVG, layer JSON, canvas PNG and anti-aliased preview PNG.
//
// [io] - Stack documents on disk.
//
// [cache] - File, Redis and null caches keyed by content hash.
//
// ## Orchestration
//
// [pipeline] - Sample → geometry → render with caching, shared by the CLI and
// the HTTP API.
//
// [api] - HTTP surface for display and export collaborators.
//
// [inference] - Decodes the output of an external design model into a stack.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared by every package.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include Redis tests (REDIS_ADDR)
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/geom
// [resonator]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/resonator
// [resonator.Stack]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/resonator#Stack
// [contour]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/contour
// [raster]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/raster
// [layout]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/layout
// [sink]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/sink
// [io]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/api
// [inference]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/inference
// [observability]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/ringstack/pkg/errors
package pkg
