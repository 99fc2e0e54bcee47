// Package layout turns a resonator stack into the ordered layer polygons a
// fabrication layout writer consumes.
//
// [Export] runs [contour.Build] over every resonator in stack order and tags
// each contour with a layer number. By default every resonator goes to a
// single layer; [WithPerResonatorLayers] assigns consecutive layers instead.
//
// The package never touches the file system. A layout-file writer (for
// example a GDSII stream writer) implements [Writer] outside the core and
// receives the polygons together with a destination.
package layout

import (
	"context"

	"github.com/matzehuels/ringstack/pkg/contour"
	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/geom"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// DefaultLayer is the layer used when none is configured.
const DefaultLayer = 1

// Polygon is one closed contour tagged with its fabrication layer.
type Polygon struct {
	Layer     int             `json:"layer"`
	Index     int             `json:"index"` // position in the stack, 0 = outermost
	Resonator resonator.Spec  `json:"resonator"`
	Contour   contour.Contour `json:"points"`
}

// Writer persists layer polygons to a layout file. Implementations live
// outside the core.
type Writer interface {
	WriteLayout(ctx context.Context, polygons []Polygon, dest string) error
}

// Option configures [Export].
type Option func(*exporter)

type exporter struct {
	layer        int
	perResonator bool
}

// WithLayer sets the layer of the first (or only) resonator.
func WithLayer(n int) Option { return func(e *exporter) { e.layer = n } }

// WithPerResonatorLayers puts resonator i on layer base+i.
func WithPerResonatorLayers() Option { return func(e *exporter) { e.perResonator = true } }

// Export builds the contour of every resonator in stack order.
//
// Export is all-or-nothing: the first DEGENERATE_GEOMETRY error aborts the
// export and no polygons are returned.
func Export(stack resonator.Stack, opts ...Option) ([]Polygon, error) {
	e := exporter{layer: DefaultLayer}
	for _, opt := range opts {
		opt(&e)
	}

	polygons := make([]Polygon, 0, stack.Len())
	for i, spec := range stack.All() {
		c, err := contour.Build(spec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "export resonator %d", i)
		}
		layer := e.layer
		if e.perResonator {
			layer += i
		}
		polygons = append(polygons, Polygon{Layer: layer, Index: i, Resonator: spec, Contour: c})
	}
	return polygons, nil
}

// Layers returns the distinct layer numbers in first-seen order.
func Layers(polygons []Polygon) []int {
	var out []int
	seen := make(map[int]bool)
	for _, p := range polygons {
		if !seen[p.Layer] {
			seen[p.Layer] = true
			out = append(out, p.Layer)
		}
	}
	return out
}

// Bounds returns the bounding box of all polygons.
func Bounds(polygons []Polygon) geom.Rect {
	var r geom.Rect
	for i, p := range polygons {
		if i == 0 {
			r = p.Contour.Bounds()
			continue
		}
		r = r.Union(p.Contour.Bounds())
	}
	return r
}
