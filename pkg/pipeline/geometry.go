package pipeline

import (
	"fmt"

	"github.com/matzehuels/ringstack/pkg/layout"
	"github.com/matzehuels/ringstack/pkg/raster"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Geometry holds the two independent views of a stack.
type Geometry struct {
	Polygons   []layout.Polygon
	Canvas     *raster.Canvas
	CanvasSize int
}

// BuildGeometry exports the layer polygons and rasterizes the stack.
// Both views fail as a whole; no partial geometry is returned.
func BuildGeometry(stack resonator.Stack, opts Options) (Geometry, error) {
	polygons, err := layout.Export(stack, opts.layoutOptions()...)
	if err != nil {
		return Geometry{}, fmt.Errorf("contours: %w", err)
	}

	size := opts.CanvasSizeFor(stack)
	canvas, err := raster.Rasterize(stack, size)
	if err != nil {
		return Geometry{}, fmt.Errorf("raster: %w", err)
	}
	return Geometry{Polygons: polygons, Canvas: canvas, CanvasSize: size}, nil
}
