package raster

import (
	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Rasterize draws every resonator of stack onto a fresh canvasSize×canvasSize
// canvas.
//
// Each resonator is drawn as a frame-thick square border with a gap-wide strip
// centred on its gap side cleared, placed at offset (canvasSize-Size)/2 on
// both axes. Resonators are combined with an element-wise maximum, so the
// result does not depend on stack order.
//
// Rasterize fails with CANVAS_TOO_SMALL when a resonator is larger than the
// canvas and with DEGENERATE_GEOMETRY when a spec cannot be drawn. It returns
// no canvas on failure.
func Rasterize(stack resonator.Stack, canvasSize int) (*Canvas, error) {
	if canvasSize <= 0 {
		return nil, errors.New(errors.ErrCodeCanvasTooSmall, "canvas size must be positive, got %d", canvasSize)
	}
	for i, spec := range stack.All() {
		if err := spec.CheckGeometry(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "resonator %d", i)
		}
		if spec.Size > canvasSize {
			return nil, errors.New(errors.ErrCodeCanvasTooSmall,
				"resonator %d (size %d) does not fit a %d px canvas", i, spec.Size, canvasSize)
		}
	}

	canvas := NewCanvas(canvasSize)
	for _, spec := range stack.All() {
		off := (canvasSize - spec.Size) / 2
		canvas.maxInto(Tile(spec), spec.Size, off, off)
	}
	return canvas, nil
}

// Tile returns the Size×Size occupancy grid of one resonator, row-major.
// The spec must pass [resonator.Spec.CheckGeometry].
func Tile(spec resonator.Spec) []float64 {
	n, f := spec.Size, spec.FrameWidth
	tile := make([]float64, n*n)
	set := func(x0, y0, x1, y1 int, v float64) {
		for y := max(y0, 0); y < min(y1, n); y++ {
			for x := max(x0, 0); x < min(x1, n); x++ {
				tile[y*n+x] = v
			}
		}
	}

	set(0, 0, n, f, 1)   // top
	set(0, n-f, n, n, 1) // bottom
	set(0, 0, f, n, 1)   // left
	set(n-f, 0, n, n, 1) // right

	start := (n - spec.GapSize) / 2
	end := start + spec.GapSize
	switch spec.Side {
	case resonator.Top:
		set(start, 0, end, f, 0)
	case resonator.Bottom:
		set(start, n-f, end, n, 0)
	case resonator.Left:
		set(0, start, f, end, 0)
	case resonator.Right:
		set(n-f, start, n, end, 0)
	}
	return tile
}
