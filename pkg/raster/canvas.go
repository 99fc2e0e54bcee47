// Package raster draws resonator stacks onto a square occupancy canvas for
// visual inspection.
//
// The raster view is derived from the specs directly and never from the
// vector contours, so the two representations cannot drift into each other.
// Pixel (x, y) has x growing to the right and y growing downwards, the usual
// image convention; the top gap side is row 0 of a resonator.
package raster

import (
	"image"
	"slices"
)

// Canvas is a square grid of occupancy values in [0, 1].
type Canvas struct {
	size int
	pix  []float64 // row-major, size*size
}

// NewCanvas returns a zero-filled size×size canvas.
func NewCanvas(size int) *Canvas {
	return &Canvas{size: size, pix: make([]float64, size*size)}
}

// Size returns the side length in pixels.
func (c *Canvas) Size() int { return c.size }

// At returns the occupancy of pixel (x, y). Out-of-range pixels read as 0.
func (c *Canvas) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return 0
	}
	return c.pix[y*c.size+x]
}

// Occupied reports whether pixel (x, y) is set.
func (c *Canvas) Occupied(x, y int) bool { return c.At(x, y) > 0 }

// Count returns the number of set pixels.
func (c *Canvas) Count() int {
	n := 0
	for _, v := range c.pix {
		if v > 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both canvases have the same size and pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	return c.size == other.size && slices.Equal(c.pix, other.pix)
}

// Row returns a copy of row y.
func (c *Canvas) Row(y int) []float64 {
	return slices.Clone(c.pix[y*c.size : (y+1)*c.size])
}

// Gray converts the canvas to an 8-bit image with occupied pixels white.
func (c *Canvas) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, c.size, c.size))
	for i, v := range c.pix {
		img.Pix[i] = uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return img
}

// maxInto composites src (a size×size tile) onto c with its top-left corner
// at (ox, oy), keeping the element-wise maximum.
func (c *Canvas) maxInto(src []float64, size, ox, oy int) {
	for y := range size {
		row := c.pix[(oy+y)*c.size+ox : (oy+y)*c.size+ox+size]
		for x, v := range src[y*size : (y+1)*size] {
			row[x] = max(row[x], v)
		}
	}
}
