package sink

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/layout"
)

// PreviewOption configures [RenderPreviewPNG].
type PreviewOption func(*previewRenderer)

type previewRenderer struct {
	fg, bg color.Color
	margin float64
}

// WithColors sets the contour and background colors.
func WithColors(fg, bg color.Color) PreviewOption {
	return func(r *previewRenderer) { r.fg, r.bg = fg, bg }
}

// WithMargin sets the border around the design as a fraction of the image
// size (default 0.05).
func WithMargin(m float64) PreviewOption {
	return func(r *previewRenderer) { r.margin = m }
}

// RenderPreviewPNG rasterizes the contours into a size×size image, scaled to
// fit and centered.
func RenderPreviewPNG(polygons []layout.Polygon, size int, opts ...PreviewOption) ([]byte, error) {
	img, err := RenderPreview(polygons, size, opts...)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// RenderPreview is [RenderPreviewPNG] without the encoding step.
func RenderPreview(polygons []layout.Polygon, size int, opts ...PreviewOption) (*image.RGBA, error) {
	r := previewRenderer{fg: color.RGBA{0xb8, 0x73, 0x33, 0xff}, bg: color.White, margin: 0.05}
	for _, opt := range opts {
		opt(&r)
	}
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeCanvasTooSmall, "preview size must be positive, got %d", size)
	}
	if r.margin < 0 || r.margin >= 0.5 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "preview margin %g not in [0, 0.5)", r.margin)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.bg), image.Point{}, draw.Src)
	if len(polygons) == 0 {
		return dst, nil
	}

	b := layout.Bounds(polygons)
	extent := max(b.Width(), b.Height())
	if extent <= 0 {
		return dst, nil
	}
	s := float64(size) * (1 - 2*r.margin) / extent
	cx, cy := (b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2
	half := float64(size) / 2

	z := vector.NewRasterizer(size, size)
	for _, p := range polygons {
		for i, pt := range p.Contour {
			x := float32(half + (pt.X-cx)*s)
			y := float32(half - (pt.Y-cy)*s)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(r.fg), image.Point{})
	return dst, nil
}
