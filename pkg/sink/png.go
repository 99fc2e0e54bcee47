package sink

import (
	"bytes"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/raster"
)

// PNGOption configures [RenderCanvasPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale int
}

// WithScale enlarges every canvas pixel to an s×s block (default 4).
func WithScale(s int) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderCanvasPNG encodes the occupancy canvas as a gray PNG, occupied
// pixels white.
func RenderCanvasPNG(c *raster.Canvas, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 4}
	for _, opt := range opts {
		opt(&r)
	}
	if c == nil || c.Size() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty canvas")
	}
	if r.scale < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "png scale must be at least 1, got %d", r.scale)
	}

	var img image.Image = c.Gray()
	if r.scale > 1 {
		n := c.Size() * r.scale
		dst := image.NewGray(image.Rect(0, 0, n, n))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
