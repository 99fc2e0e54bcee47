package sink

import (
	"slices"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/layout"
	"github.com/matzehuels/ringstack/pkg/raster"
)

// Input bundles the views a format may need.
type Input struct {
	Polygons    []layout.Polygon
	Canvas      *raster.Canvas
	Seed        *uint64
	PreviewSize int
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPNG, FormatPreview:
		return "image/png"
	}
	return "application/octet-stream"
}

// Extension returns the file extension for a format, without the dot.
func Extension(format string) string {
	switch format {
	case FormatPreview:
		return "preview.png"
	case "":
		return ""
	}
	return format
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// Render dispatches to the renderer for format.
func Render(format string, in Input) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(in.Polygons, WithStroke("#5a3a1a")), nil
	case FormatJSON:
		var opts []JSONOption
		if in.Seed != nil {
			opts = append(opts, WithJSONSeed(*in.Seed))
		}
		return RenderJSON(in.Polygons, append(opts, WithJSONIndent())...)
	case FormatPNG:
		return RenderCanvasPNG(in.Canvas)
	case FormatPreview:
		size := in.PreviewSize
		if size == 0 {
			size = 512
		}
		return RenderPreviewPNG(in.Polygons, size)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (supported: %v)", format, Formats)
}
