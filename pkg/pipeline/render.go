package pipeline

import (
	"fmt"

	"github.com/matzehuels/ringstack/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(geo Geometry, opts Options) (map[string][]byte, error) {
	seed := opts.Seed
	in := sink.Input{
		Polygons:    geo.Polygons,
		Canvas:      geo.Canvas,
		PreviewSize: opts.PreviewSize,
	}
	if opts.Stack == nil {
		in.Seed = &seed
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = sink.RenderCanvasPNG(geo.Canvas, sink.WithScale(opts.Scale))
		default:
			data, err = sink.Render(format, in)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
