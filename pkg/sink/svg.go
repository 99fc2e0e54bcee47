package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/ringstack/pkg/layout"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fill    string
	stroke  string
	padding float64
}

// WithFill sets the fill color of every polygon.
func WithFill(color string) SVGOption { return func(r *svgRenderer) { r.fill = color } }

// WithStroke outlines every polygon in color. Without it no outline is drawn.
func WithStroke(color string) SVGOption { return func(r *svgRenderer) { r.stroke = color } }

// WithPadding adds units of empty space around the outermost ring.
func WithPadding(units float64) SVGOption { return func(r *svgRenderer) { r.padding = units } }

// RenderSVG draws every polygon as a closed path, one group per layer.
func RenderSVG(polygons []layout.Polygon, opts ...SVGOption) []byte {
	r := svgRenderer{fill: "#b87333", padding: 2}
	for _, opt := range opts {
		opt(&r)
	}

	b := layout.Bounds(polygons)
	minX, minY := b.Min.X-r.padding, -b.Max.Y-r.padding
	w, h := b.Width()+2*r.padding, b.Height()+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(minX), num(minY), num(w), num(h), w, h)

	for _, layer := range layout.Layers(polygons) {
		fmt.Fprintf(&buf, `  <g id="layer-%d" fill="%s"`, layer, r.fill)
		if r.stroke != "" {
			fmt.Fprintf(&buf, ` stroke="%s" stroke-width="0.5"`, r.stroke)
		}
		buf.WriteString(">\n")
		for _, p := range polygons {
			if p.Layer != layer {
				continue
			}
			fmt.Fprintf(&buf, `    <path id="resonator-%d" fill-rule="evenodd" d="%s"/>`+"\n", p.Index, pathData(p))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func pathData(p layout.Polygon) string {
	if len(p.Contour) < 2 {
		return ""
	}
	var buf bytes.Buffer
	// The last point repeats the first; Z closes the path instead.
	for i, pt := range p.Contour[:len(p.Contour)-1] {
		if i == 0 {
			buf.WriteByte('M')
		} else {
			buf.WriteString(" L")
		}
		buf.WriteString(num(pt.X))
		buf.WriteByte(' ')
		buf.WriteString(num(-pt.Y))
	}
	buf.WriteString(" Z")
	return buf.String()
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
