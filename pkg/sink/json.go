package sink

import (
	"encoding/json"

	"github.com/matzehuels/ringstack/pkg/geom"
	"github.com/matzehuels/ringstack/pkg/layout"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed   *uint64
	indent bool
}

// WithJSONSeed records the sampling seed so the design can be regenerated.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = &seed } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Seed     *uint64          `json:"seed,omitempty"`
	Bounds   geom.Rect        `json:"bounds"`
	Layers   []int            `json:"layers"`
	Polygons []layout.Polygon `json:"polygons"`
}

// RenderJSON encodes the layer polygons with their bounding box.
func RenderJSON(polygons []layout.Polygon, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Seed:     r.seed,
		Bounds:   layout.Bounds(polygons),
		Layers:   layout.Layers(polygons),
		Polygons: polygons,
	}
	if out.Layers == nil {
		out.Layers = []int{}
	}
	if out.Polygons == nil {
		out.Polygons = []layout.Polygon{}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
