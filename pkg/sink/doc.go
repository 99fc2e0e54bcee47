// Package sink renders resonator designs to output formats.
//
// Vector outputs start from the layer polygons produced by
// [layout.Export]; raster outputs start from a [raster.Canvas] or rasterize
// the polygons themselves:
//
//   - [RenderSVG]: one even-odd filled path per contour, grouped by layer
//   - [RenderJSON]: the layer polygons for an external layout writer
//   - [RenderCanvasPNG]: the occupancy canvas as a gray PNG
//   - [RenderPreviewPNG]: anti-aliased contours scaled into a square image
//
// Layout coordinates have y pointing up; image outputs flip them so that
// the top gap appears at the top of the picture.
package sink

// Format names accepted by [Render].
const (
	FormatSVG     = "svg"
	FormatJSON    = "json"
	FormatPNG     = "png"
	FormatPreview = "preview"
)

// Formats lists every supported format name.
var Formats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPreview}
