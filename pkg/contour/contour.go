// Package contour converts a resonator spec into the closed polygon that a
// layout tool fills to obtain the split frame.
//
// The contour is a single ring: it runs around the outer square, enters the
// gap, runs around the inner square in the opposite direction and leaves
// through the other edge of the gap. Filled with either the even-odd or the
// non-zero rule it yields the frame with a rectangular notch removed.
//
// Every side is produced from one canonical top-gap construction rotated by a
// quarter-turn side frame, so all contours share the same winding: the outer
// boundary is counter-clockwise and the signed area is positive.
package contour

import (
	"github.com/matzehuels/ringstack/pkg/geom"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Points is the number of points in a contour, closing point included.
const Points = 13

// Contour is a closed ring of points centred on the origin. The first point is
// repeated at the end.
type Contour []geom.Point

// Closed reports whether the contour ends where it starts.
func (c Contour) Closed() bool { return geom.IsClosed(c) }

// Area returns the signed area of the ring.
func (c Contour) Area() float64 { return geom.SignedArea(c) }

// Bounds returns the bounding box of the ring.
func (c Contour) Bounds() geom.Rect { return geom.Bounds(c) }

// Translate returns a copy of the contour shifted by (dx, dy).
func (c Contour) Translate(dx, dy float64) Contour {
	return Contour(geom.Translate(dx, dy).ApplyAll(c))
}

// SideFrame returns the rotation that maps the canonical top-gap construction
// onto side.
func SideFrame(side resonator.Side) geom.Matrix {
	switch side {
	case resonator.Left:
		return geom.QuarterTurn(1)
	case resonator.Bottom:
		return geom.QuarterTurn(2)
	case resonator.Right:
		return geom.QuarterTurn(3)
	default:
		return geom.Identity()
	}
}

// Build returns the contour of spec.
//
// With o = Size/2, i = o-FrameWidth and g = GapSize/2, the canonical top-gap
// ring is
//
//	(-g, o) (-o, o) (-o,-o) ( o,-o) ( o, o) ( g, o)   outer square, CCW
//	( g, i)                                            into the gap
//	( i, i) ( i,-i) (-i,-i) (-i, i) (-g, i)            inner square, CW
//
// followed by the start point again. Build fails with DEGENERATE_GEOMETRY when
// the gap is at least the side length or the frame at least half of it. It
// does not check the stricter sampler invariants; validate external specs
// with [resonator.Spec.Validate] first.
func Build(spec resonator.Spec) (Contour, error) {
	if err := spec.CheckGeometry(); err != nil {
		return nil, err
	}
	return SideFrame(spec.Side).ApplyAll(canonical(spec)), nil
}

// Gap returns the two corners of the gap opening on the outer edge, in
// contour order.
func Gap(spec resonator.Spec) (geom.Point, geom.Point) {
	o, g := float64(spec.Size)/2, float64(spec.GapSize)/2
	m := SideFrame(spec.Side)
	return m.Apply(geom.Pt(-g, o)), m.Apply(geom.Pt(g, o))
}

func canonical(spec resonator.Spec) []geom.Point {
	o := float64(spec.Size) / 2
	i := o - float64(spec.FrameWidth)
	g := float64(spec.GapSize) / 2

	pts := make([]geom.Point, 0, Points)
	pts = append(pts,
		geom.Pt(-g, o), geom.Pt(-o, o), geom.Pt(-o, -o), geom.Pt(o, -o), geom.Pt(o, o), geom.Pt(g, o),
		geom.Pt(g, i),
		geom.Pt(i, i), geom.Pt(i, -i), geom.Pt(-i, -i), geom.Pt(-i, i), geom.Pt(-g, i),
	)
	return append(pts, pts[0])
}
