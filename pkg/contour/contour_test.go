package contour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/geom"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

func TestBuildReferenceTop(t *testing.T) {
	spec := resonator.Spec{Size: 50, FrameWidth: 4, GapSize: 6, Side: resonator.Top}

	c, err := Build(spec)
	require.NoError(t, err)

	want := Contour{
		{X: -3, Y: 25}, {X: -25, Y: 25}, {X: -25, Y: -25}, {X: 25, Y: -25}, {X: 25, Y: 25}, {X: 3, Y: 25},
		{X: 3, Y: 21},
		{X: 21, Y: 21}, {X: 21, Y: -21}, {X: -21, Y: -21}, {X: -21, Y: 21}, {X: -3, Y: 21},
		{X: -3, Y: 25},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, c, Points)
	assert.True(t, c.Closed())
	assert.Equal(t, geom.Rect{Min: geom.Pt(-25, -25), Max: geom.Pt(25, 25)}, c.Bounds())

	a, b := Gap(spec)
	assert.Equal(t, geom.Pt(-3, 25), a)
	assert.Equal(t, geom.Pt(3, 25), b)
}

func TestBuildEverySide(t *testing.T) {
	for _, side := range resonator.Sides {
		t.Run(side.String(), func(t *testing.T) {
			spec := resonator.Spec{Size: 50, FrameWidth: 4, GapSize: 6, Side: side}
			c, err := Build(spec)
			require.NoError(t, err)

			require.Len(t, c, Points)
			assert.True(t, c.Closed())
			assert.Len(t, distinct(c), Points-1)
			assert.Equal(t, geom.Rect{Min: geom.Pt(-25, -25), Max: geom.Pt(25, 25)}, c.Bounds())

			// Frame area minus the notch, wound counter-clockwise.
			want := 50.0*50 - 42.0*42 - 6.0*4
			assert.InDelta(t, want, c.Area(), 1e-9)

			a, b := Gap(spec)
			assert.Equal(t, a, c[0])
			assert.Equal(t, b, c[5])
			assert.InDelta(t, 6.0, distance(a, b), 1e-9)
		})
	}
}

func TestBuildSingleOpeningOnGapSide(t *testing.T) {
	const size, frame = 50, 4
	// Middle of each frame side, and the midpoint of each outer edge.
	mid := func(s resonator.Side) geom.Point {
		return SideFrame(s).Apply(geom.Pt(0, size/2-float64(frame)/2))
	}
	edge := func(s resonator.Side) geom.Point {
		return SideFrame(s).Apply(geom.Pt(0, size/2))
	}

	for _, gapSide := range resonator.Sides {
		t.Run(gapSide.String(), func(t *testing.T) {
			c, err := Build(resonator.Spec{Size: size, FrameWidth: frame, GapSize: 6, Side: gapSide})
			require.NoError(t, err)

			for _, s := range resonator.Sides {
				inside := geom.Contains(c, mid(s))
				onEdge := onContour(c, edge(s))
				if s == gapSide {
					assert.False(t, inside, "frame on %s should be cut", s)
					assert.False(t, onEdge, "outer edge on %s should be open", s)
				} else {
					assert.True(t, inside, "frame on %s should be solid", s)
					assert.True(t, onEdge, "outer edge on %s should be closed", s)
				}
			}

			// Centre of the ring stays empty.
			assert.False(t, geom.Contains(c, geom.Pt(0, 0)))
		})
	}
}

func TestBuildOddDimensions(t *testing.T) {
	c, err := Build(resonator.Spec{Size: 37, FrameWidth: 3, GapSize: 5, Side: resonator.Right})
	require.NoError(t, err)
	assert.True(t, c.Closed())
	assert.Equal(t, geom.Pt(18.5, 2.5), c[0])
	assert.InDelta(t, 37.0*37-31.0*31-5.0*3, c.Area(), 1e-9)
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name string
		spec resonator.Spec
	}{
		{"gap equals size", resonator.Spec{Size: 50, FrameWidth: 4, GapSize: 50, Side: resonator.Top}},
		{"gap exceeds size", resonator.Spec{Size: 50, FrameWidth: 4, GapSize: 70, Side: resonator.Left}},
		{"frame half of size", resonator.Spec{Size: 50, FrameWidth: 25, GapSize: 6, Side: resonator.Top}},
		{"zero size", resonator.Spec{Size: 0, FrameWidth: 1, GapSize: 1, Side: resonator.Top}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.spec)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, errors.ErrCodeDegenerateGeometry), "got %v", err)
		})
	}
}

func TestTranslate(t *testing.T) {
	c, err := Build(resonator.Spec{Size: 10, FrameWidth: 2, GapSize: 3, Side: resonator.Top})
	require.NoError(t, err)

	moved := c.Translate(5, 5)
	assert.Equal(t, geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(10, 10)}, moved.Bounds())
	assert.Equal(t, geom.Pt(-1.5, 5), c[0], "original untouched")
}

func distinct(c Contour) map[geom.Point]bool {
	seen := make(map[geom.Point]bool)
	for _, p := range c {
		seen[p] = true
	}
	return seen
}

func distance(a, b geom.Point) float64 {
	d := b.Sub(a)
	return max(abs(d.X), abs(d.Y))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func onContour(c Contour, p geom.Point) bool {
	for i := 1; i < len(c); i++ {
		if geom.OnSegment(p, c[i-1], c[i]) {
			return true
		}
	}
	return false
}
