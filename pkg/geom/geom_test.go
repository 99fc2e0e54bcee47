package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterTurnIsExact(t *testing.T) {
	p := Pt(-3, 25)

	assert.Equal(t, p, QuarterTurn(0).Apply(p))
	assert.Equal(t, Pt(-25, -3), QuarterTurn(1).Apply(p))
	assert.Equal(t, Pt(3, -25), QuarterTurn(2).Apply(p))
	assert.Equal(t, Pt(25, 3), QuarterTurn(3).Apply(p))
	assert.Equal(t, QuarterTurn(3), QuarterTurn(-1))
	assert.Equal(t, QuarterTurn(1), QuarterTurn(5))
}

func TestQuarterTurnPreservesOrientation(t *testing.T) {
	for n := range 4 {
		assert.Equal(t, 1.0, QuarterTurn(n).Determinant(), "turn %d", n)
	}
	assert.Equal(t, -1.0, Scale(-1, 1).Determinant())
}

func TestMultiply(t *testing.T) {
	m := Translate(10, 0).Multiply(QuarterTurn(1))
	assert.Equal(t, Pt(10, 1), m.Apply(Pt(1, 0)))
	assert.True(t, QuarterTurn(1).Multiply(QuarterTurn(3)).IsIdentity())
}

func TestSignedArea(t *testing.T) {
	ccw := []Point{Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(0, 2)}
	assert.InDelta(t, 4.0, SignedArea(ccw), 1e-12)
	assert.InDelta(t, -4.0, SignedArea(Reverse(ccw)), 1e-12)

	closed := append(append([]Point{}, ccw...), ccw[0])
	assert.InDelta(t, 4.0, SignedArea(closed), 1e-12)
	assert.True(t, IsClosed(closed))
	assert.False(t, IsClosed(ccw))
	assert.Zero(t, SignedArea(ccw[:2]))
}

func TestBounds(t *testing.T) {
	r := Bounds([]Point{Pt(1, -2), Pt(-3, 4), Pt(0, 0)})
	require.Equal(t, Rect{Min: Pt(-3, -2), Max: Pt(1, 4)}, r)
	assert.Equal(t, 4.0, r.Width())
	assert.Equal(t, 6.0, r.Height())
	assert.Equal(t, Rect{}, Bounds(nil))

	u := r.Union(Rect{Min: Pt(0, 0), Max: Pt(5, 5)})
	assert.Equal(t, Rect{Min: Pt(-3, -2), Max: Pt(5, 5)}, u)
}

func TestContains(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}

	assert.True(t, Contains(square, Pt(2, 2)))
	assert.False(t, Contains(square, Pt(5, 2)))
	assert.False(t, Contains(square, Pt(4, 2)), "boundary counts as outside")
	assert.True(t, OnSegment(Pt(4, 2), Pt(4, 0), Pt(4, 4)))
	assert.False(t, OnSegment(Pt(4, 5), Pt(4, 0), Pt(4, 4)))
}
