package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

func TestRasterizeReferenceFrame(t *testing.T) {
	stack := resonator.NewStack(resonator.Spec{Size: 50, FrameWidth: 4, GapSize: 6, Side: resonator.Top})

	canvas, err := Rasterize(stack, 100)
	require.NoError(t, err)
	require.Equal(t, 100, canvas.Size())

	for y := range 100 {
		for x := range 100 {
			want := referencePixel(x, y)
			if canvas.Occupied(x, y) != want {
				t.Fatalf("pixel (%d,%d) occupied = %v, want %v", x, y, !want, want)
			}
		}
	}

	assert.Equal(t, 50*50-42*42-6*4, canvas.Count())
	assert.True(t, canvas.Occupied(25, 25), "top-left corner")
	assert.False(t, canvas.Occupied(24, 25))
	assert.False(t, canvas.Occupied(50, 25), "gap centre")
	assert.True(t, canvas.Occupied(50, 74), "bottom edge is solid")
}

// referencePixel describes the 50×50, 4 px frame with a 6 px top gap placed
// at (25, 25).
func referencePixel(x, y int) bool {
	lx, ly := x-25, y-25
	if lx < 0 || ly < 0 || lx >= 50 || ly >= 50 {
		return false
	}
	frame := lx < 4 || lx >= 46 || ly < 4 || ly >= 46
	gap := ly < 4 && lx >= 22 && lx < 28
	return frame && !gap
}

func TestRasterizeIdempotent(t *testing.T) {
	res, err := resonator.Sample(resonator.NewRand(11), 5, 120)
	require.NoError(t, err)

	a, err := Rasterize(res.Stack, 128)
	require.NoError(t, err)
	b, err := Rasterize(res.Stack, 128)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestRasterizeOrderIndependent(t *testing.T) {
	for seed := range uint64(20) {
		res, err := resonator.Sample(resonator.NewRand(seed), 6, 150)
		require.NoError(t, err)

		fwd, err := Rasterize(res.Stack, 160)
		require.NoError(t, err)
		rev, err := Rasterize(res.Stack.Reversed(), 160)
		require.NoError(t, err)
		assert.True(t, fwd.Equal(rev), "seed %d", seed)
	}
}

func TestRasterizeCanvasTooSmall(t *testing.T) {
	stack := resonator.NewStack(
		resonator.Spec{Size: 120, FrameWidth: 5, GapSize: 8, Side: resonator.Left},
		resonator.Spec{Size: 90, FrameWidth: 4, GapSize: 6, Side: resonator.Top},
	)

	canvas, err := Rasterize(stack, 100)
	assert.Nil(t, canvas)
	assert.True(t, errors.Is(err, errors.ErrCodeCanvasTooSmall), "got %v", err)

	_, err = Rasterize(stack, 0)
	assert.True(t, errors.Is(err, errors.ErrCodeCanvasTooSmall))

	// A resonator exactly as large as the canvas fits.
	canvas, err = Rasterize(stack, 120)
	require.NoError(t, err)
	assert.True(t, canvas.Occupied(0, 0))
}

func TestRasterizeDegenerate(t *testing.T) {
	stack := resonator.NewStack(resonator.Spec{Size: 50, FrameWidth: 30, GapSize: 6, Side: resonator.Top})
	canvas, err := Rasterize(stack, 100)
	assert.Nil(t, canvas)
	assert.True(t, errors.Is(err, errors.ErrCodeDegenerateGeometry), "got %v", err)
}

func TestRasterizeEmptyStack(t *testing.T) {
	canvas, err := Rasterize(resonator.Stack{}, 16)
	require.NoError(t, err)
	assert.Zero(t, canvas.Count())
}

func TestTileGapSides(t *testing.T) {
	tests := []struct {
		side      resonator.Side
		cut, kept [2]int // (x, y) inside the gap, and just beside it
	}{
		{resonator.Top, [2]int{10, 0}, [2]int{7, 0}},
		{resonator.Bottom, [2]int{10, 19}, [2]int{7, 19}},
		{resonator.Left, [2]int{0, 10}, [2]int{0, 7}},
		{resonator.Right, [2]int{19, 10}, [2]int{19, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			spec := resonator.Spec{Size: 20, FrameWidth: 2, GapSize: 4, Side: tt.side}
			tile := Tile(spec)
			at := func(p [2]int) float64 { return tile[p[1]*20+p[0]] }

			assert.Zero(t, at(tt.cut))
			assert.Equal(t, 1.0, at(tt.kept))
			assert.Zero(t, tile[10*20+10], "centre is empty")

			var n int
			for _, v := range tile {
				if v > 0 {
					n++
				}
			}
			assert.Equal(t, 20*20-16*16-4*2, n)
		})
	}
}

func TestGray(t *testing.T) {
	stack := resonator.NewStack(resonator.Spec{Size: 10, FrameWidth: 2, GapSize: 3, Side: resonator.Bottom})
	canvas, err := Rasterize(stack, 12)
	require.NoError(t, err)

	img := canvas.Gray()
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, uint8(255), img.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, canvas.Row(1), []float64{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0})
}
