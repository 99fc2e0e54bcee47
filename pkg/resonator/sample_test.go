package resonator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ringstack/pkg/errors"
)

func TestSampleInvariants(t *testing.T) {
	for seed := range uint64(200) {
		for _, maxSize := range []int{12, 30, 50, 100, 250} {
			res, err := Sample(NewRand(seed), 8, maxSize)
			require.NoError(t, err, "seed %d max %d", seed, maxSize)

			s := res.Stack
			require.NoError(t, s.Validate(), "seed %d max %d: %v", seed, maxSize, s.Specs())
			assert.Equal(t, maxSize, s.MaxSize())
			assert.Equal(t, s.Len(), res.Actual)
			assert.Equal(t, 8, res.Requested)
			assert.LessOrEqual(t, res.Actual, 8)
			assert.Equal(t, res.Actual < res.Requested, res.Truncated)

			for i, spec := range s.All() {
				assert.Less(t, spec.FrameWidth, spec.GapSize)
				assert.Less(t, float64(spec.GapSize), float64(spec.Size)/2)
				assert.Greater(t, spec.Size, 2*spec.FrameWidth)
				if i > 0 {
					prev := s.At(i - 1)
					step := prev.Size - spec.Size
					assert.GreaterOrEqual(t, step, minStep)
					assert.Less(t, step, maxStep)
				}
			}
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	a, err := Sample(NewRand(42), 5, 120)
	require.NoError(t, err)
	b, err := Sample(NewRand(42), 5, 120)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	sampler := NewSampler(42)
	first, err := sampler.Sample(5, 120)
	require.NoError(t, err)
	assert.Equal(t, a, first)

	// The sampler keeps its stream, so regeneration moves on.
	var differs bool
	for range 10 {
		next, err := sampler.Sample(5, 120)
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(first.Stack.Specs(), next.Stack.Specs()) {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestSampleTruncates(t *testing.T) {
	// Sizes drop by at least 10 per step, so 100 cannot hold 50 resonators.
	res, err := Sample(NewRand(7), 50, 100)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Less(t, res.Actual, 10)
	assert.Equal(t, 50, res.Requested)
}

func TestSampleHugeCount(t *testing.T) {
	res, err := Sample(NewRand(1), 1<<40, 100)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.LessOrEqual(t, res.Actual, 100/minStep)
	assert.Equal(t, 1<<40, res.Requested)
	assert.LessOrEqual(t, cap(res.Stack.specs), 100/minStep+1)
}

func TestSampleSingle(t *testing.T) {
	res, err := Sample(NewRand(1), 1, 50)
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	assert.Equal(t, 1, res.Actual)
	assert.Equal(t, 50, res.Stack.At(0).Size)
}

func TestSampleInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		maxSize int
		nilRand bool
	}{
		{"max size 5", 3, 5, false},
		{"max size 4", 3, 4, false},
		{"max size 6 cannot fit gap", 3, 6, false},
		{"zero count", 0, 100, false},
		{"negative count", -1, 100, false},
		{"nil random source", 3, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewRand(3)
			if tt.nilRand {
				rng = nil
			}
			res, err := Sample(rng, tt.count, tt.maxSize)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "got %v", err)
			assert.True(t, res.Stack.IsEmpty())
		})
	}
}
