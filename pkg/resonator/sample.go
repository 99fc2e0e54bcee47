package resonator

import (
	"math/rand/v2"

	"github.com/matzehuels/ringstack/pkg/errors"
)

// Sampling bounds. Ranges are half-open, [lo, hi).
const (
	minStep = 10 // smallest size decrement between neighbours
	maxStep = 20 // exclusive upper bound of the decrement
)

// SampleResult is the outcome of [Sample].
type SampleResult struct {
	Stack     Stack
	Truncated bool // fewer resonators than requested fit
	Requested int
	Actual    int
}

// NewRand returns a PCG-backed generator for seed. The same seed always
// yields the same stacks.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Sample draws up to count concentric resonators starting at maxSize.
//
// For each resonator the frame width is drawn from [2, max(3, size/10)), the
// gap from [frame+1, max(frame+2, size/4)) and the side uniformly. The next
// size is the current one minus a step in [10, 20). Sampling stops early when
// the next size would not exceed twice the current frame width, or when a
// drawn spec fails [Spec.Validate]; the offending resonator is never emitted.
//
// Sample fails with INVALID_CONFIGURATION when rng is nil, count < 1, or
// maxSize is too small for even one valid resonator.
func Sample(rng *rand.Rand, count, maxSize int) (SampleResult, error) {
	if rng == nil {
		return SampleResult{}, errors.New(errors.ErrCodeInvalidConfiguration, "a random source is required")
	}
	if count < 1 {
		return SampleResult{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"resonator count must be at least 1, got %d", count)
	}
	if maxSize <= 2*MinFrameWidth {
		return SampleResult{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"max size %d leaves no room for a %d-unit frame", maxSize, MinFrameWidth)
	}

	// Sizes fall by at least minStep, so no stack outgrows maxSize/minStep+1.
	specs := make([]Spec, 0, min(count, maxSize/minStep+1))
	current := maxSize
	for range count {
		frame := uniform(rng, MinFrameWidth, max(MinFrameWidth+1, current/10))
		gap := uniform(rng, frame+1, max(frame+2, current/4))
		side := Sides[rng.IntN(len(Sides))]

		spec := Spec{Size: current, FrameWidth: frame, GapSize: gap, Side: side}
		if spec.Validate() != nil {
			break
		}
		specs = append(specs, spec)

		current -= uniform(rng, minStep, maxStep)
		if current <= 2*frame {
			break
		}
	}

	if len(specs) == 0 {
		return SampleResult{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"max size %d cannot hold a valid resonator", maxSize)
	}
	return SampleResult{
		Stack:     Stack{specs: specs},
		Truncated: len(specs) < count,
		Requested: count,
		Actual:    len(specs),
	}, nil
}

// uniform draws from [lo, hi). hi must exceed lo.
func uniform(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}

// Sampler draws successive stacks from one random stream. It is not safe for
// concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded with seed.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: NewRand(seed)}
}

// Sample draws the next stack. See [Sample].
func (s *Sampler) Sample(count, maxSize int) (SampleResult, error) {
	return Sample(s.rng, count, maxSize)
}
