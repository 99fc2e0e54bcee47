// Package inference connects an external inverse-design model to the
// resonator core.
//
// The model itself is not part of this module. It is anything that turns a
// numeric feature row into a numeric output vector; [Model] is the seam.
// The output is untrusted: [Decode] maps it into a [resonator.Stack] and
// validates every resonator before anything downstream sees it.
//
// The output layout is a flat sequence of 4-tuples, one per resonator:
//
//	size, frame_width, gap_size, side_index
//
// with side_index 0=top, 1=bottom, 2=left, 3=right. Values are rounded to the
// nearest integer. Tuples may come in any order; Decode sorts them from the
// largest square to the smallest.
package inference

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// TupleLen is the number of output values per resonator.
const TupleLen = 4

// Features is one row of input to a model. Its shape is defined by the
// model; the core only checks that the values are finite.
type Features []float64

// Validate reports INVALID_INPUT for an empty row or non-finite values.
func (f Features) Validate() error {
	if len(f) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty feature row")
	}
	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "feature %d is not finite: %v", i, v)
		}
	}
	return nil
}

// Model maps a feature row to resonator parameters.
type Model interface {
	Predict(ctx context.Context, features Features) ([]float64, error)
}

// ModelFunc adapts a function to [Model].
type ModelFunc func(ctx context.Context, features Features) ([]float64, error)

// Predict calls f.
func (f ModelFunc) Predict(ctx context.Context, features Features) ([]float64, error) {
	return f(ctx, features)
}

// Decode turns raw model output into a validated stack.
//
// A length that is zero or not a multiple of [TupleLen], a non-finite value
// or a side index outside 0..3 fails with INVALID_INPUT. Tuples that decode
// but break the resonator invariants fail with DEGENERATE_GEOMETRY.
func Decode(output []float64) (resonator.Stack, error) {
	if len(output) == 0 || len(output)%TupleLen != 0 {
		return resonator.Stack{}, errors.New(errors.ErrCodeInvalidInput,
			"model output has %d values, want a positive multiple of %d", len(output), TupleLen)
	}

	specs := make([]resonator.Spec, 0, len(output)/TupleLen)
	for i := 0; i < len(output); i += TupleLen {
		var v [TupleLen]int
		for j, x := range output[i : i+TupleLen] {
			if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > math.MaxInt32 {
				return resonator.Stack{}, errors.New(errors.ErrCodeInvalidInput,
					"resonator %d: value %d out of range: %v", i/TupleLen, j, x)
			}
			v[j] = int(math.Round(x))
		}
		side := resonator.Side(v[3])
		if !side.Valid() {
			return resonator.Stack{}, errors.New(errors.ErrCodeInvalidInput,
				"resonator %d: side index %d not in 0..3", i/TupleLen, v[3])
		}
		specs = append(specs, resonator.Spec{Size: v[0], FrameWidth: v[1], GapSize: v[2], Side: side})
	}

	slices.SortStableFunc(specs, func(a, b resonator.Spec) int { return cmp.Compare(b.Size, a.Size) })
	return resonator.ValidStack(specs...)
}

// Design validates features, runs the model and decodes its output.
func Design(ctx context.Context, model Model, features Features) (resonator.Stack, error) {
	if model == nil {
		return resonator.Stack{}, errors.New(errors.ErrCodeInvalidConfiguration, "no inference model configured")
	}
	if err := features.Validate(); err != nil {
		return resonator.Stack{}, err
	}
	out, err := model.Predict(ctx, features)
	if err != nil {
		return resonator.Stack{}, errors.Wrap(errors.ErrCodeInternal, err, "model prediction")
	}
	return Decode(out)
}
