// Package resonator defines square split-ring resonators and the concentric
// stacks they form.
//
// A [Spec] describes one resonator: the outer side length, the frame width,
// the width of the gap cut into the frame and the [Side] that carries the gap.
// A [Stack] is an ordered sequence of specs with strictly decreasing sizes,
// outermost first.
//
// # Invariants
//
// A valid spec satisfies
//
//	0 < FrameWidth < GapSize < Size/2
//	Size > 2*FrameWidth
//
// The gap must fit within one side and be wider than the frame, otherwise the
// cut reads as frame thickness rather than an opening.
//
// # Sampling
//
// [Sample] draws a random stack from an explicitly supplied *rand.Rand, so
// generation is reproducible from a seed:
//
//	rng := resonator.NewRand(seed)
//	res, err := resonator.Sample(rng, 4, 100)
//	if err != nil {
//	    return err
//	}
//	if res.Truncated {
//	    log.Printf("only %d of %d resonators fit", res.Actual, res.Requested)
//	}
//
// Stacks built from external data go through [NewStack] and must be checked
// with [Stack.Validate] (or built with [ValidStack]) before use.
package resonator
