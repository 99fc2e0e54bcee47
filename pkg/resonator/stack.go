package resonator

import (
	"encoding/json"
	"iter"
	"slices"

	"github.com/matzehuels/ringstack/pkg/errors"
)

// Stack is an ordered sequence of concentric resonators, outermost first.
//
// A Stack is a value: it owns a private copy of its specs and never changes
// after construction. Regenerating a design produces a new Stack.
type Stack struct {
	specs []Spec
}

// NewStack copies specs into a Stack without validating them. Use it for
// trusted input; data from outside the process goes through [ValidStack].
func NewStack(specs ...Spec) Stack {
	return Stack{specs: slices.Clone(specs)}
}

// ValidStack builds a Stack and validates it.
func ValidStack(specs ...Spec) (Stack, error) {
	s := NewStack(specs...)
	if err := s.Validate(); err != nil {
		return Stack{}, err
	}
	return s, nil
}

// Len returns the number of resonators.
func (s Stack) Len() int { return len(s.specs) }

// IsEmpty reports whether the stack holds no resonators.
func (s Stack) IsEmpty() bool { return len(s.specs) == 0 }

// At returns the i-th resonator, 0 being the outermost.
func (s Stack) At(i int) Spec { return s.specs[i] }

// Specs returns a copy of the resonators in stack order.
func (s Stack) Specs() []Spec { return slices.Clone(s.specs) }

// All iterates over the resonators in stack order.
func (s Stack) All() iter.Seq2[int, Spec] {
	return func(yield func(int, Spec) bool) {
		for i, spec := range s.specs {
			if !yield(i, spec) {
				return
			}
		}
	}
}

// Reversed returns a new stack with the order reversed. The result is not a
// valid stack (sizes increase); it exists for order-independence checks of
// consumers that accept any order.
func (s Stack) Reversed() Stack {
	out := slices.Clone(s.specs)
	slices.Reverse(out)
	return Stack{specs: out}
}

// MaxSize returns the size of the outermost resonator, or 0 when empty.
func (s Stack) MaxSize() int {
	if len(s.specs) == 0 {
		return 0
	}
	return s.specs[0].Size
}

// Validate checks every spec and the strictly decreasing size order.
func (s Stack) Validate() error {
	for i, spec := range s.specs {
		if err := spec.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "resonator %d", i)
		}
		if i > 0 && spec.Size >= s.specs[i-1].Size {
			return errors.New(errors.ErrCodeDegenerateGeometry,
				"resonator %d: size %d must be smaller than %d", i, spec.Size, s.specs[i-1].Size)
		}
	}
	return nil
}

// Overlapping returns the indices i for which resonator i+1 reaches into the
// frame of resonator i. The sampler's size steps do not rule this out for
// thick frames; callers decide whether it matters for their fabrication rule.
func (s Stack) Overlapping() []int {
	var out []int
	for i := 1; i < len(s.specs); i++ {
		outer, inner := s.specs[i-1], s.specs[i]
		if inner.Size > outer.Size-2*outer.FrameWidth {
			out = append(out, i-1)
		}
	}
	return out
}

// MarshalJSON encodes the stack as an array of specs.
func (s Stack) MarshalJSON() ([]byte, error) {
	if s.specs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.specs)
}

// UnmarshalJSON decodes an array of specs. It does not validate.
func (s *Stack) UnmarshalJSON(data []byte) error {
	var specs []Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		return err
	}
	s.specs = specs
	return nil
}
