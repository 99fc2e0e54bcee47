package resonator

import (
	"fmt"

	"github.com/matzehuels/ringstack/pkg/errors"
)

// MinFrameWidth is the thinnest frame the sampler draws.
const MinFrameWidth = 2

// Spec describes one square split-ring resonator. Lengths are in layout
// units (pixels for the raster view).
type Spec struct {
	Size       int  `json:"size"`        // outer side length
	FrameWidth int  `json:"frame_width"` // frame thickness
	GapSize    int  `json:"gap_size"`    // width of the cut
	Side       Side `json:"gap_side"`    // side carrying the cut
}

// String formats the spec like the tuples used in layout notes:
// (50, 4, 6, top).
func (s Spec) String() string {
	return fmt.Sprintf("(%d, %d, %d, %s)", s.Size, s.FrameWidth, s.GapSize, s.Side)
}

// CheckGeometry reports whether the spec can be drawn at all: positive
// lengths, a gap narrower than the square and a frame thinner than half the
// square. It is weaker than [Spec.Validate]; the contour and raster builders
// only require this much.
func (s Spec) CheckGeometry() error {
	switch {
	case s.Size <= 0 || s.FrameWidth <= 0 || s.GapSize <= 0:
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"resonator %v: lengths must be positive", s)
	case !s.Side.Valid():
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"resonator %v: invalid gap side", s)
	case s.GapSize >= s.Size:
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"resonator %v: gap %d does not fit side %d", s, s.GapSize, s.Size)
	case 2*s.FrameWidth >= s.Size:
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"resonator %v: frame %d consumes the whole square", s, s.FrameWidth)
	}
	return nil
}

// Validate checks the full resonator invariants:
// FrameWidth < GapSize < Size/2 and Size > 2*FrameWidth.
func (s Spec) Validate() error {
	if err := s.CheckGeometry(); err != nil {
		return err
	}
	if s.GapSize <= s.FrameWidth {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"resonator %v: gap %d must be wider than frame %d", s, s.GapSize, s.FrameWidth)
	}
	// GapSize < Size/2 over the reals.
	if 2*s.GapSize >= s.Size {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"resonator %v: gap %d must be under half the side", s, s.GapSize)
	}
	return nil
}

// Valid is shorthand for Validate() == nil.
func (s Spec) Valid() bool {
	return s.Validate() == nil
}
