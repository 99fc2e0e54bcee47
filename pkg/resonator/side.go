package resonator

import (
	"fmt"
	"strings"
)

// Side identifies the side of the square frame that carries the gap.
type Side int

// The four cardinal sides, in the order the sampler draws them.
const (
	Top Side = iota
	Bottom
	Left
	Right
)

// Sides lists every side in sampling order.
var Sides = [...]Side{Top, Bottom, Left, Right}

var sideNames = [...]string{"top", "bottom", "left", "right"}

// String returns the lower-case side name.
func (s Side) String() string {
	if s.Valid() {
		return sideNames[s]
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Valid reports whether s is one of the four sides.
func (s Side) Valid() bool {
	return s >= Top && s <= Right
}

// ParseSide parses a side name, ignoring case and surrounding space.
func ParseSide(name string) (Side, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sideNames {
		if n == name {
			return Side(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gap side %q (must be top, bottom, left or right)", name)
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid gap side %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name.
func (s *Side) UnmarshalText(text []byte) error {
	v, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
