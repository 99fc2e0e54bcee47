package geom

// Matrix is a 2D affine transform in row-major 2x3 form:
//
//	| a  b  c |
//	| d  e  f |
//
// x' = a*x + b*y + c, y' = d*x + e*y + f.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling by (x, y).
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// QuarterTurn returns a counter-clockwise rotation by n*90 degrees.
// The entries are exact integers so rotated lattice points stay exact,
// which math.Cos/math.Sin based rotation cannot guarantee.
func QuarterTurn(n int) Matrix {
	switch ((n % 4) + 4) % 4 {
	case 1:
		return Matrix{A: 0, B: -1, D: 1, E: 0}
	case 2:
		return Matrix{A: -1, B: 0, D: 0, E: -1}
	case 3:
		return Matrix{A: 0, B: 1, D: -1, E: 0}
	default:
		return Identity()
	}
}

// Multiply returns m*other (other is applied first).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyAll transforms every point of pts into a new slice.
func (m Matrix) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

// Determinant returns the determinant of the linear part. A negative value
// means the transform mirrors and flips polygon winding.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
