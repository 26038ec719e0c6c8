package gate

import (
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// Matrix is an optional square complex matrix. The zero value is absent.
// Rows are stored privately and never handed out without copying.
type Matrix struct {
	rows [][]complex128
}

// NoMatrix is the absent matrix.
var NoMatrix = Matrix{}

// NewMatrix copies rows into a Matrix. A nil or empty rows slice yields the
// absent matrix. Shape is checked by the gate constructor, not here.
func NewMatrix(rows [][]complex128) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	return Matrix{rows: copyRows(rows)}
}

// Present reports whether the matrix holds any rows.
func (m Matrix) Present() bool { return len(m.rows) > 0 }

// Dim returns the number of rows, 0 when absent.
func (m Matrix) Dim() int { return len(m.rows) }

// Rows returns a deep copy of the matrix rows, nil when absent.
func (m Matrix) Rows() [][]complex128 {
	if !m.Present() {
		return nil
	}
	return copyRows(m.rows)
}

// At returns entry (i, j). It panics when out of range, like slice indexing.
func (m Matrix) At(i, j int) complex128 { return m.rows[i][j] }

// IsSquare reports whether every row has Dim entries.
func (m Matrix) IsSquare() bool {
	for _, row := range m.rows {
		if len(row) != len(m.rows) {
			return false
		}
	}
	return true
}

// Equal compares entries exactly. Two absent matrices are equal.
func (m Matrix) Equal(o Matrix) bool {
	if len(m.rows) != len(o.rows) {
		return false
	}
	for i := range m.rows {
		if !cmplxs.Equal(m.rows[i], o.rows[i]) {
			return false
		}
	}
	return true
}

// EqualApprox compares entries within tol.
func (m Matrix) EqualApprox(o Matrix, tol float64) bool {
	if len(m.rows) != len(o.rows) {
		return false
	}
	for i := range m.rows {
		if len(m.rows[i]) != len(o.rows[i]) || !cmplxs.EqualApprox(m.rows[i], o.rows[i], tol) {
			return false
		}
	}
	return true
}

// IsUnitary reports whether the rows form an orthonormal set within tol.
// An absent or non-square matrix is never unitary.
func (m Matrix) IsUnitary(tol float64) bool {
	if !m.Present() || !m.IsSquare() {
		return false
	}
	for i := range m.rows {
		for j := i; j < len(m.rows); j++ {
			want := complex(0, 0)
			if i == j {
				want = 1
			}
			// cmplxs.Dot conjugates its first argument.
			if cmplx.Abs(cmplxs.Dot(m.rows[i], m.rows[j])-want) > tol {
				return false
			}
		}
	}
	return true
}

func copyRows(rows [][]complex128) [][]complex128 {
	out := make([][]complex128, len(rows))
	for i, row := range rows {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}
