package linalg

import (
	"errors"
	"fmt"
	"math"
)

// PivotTolerance is the smallest pivot magnitude accepted during elimination
const PivotTolerance = 1e-12

// ErrSingularMatrix is matched by every *SingularMatrixError
var ErrSingularMatrix = errors.New("singular matrix")

// SingularMatrixError reports the elimination step where the pivot vanished.
// For a stiffness matrix this means the structure is unstable or
// insufficiently restrained.
type SingularMatrixError struct {
	Row   int
	Pivot float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix: pivot %.3e at row %d below tolerance %.0e", e.Pivot, e.Row, PivotTolerance)
}

// Is makes errors.Is(err, ErrSingularMatrix) hold
func (e *SingularMatrixError) Is(target error) bool {
	return target == ErrSingularMatrix
}

// SolveLinearSystem solves A x = b by Gaussian elimination with partial
// pivoting. A and b are left untouched; elimination runs on copies.
func SolveLinearSystem(A Matrix, b Vector) (Vector, error) {
	n := A.Rows()
	if n != A.Cols() {
		return nil, &DimensionError{Op: "solve", Want: "square", Got: A.shape()}
	}
	if len(b) != n {
		return nil, &DimensionError{Op: "solve", Want: fmt.Sprintf("rhs %d", n), Got: fmt.Sprintf("rhs %d", len(b))}
	}

	a := A.Clone()
	x := append(Vector(nil), b...)

	// forward elimination
	for col := 0; col < n; col++ {
		p := pivotRow(a, col)
		if math.Abs(a[p][col]) < PivotTolerance {
			return nil, &SingularMatrixError{Row: col, Pivot: math.Abs(a[p][col])}
		}
		if p != col {
			a[p], a[col] = a[col], a[p]
			x[p], x[col] = x[col], x[p]
		}
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			x[r] -= f * x[col]
		}
	}

	// back substitution
	for r := n - 1; r >= 0; r-- {
		sum := x[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, nil
}
