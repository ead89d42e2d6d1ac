package linalg

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major matrix
type Matrix [][]float64

// Vector is a dense column vector
type Vector []float64

// DimensionError reports operands whose shapes do not agree
type DimensionError struct {
	Op   string
	Want string
	Got  string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("linalg: %s: dimension mismatch (want %s, got %s)", e.Op, e.Want, e.Got)
}

// Zeros creates a rows x cols matrix filled with zeros
func Zeros(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Identity creates an n x n identity matrix
func Identity(n int) Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Rows returns the number of rows
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns (0 for an empty matrix)
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m Matrix) shape() string {
	return fmt.Sprintf("%dx%d", m.Rows(), m.Cols())
}

// Clone returns a deep copy of the matrix
func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i := range m {
		c[i] = append([]float64(nil), m[i]...)
	}
	return c
}

// Transpose returns the transpose of the matrix
func (m Matrix) Transpose() Matrix {
	t := Zeros(m.Cols(), m.Rows())
	for i := range m {
		for j := range m[i] {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Mul returns the product m*o
func (m Matrix) Mul(o Matrix) (Matrix, error) {
	if m.Cols() != o.Rows() {
		return nil, &DimensionError{Op: "mul", Want: fmt.Sprintf("%dxN", m.Cols()), Got: o.shape()}
	}
	res := Zeros(m.Rows(), o.Cols())
	for i := range m {
		for k := range m[i] {
			if m[i][k] == 0 {
				continue
			}
			for j := 0; j < o.Cols(); j++ {
				res[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return res, nil
}

// MulVec returns the product m*v
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.Cols() != len(v) {
		return nil, &DimensionError{Op: "mulvec", Want: fmt.Sprintf("%d", m.Cols()), Got: fmt.Sprintf("%d", len(v))}
	}
	res := make(Vector, m.Rows())
	for i := range m {
		var sum float64
		for j := range m[i] {
			sum += m[i][j] * v[j]
		}
		res[i] = sum
	}
	return res, nil
}

// Add returns the element-wise sum m+o
func (m Matrix) Add(o Matrix) (Matrix, error) {
	if m.Rows() != o.Rows() || m.Cols() != o.Cols() {
		return nil, &DimensionError{Op: "add", Want: m.shape(), Got: o.shape()}
	}
	res := Zeros(m.Rows(), m.Cols())
	for i := range m {
		for j := range m[i] {
			res[i][j] = m[i][j] + o[i][j]
		}
	}
	return res, nil
}

// Scale returns s*m
func (m Matrix) Scale(s float64) Matrix {
	res := Zeros(m.Rows(), m.Cols())
	for i := range m {
		for j := range m[i] {
			res[i][j] = s * m[i][j]
		}
	}
	return res
}

// Add returns the element-wise sum v+o
func (v Vector) Add(o Vector) (Vector, error) {
	if len(v) != len(o) {
		return nil, &DimensionError{Op: "vector add", Want: fmt.Sprintf("%d", len(v)), Got: fmt.Sprintf("%d", len(o))}
	}
	res := make(Vector, len(v))
	for i := range v {
		res[i] = v[i] + o[i]
	}
	return res, nil
}

// Scale returns s*v
func (v Vector) Scale(s float64) Vector {
	res := make(Vector, len(v))
	for i := range v {
		res[i] = s * v[i]
	}
	return res
}

// MaxAbs returns the largest absolute entry of the vector
func (v Vector) MaxAbs() float64 {
	var max float64
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}

// Determinant computes the determinant by elimination with partial pivoting.
// Intended for diagnostics: a singular matrix yields 0.
func (m Matrix) Determinant() (float64, error) {
	n := m.Rows()
	if n != m.Cols() {
		return 0, &DimensionError{Op: "determinant", Want: "square", Got: m.shape()}
	}
	a := m.Clone()
	det := 1.0
	for col := 0; col < n; col++ {
		p := pivotRow(a, col)
		if math.Abs(a[p][col]) < PivotTolerance {
			return 0, nil
		}
		if p != col {
			a[p], a[col] = a[col], a[p]
			det = -det
		}
		det *= a[col][col]
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	return det, nil
}

// Inverse computes the inverse by Gauss-Jordan elimination.
// Intended for diagnostics only.
func (m Matrix) Inverse() (Matrix, error) {
	n := m.Rows()
	if n != m.Cols() {
		return nil, &DimensionError{Op: "inverse", Want: "square", Got: m.shape()}
	}
	a := m.Clone()
	inv := Identity(n)
	for col := 0; col < n; col++ {
		p := pivotRow(a, col)
		if math.Abs(a[p][col]) < PivotTolerance {
			return nil, &SingularMatrixError{Row: col, Pivot: math.Abs(a[p][col])}
		}
		a[p], a[col] = a[col], a[p]
		inv[p], inv[col] = inv[col], inv[p]

		d := a[col][col]
		for c := 0; c < n; c++ {
			a[col][c] /= d
			inv[col][c] /= d
		}
		for r := 0; r < n; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := 0; c < n; c++ {
				a[r][c] -= f * a[col][c]
				inv[r][c] -= f * inv[col][c]
			}
		}
	}
	return inv, nil
}

// pivotRow returns the row index >= col holding the largest magnitude in column col
func pivotRow(a Matrix, col int) int {
	p := col
	for r := col + 1; r < len(a); r++ {
		if math.Abs(a[r][col]) > math.Abs(a[p][col]) {
			p = r
		}
	}
	return p
}
