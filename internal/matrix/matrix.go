// Package matrix provides a row-major integer matrix of arbitrary shape.
//
// The fixed-size routine in the root package covers the literal 3x4 by 4x2
// product; this package states the same algorithm for any dimension-compatible
// pair and backs the PIM lowering and the persisted records.
package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidShape is returned for non-positive shapes or ragged data.
	ErrInvalidShape = errors.New("invalid shape")
)

// Matrix is a Rows x Cols grid stored row-major in Data.
type Matrix struct {
	Rows int   `json:"rows" yaml:"rows"`
	Cols int   `json:"cols" yaml:"cols"`
	Data []int `json:"data" yaml:"data,flow"`
}

// New returns a zeroed rows x cols matrix. It panics on a non-positive shape.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix: invalid shape %dx%d", rows, cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Data: make([]int, rows*cols)}
}

// Zero returns an all-zero rows x cols matrix.
func Zero(rows, cols int) *Matrix { return New(rows, cols) }

// FromRows copies rows into a new Matrix. All rows must have the same,
// non-zero length.
func FromRows(rows [][]int) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty rows: %w", ErrInvalidShape)
	}
	m := New(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.Cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(r), m.Cols, ErrInvalidShape)
		}
		copy(m.Data[i*m.Cols:], r)
	}
	return m, nil
}

// Validate checks the shape against the backing slice.
func (m *Matrix) Validate() error {
	if m == nil {
		return fmt.Errorf("nil matrix: %w", ErrInvalidShape)
	}
	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("shape %dx%d: %w", m.Rows, m.Cols, ErrInvalidShape)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("shape %dx%d holds %d values: %w", m.Rows, m.Cols, len(m.Data), ErrInvalidShape)
	}
	return nil
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) int { return m.Data[i*m.Cols+j] }

// Set stores v at (i, j).
func (m *Matrix) Set(i, j, v int) { m.Data[i*m.Cols+j] = v }

// Row returns row i. The slice aliases m.Data.
func (m *Matrix) Row(i int) []int { return m.Data[i*m.Cols : (i+1)*m.Cols] }

// Shape formats the dimensions as "RxC".
func (m *Matrix) Shape() string { return fmt.Sprintf("%dx%d", m.Rows, m.Cols) }

// Equal reports whether m and o have the same shape and values. Two nil
// matrices are equal.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Rows != o.Rows || m.Cols != o.Cols || len(m.Data) != len(o.Data) {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

// Multiply returns a*b as a new a.Rows x b.Cols matrix.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("left operand: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("right operand: %w", err)
	}
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("%s * %s: %w", a.Shape(), b.Shape(), ErrDimensionMismatch)
	}

	c := New(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			sum := 0
			for k := 0; k < a.Cols; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			c.Set(i, j, sum)
		}
	}
	return c, nil
}
