// Package matmul multiplies the fixed 3x4 matrix InputA by the fixed 4x2
// matrix InputB and renders the 3x2 product as text.
//
// Dimensions are compile-time constants; the routine has no error path other
// than the writer it renders to.
package matmul

import (
	"bufio"
	"io"
	"strconv"
)

// Dimensions of the product: A is M x N, B is N x P, C is M x P.
const (
	M = 3
	N = 4
	P = 2
)

type (
	A [M][N]int
	B [N][P]int
	C [M][P]int
)

// InputA and InputB are the literal operands. Arrays are values, so callers
// always receive a copy.
var (
	InputA = A{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
	}
	InputB = B{
		{1, 2},
		{3, 4},
		{1, 4},
		{2, 3},
	}
)

// Multiply returns a*b. Every cell starts at zero and accumulates the N
// products of row i of a and column j of b.
func Multiply(a A, b B) C {
	var c C
	for i := 0; i < M; i++ {
		for j := 0; j < P; j++ {
			for k := 0; k < N; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return c
}

// Render writes c in row-major order, one row per line, values separated by
// a single space.
func Render(w io.Writer, c C) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < M; i++ {
		for j := 0; j < P; j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(c[i][j]))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Run multiplies the literal operands and renders the product to w.
func Run(w io.Writer) error {
	return Render(w, Multiply(InputA, InputB))
}

// Rows returns a as a slice of row slices.
func (a A) Rows() [][]int {
	rows := make([][]int, M)
	for i := range a {
		rows[i] = append([]int(nil), a[i][:]...)
	}
	return rows
}

// Rows returns b as a slice of row slices.
func (b B) Rows() [][]int {
	rows := make([][]int, N)
	for i := range b {
		rows[i] = append([]int(nil), b[i][:]...)
	}
	return rows
}

// Rows returns c as a slice of row slices.
func (c C) Rows() [][]int {
	rows := make([][]int, M)
	for i := range c {
		rows[i] = append([]int(nil), c[i][:]...)
	}
	return rows
}
