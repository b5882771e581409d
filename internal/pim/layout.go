package pim

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// Cores is the number of LUT cores programmed and assigned work.
	Cores = 8
	// BlockSize is the edge of the square tiles mapped onto one core.
	BlockSize = 2
	// ElemSize is the byte stride between matrix elements.
	ElemSize = 4
	// BaseAddr is where the left operand is placed.
	BaseAddr = 0x100
)

var (
	ErrDimensionMismatch = errors.New("matrix multiplication requires A cols == B rows")
	ErrNoMatrices        = errors.New("could not find sufficient matrix allocations in LLVM IR")
)

// Layout places a Rows x Cols matrix in PIM memory starting at Base.
type Layout struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
	Base int `json:"base" yaml:"base"`
}

// Addr is the byte address of element (i, j).
func (l Layout) Addr(i, j int) int {
	return l.Base + (i*l.Cols+j)*ElemSize
}

// Core is the core owning element (i, j): tiles of BlockSize x BlockSize are
// spread diagonally over the cores.
func (l Layout) Core(i, j int) int {
	return (i/BlockSize + j/BlockSize) % Cores
}

// Size is the number of bytes the layout occupies.
func (l Layout) Size() int { return l.Rows * l.Cols * ElemSize }

func (l Layout) String() string { return fmt.Sprintf("%dx%d@%#x", l.Rows, l.Cols, l.Base) }

// Layouts places A, B and C = A*B back to back from BaseAddr.
func Layouts(aRows, aCols, bRows, bCols int) (a, b, c Layout, err error) {
	if aCols != bRows {
		return a, b, c, fmt.Errorf("%dx%d * %dx%d: %w", aRows, aCols, bRows, bCols, ErrDimensionMismatch)
	}
	a = Layout{Rows: aRows, Cols: aCols, Base: BaseAddr}
	b = Layout{Rows: bRows, Cols: bCols, Base: a.Base + a.Size()}
	c = Layout{Rows: aRows, Cols: bCols, Base: b.Base + b.Size()}
	return a, b, c, nil
}

var allocaRe = regexp.MustCompile(`alloca \[(\d+) x \[(\d+) x i32\]\]`)

// DetectSizes finds the operand shapes in LLVM IR: the first two
// two-dimensional i32 allocas are taken as A and B.
func DetectSizes(ir string) (a, b, c Layout, err error) {
	matches := allocaRe.FindAllStringSubmatch(ir, 2)
	if len(matches) < 2 {
		return a, b, c, ErrNoMatrices
	}
	dims := make([]int, 0, 4)
	for _, m := range matches {
		for _, s := range m[1:] {
			v, err := strconv.Atoi(s)
			if err != nil {
				return a, b, c, fmt.Errorf("alloca dimension %q: %w", s, err)
			}
			dims = append(dims, v)
		}
	}
	return Layouts(dims[0], dims[1], dims[2], dims[3])
}
