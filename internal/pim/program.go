package pim

import (
	"bufio"
	"fmt"
	"io"
)

// LUTRowStride is the row address stride between the LUT images of
// consecutive cores.
const LUTRowStride = 64

// ProgramLUTs programs every core's LUT. Each PROG is followed by a NOP.
func ProgramLUTs() []Instruction {
	prog := make([]Instruction, 0, 2*Cores)
	for core := 0; core < Cores; core++ {
		prog = append(prog,
			Instruction{Op: PROG, Pointer: core, RowAddr: core * LUTRowStride},
			Instruction{Op: NOP},
		)
	}
	return prog
}

// Program lowers C = A*B into an instruction stream. Operand reads need a NOP
// before the next instruction; accumulator clears and MACs do not.
func Program(a, b, c Layout) []Instruction {
	prog := ProgramLUTs()
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			cCore := c.Core(i, j)
			prog = append(prog, Instruction{Op: EXE, Pointer: cCore, Write: true, RowAddr: c.Addr(i, j)})
			for k := 0; k < a.Cols; k++ {
				prog = append(prog,
					Instruction{Op: EXE, Pointer: a.Core(i, k), Read: true, RowAddr: a.Addr(i, k)},
					Instruction{Op: NOP},
					Instruction{Op: EXE, Pointer: b.Core(k, j), Read: true, RowAddr: b.Addr(k, j)},
					Instruction{Op: NOP},
					Instruction{Op: EXE, Pointer: cCore},
				)
			}
		}
	}
	return append(prog, Instruction{Op: END})
}

// ProgramLen is the number of instructions Program emits for an m x n by
// n x p product.
func ProgramLen(m, n, p int) int {
	return 2*Cores + m*p*(1+5*n) + 1
}

const streamHeader = "// pPIM Instruction Stream\n" +
	"// 24-bit format: [2 op][6 ptr][1 rd][1 wr][8 addr][6 reserved]\n"

// WriteStream writes prog as annotated binary words, one per line.
func WriteStream(w io.Writer, prog []Instruction) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(streamHeader)
	for _, in := range prog {
		fmt.Fprintf(bw, "%s  // %s\n", in, in.Comment())
	}
	return bw.Flush()
}
