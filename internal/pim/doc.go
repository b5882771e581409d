// Package pim lowers a matrix multiply onto a pPIM array: a grid of
// LUT-programmed processing-in-memory cores driven by a stream of 24-bit
// instruction words.
//
// Word layout, most significant bit first:
//
//	[2 op][6 ptr][1 rd][1 wr][8 addr][6 reserved]
//
// A program first programs the LUT of every core, then for each result cell
// clears the accumulator, streams the n operand pairs through read/MAC
// instructions, and terminates with END.
package pim
