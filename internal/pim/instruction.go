package pim

import "fmt"

// Op is the 2-bit opcode.
type Op uint8

const (
	NOP  Op = 0b00
	PROG Op = 0b01
	EXE  Op = 0b10
	END  Op = 0b11
)

func (o Op) String() string {
	switch o {
	case NOP:
		return "NOP"
	case PROG:
		return "PROG"
	case EXE:
		return "EXE"
	case END:
		return "END"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// WordBits is the width of an encoded instruction.
const WordBits = 24

const (
	opShift   = 22
	ptrShift  = 16
	rdShift   = 15
	wrShift   = 14
	addrShift = 6

	ptrMask  = 0x3f
	addrMask = 0xff
)

// Instruction is one pPIM word before encoding.
type Instruction struct {
	Op      Op   `json:"op" yaml:"op"`
	Pointer int  `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	Read    bool `json:"rd,omitempty" yaml:"rd,omitempty"`
	Write   bool `json:"wr,omitempty" yaml:"wr,omitempty"`
	RowAddr int  `json:"row_addr,omitempty" yaml:"row_addr,omitempty"`
}

// Encode packs the instruction into the low 24 bits of a uint32. Each field
// is truncated to its width: row addresses above 255 keep their low byte and
// never spill into the rd/wr bits.
func (in Instruction) Encode() uint32 {
	w := uint32(in.Op&0b11) << opShift
	w |= uint32(in.Pointer&ptrMask) << ptrShift
	if in.Read {
		w |= 1 << rdShift
	}
	if in.Write {
		w |= 1 << wrShift
	}
	w |= uint32(in.RowAddr&addrMask) << addrShift
	return w
}

// String returns the encoded word as 24 binary digits.
func (in Instruction) String() string {
	return fmt.Sprintf("%0*b", WordBits, in.Encode())
}

// Comment describes the instruction for the annotated stream.
func (in Instruction) Comment() string {
	switch in.Op {
	case PROG:
		return fmt.Sprintf("PROG core %d", in.Pointer)
	case EXE:
		switch {
		case in.Read:
			return fmt.Sprintf("EXE read core %d", in.Pointer)
		case in.Write:
			return fmt.Sprintf("EXE write core %d", in.Pointer)
		default:
			return fmt.Sprintf("EXE compute core %d", in.Pointer)
		}
	case END:
		return "END"
	}
	return "NOP"
}

// Decode is the inverse of Encode for the non-reserved bits.
func Decode(w uint32) Instruction {
	return Instruction{
		Op:      Op(w>>opShift) & 0b11,
		Pointer: int(w>>ptrShift) & ptrMask,
		Read:    w&(1<<rdShift) != 0,
		Write:   w&(1<<wrShift) != 0,
		RowAddr: int(w>>addrShift) & addrMask,
	}
}
