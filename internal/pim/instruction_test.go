package pim

import "testing"

func TestInstruction_Encode(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want string
	}{
		{"nop", Instruction{Op: NOP}, "000000000000000000000000"},
		{"end", Instruction{Op: END}, "110000000000000000000000"},
		{"prog core 1", Instruction{Op: PROG, Pointer: 1, RowAddr: 64}, "010000010001000000000000"},
		{"exe read", Instruction{Op: EXE, Pointer: 3, Read: true, RowAddr: 0x14}, "100000111000010100000000"},
		{"exe write", Instruction{Op: EXE, Pointer: 2, Write: true, RowAddr: 0xff}, "100000100111111111000000"},
		{"addr wraps", Instruction{Op: EXE, RowAddr: 0x104}, "100000000000000100000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
			if len(tt.in.String()) != WordBits {
				t.Errorf("word has %d bits, want %d", len(tt.in.String()), WordBits)
			}
		})
	}
}

func TestDecode_InvertsEncode(t *testing.T) {
	for _, in := range []Instruction{
		{Op: PROG, Pointer: 7, RowAddr: 192},
		{Op: EXE, Pointer: 63, Read: true, RowAddr: 1},
		{Op: EXE, Pointer: 0, Write: true, RowAddr: 255},
		{Op: END},
	} {
		if got := Decode(in.Encode()); got != in {
			t.Errorf("Decode(Encode(%+v)) = %+v", in, got)
		}
	}
}

func TestInstruction_Comment(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{Instruction{Op: NOP}, "NOP"},
		{Instruction{Op: PROG, Pointer: 4}, "PROG core 4"},
		{Instruction{Op: EXE, Pointer: 1, Read: true}, "EXE read core 1"},
		{Instruction{Op: EXE, Pointer: 2, Write: true}, "EXE write core 2"},
		{Instruction{Op: EXE, Pointer: 5}, "EXE compute core 5"},
		{Instruction{Op: END}, "END"},
	}
	for _, tt := range tests {
		if got := tt.in.Comment(); got != tt.want {
			t.Errorf("Comment(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
