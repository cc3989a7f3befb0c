package cpu6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInstByAddrMode(t *testing.T) {
	tests := []struct {
		name     string
		inst     Inst
		bytes    ThreeBytes
		wantText string
		wantOp   string
	}{
		{"Implied", Inst{Kind: NOP, AddrMode: Implied, Size: 1}, ThreeBytes{0xEA}, "", "EA"},
		{"Accumulator", Inst{Kind: ASL, AddrMode: Accumulator, Size: 1}, ThreeBytes{0x0A}, "", "0A"},
		{"Immediate", Inst{Kind: LDA, AddrMode: Immediate, Size: 2, Operand: 0x42}, ThreeBytes{0xA9, 0x42}, "#$42", "A9 42"},
		{"Zpg", Inst{Kind: LDA, AddrMode: Zpg, Size: 2, Operand: 0x10}, ThreeBytes{0xA5, 0x10}, "$10", "A5 10"},
		{"ZpgX", Inst{Kind: LDA, AddrMode: ZpgX, Size: 2, Operand: 0x10}, ThreeBytes{0xB5, 0x10}, "$10,X", "B5 10"},
		{"ZpgY", Inst{Kind: LDX, AddrMode: ZpgY, Size: 2, Operand: 0x10}, ThreeBytes{0xB6, 0x10}, "$10,Y", "B6 10"},
		{"Abs", Inst{Kind: JMP, AddrMode: Abs, Size: 3, Operand: 0x1234}, ThreeBytes{0x4C, 0x34, 0x12}, "$1234", "4C 34 12"},
		{"AbsX", Inst{Kind: LDA, AddrMode: AbsX, Size: 3, Operand: 0x1234}, ThreeBytes{0xBD, 0x34, 0x12}, "$1234,X", "BD 34 12"},
		{"AbsY", Inst{Kind: LDA, AddrMode: AbsY, Size: 3, Operand: 0x1234}, ThreeBytes{0xB9, 0x34, 0x12}, "$1234,Y", "B9 34 12"},
		{"Ind", Inst{Kind: JMP, AddrMode: Ind, Size: 3, Operand: 0x1234}, ThreeBytes{0x6C, 0x34, 0x12}, "($1234)", "6C 34 12"},
		{"XInd", Inst{Kind: LDA, AddrMode: XInd, Size: 2, Operand: 0x10}, ThreeBytes{0xA1, 0x10}, "($10,X)", "A1 10"},
		{"IndY", Inst{Kind: LDA, AddrMode: IndY, Size: 2, Operand: 0x10}, ThreeBytes{0xB1, 0x10}, "($10),Y", "B1 10"},
		{"Rel", Inst{Kind: BEQ, AddrMode: Rel, Size: 2, Operand: 0x1005}, ThreeBytes{0xF0, 0x03}, "$1005", "F0 03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatInst(tt.inst, tt.bytes, nil)
			assert.Equal(t, tt.inst.Kind.String(), out.InstText)
			assert.Equal(t, tt.wantText, out.OperandText)
			assert.Equal(t, tt.wantOp, out.BytesText)
		})
	}
}

func TestFormatInstIsDeterministic(t *testing.T) {
	inst := Inst{Kind: LDA, AddrMode: AbsX, Size: 3, Operand: 0x3000}
	bytes := ThreeBytes{0xBD, 0x00, 0x30}

	first := FormatInst(inst, bytes, nil)
	second := FormatInst(inst, bytes, nil)
	assert.Equal(t, first, second)
}

func TestFormatInstUsesResolverWhenPresent(t *testing.T) {
	inst := Inst{Kind: JSR, AddrMode: Abs, Size: 3, Operand: 0xFDED}
	bytes := ThreeBytes{0x20, 0xED, 0xFD}

	resolver := func(addr uint16) (string, bool) {
		if addr == 0xFDED {
			return "COUT", true
		}
		return "", false
	}

	out := FormatInst(inst, bytes, resolver)
	assert.Equal(t, "COUT", out.OperandText)
}

func TestFormatInstResolverMissFallsBackToHex(t *testing.T) {
	inst := Inst{Kind: LDA, AddrMode: Zpg, Size: 2, Operand: 0x06}
	bytes := ThreeBytes{0xA5, 0x06}

	resolver := func(addr uint16) (string, bool) { return "", false }

	out := FormatInst(inst, bytes, resolver)
	assert.Equal(t, "$06", out.OperandText)
}
