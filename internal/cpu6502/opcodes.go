// Package cpu6502 implements the 6502 decode façade (opcode -> kind +
// addressing mode), the effective-address calculator, a minimal functional
// interpreter, and the disassembler/formatter used by the tracer.
package cpu6502

// InstKind identifies a 6502 instruction mnemonic, independent of its
// addressing mode.
type InstKind uint8

const (
	Invalid InstKind = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var instKindNames = map[InstKind]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}

func (k InstKind) String() string {
	if s, ok := instKindNames[k]; ok {
		return s
	}
	return "???"
}

// AddrMode identifies a 6502 addressing mode.
type AddrMode uint8

const (
	ModeNone AddrMode = iota
	Implied
	Accumulator
	Immediate
	Zpg
	ZpgX
	ZpgY
	Abs
	AbsX
	AbsY
	Ind
	XInd
	IndY
	Rel
)

// OpcodeInfo is the result of decode_opcode: a classification of the opcode
// byte into (kind, addressing mode) without touching any operand bytes.
type OpcodeInfo struct {
	Kind InstKind
	Mode AddrMode
}

var opcodeTable [256]OpcodeInfo

func def(opcode uint8, kind InstKind, mode AddrMode) {
	opcodeTable[opcode] = OpcodeInfo{Kind: kind, Mode: mode}
}

func init() {
	// Unassigned opcodes default to the zero value {Invalid, ModeNone}.
	def(0x69, ADC, Immediate)
	def(0x65, ADC, Zpg)
	def(0x75, ADC, ZpgX)
	def(0x6D, ADC, Abs)
	def(0x7D, ADC, AbsX)
	def(0x79, ADC, AbsY)
	def(0x61, ADC, XInd)
	def(0x71, ADC, IndY)

	def(0x29, AND, Immediate)
	def(0x25, AND, Zpg)
	def(0x35, AND, ZpgX)
	def(0x2D, AND, Abs)
	def(0x3D, AND, AbsX)
	def(0x39, AND, AbsY)
	def(0x21, AND, XInd)
	def(0x31, AND, IndY)

	def(0x0A, ASL, Accumulator)
	def(0x06, ASL, Zpg)
	def(0x16, ASL, ZpgX)
	def(0x0E, ASL, Abs)
	def(0x1E, ASL, AbsX)

	def(0x90, BCC, Rel)
	def(0xB0, BCS, Rel)
	def(0xF0, BEQ, Rel)

	def(0x24, BIT, Zpg)
	def(0x2C, BIT, Abs)

	def(0x30, BMI, Rel)
	def(0xD0, BNE, Rel)
	def(0x10, BPL, Rel)

	def(0x00, BRK, Implied)

	def(0x50, BVC, Rel)
	def(0x70, BVS, Rel)

	def(0x18, CLC, Implied)
	def(0xD8, CLD, Implied)
	def(0x58, CLI, Implied)
	def(0xB8, CLV, Implied)

	def(0xC9, CMP, Immediate)
	def(0xC5, CMP, Zpg)
	def(0xD5, CMP, ZpgX)
	def(0xCD, CMP, Abs)
	def(0xDD, CMP, AbsX)
	def(0xD9, CMP, AbsY)
	def(0xC1, CMP, XInd)
	def(0xD1, CMP, IndY)

	def(0xE0, CPX, Immediate)
	def(0xE4, CPX, Zpg)
	def(0xEC, CPX, Abs)

	def(0xC0, CPY, Immediate)
	def(0xC4, CPY, Zpg)
	def(0xCC, CPY, Abs)

	def(0xC6, DEC, Zpg)
	def(0xD6, DEC, ZpgX)
	def(0xCE, DEC, Abs)
	def(0xDE, DEC, AbsX)

	def(0xCA, DEX, Implied)
	def(0x88, DEY, Implied)

	def(0x49, EOR, Immediate)
	def(0x45, EOR, Zpg)
	def(0x55, EOR, ZpgX)
	def(0x4D, EOR, Abs)
	def(0x5D, EOR, AbsX)
	def(0x59, EOR, AbsY)
	def(0x41, EOR, XInd)
	def(0x51, EOR, IndY)

	def(0xE6, INC, Zpg)
	def(0xF6, INC, ZpgX)
	def(0xEE, INC, Abs)
	def(0xFE, INC, AbsX)

	def(0xE8, INX, Implied)
	def(0xC8, INY, Implied)

	def(0x4C, JMP, Abs)
	def(0x6C, JMP, Ind)

	def(0x20, JSR, Abs)

	def(0xA9, LDA, Immediate)
	def(0xA5, LDA, Zpg)
	def(0xB5, LDA, ZpgX)
	def(0xAD, LDA, Abs)
	def(0xBD, LDA, AbsX)
	def(0xB9, LDA, AbsY)
	def(0xA1, LDA, XInd)
	def(0xB1, LDA, IndY)

	def(0xA2, LDX, Immediate)
	def(0xA6, LDX, Zpg)
	def(0xB6, LDX, ZpgY)
	def(0xAE, LDX, Abs)
	def(0xBE, LDX, AbsY)

	def(0xA0, LDY, Immediate)
	def(0xA4, LDY, Zpg)
	def(0xB4, LDY, ZpgX)
	def(0xAC, LDY, Abs)
	def(0xBC, LDY, AbsX)

	def(0x4A, LSR, Accumulator)
	def(0x46, LSR, Zpg)
	def(0x56, LSR, ZpgX)
	def(0x4E, LSR, Abs)
	def(0x5E, LSR, AbsX)

	def(0xEA, NOP, Implied)

	def(0x09, ORA, Immediate)
	def(0x05, ORA, Zpg)
	def(0x15, ORA, ZpgX)
	def(0x0D, ORA, Abs)
	def(0x1D, ORA, AbsX)
	def(0x19, ORA, AbsY)
	def(0x01, ORA, XInd)
	def(0x11, ORA, IndY)

	def(0x48, PHA, Implied)
	def(0x08, PHP, Implied)
	def(0x68, PLA, Implied)
	def(0x28, PLP, Implied)

	def(0x2A, ROL, Accumulator)
	def(0x26, ROL, Zpg)
	def(0x36, ROL, ZpgX)
	def(0x2E, ROL, Abs)
	def(0x3E, ROL, AbsX)

	def(0x6A, ROR, Accumulator)
	def(0x66, ROR, Zpg)
	def(0x76, ROR, ZpgX)
	def(0x6E, ROR, Abs)
	def(0x7E, ROR, AbsX)

	def(0x40, RTI, Implied)
	def(0x60, RTS, Implied)

	def(0xE9, SBC, Immediate)
	def(0xE5, SBC, Zpg)
	def(0xF5, SBC, ZpgX)
	def(0xED, SBC, Abs)
	def(0xFD, SBC, AbsX)
	def(0xF9, SBC, AbsY)
	def(0xE1, SBC, XInd)
	def(0xF1, SBC, IndY)

	def(0x38, SEC, Implied)
	def(0xF8, SED, Implied)
	def(0x78, SEI, Implied)

	def(0x85, STA, Zpg)
	def(0x95, STA, ZpgX)
	def(0x8D, STA, Abs)
	def(0x9D, STA, AbsX)
	def(0x99, STA, AbsY)
	def(0x81, STA, XInd)
	def(0x91, STA, IndY)

	def(0x86, STX, Zpg)
	def(0x96, STX, ZpgY)
	def(0x8E, STX, Abs)

	def(0x84, STY, Zpg)
	def(0x94, STY, ZpgX)
	def(0x8C, STY, Abs)

	def(0xAA, TAX, Implied)
	def(0xA8, TAY, Implied)
	def(0xBA, TSX, Implied)
	def(0x8A, TXA, Implied)
	def(0x9A, TXS, Implied)
	def(0x98, TYA, Implied)
}

// DecodeOpcode is the decode_opcode façade from spec.md §6: classifies a
// single byte into (kind, addrMode) without looking at any operand.
func DecodeOpcode(b uint8) OpcodeInfo {
	return opcodeTable[b]
}

// InstSize returns the total instruction length in bytes implied by an
// addressing mode alone. It is a total function over AddrMode.
func InstSize(mode AddrMode) int {
	switch mode {
	case Implied, Accumulator, ModeNone:
		return 1
	case Immediate, Zpg, ZpgX, ZpgY, XInd, IndY, Rel:
		return 2
	case Abs, AbsX, AbsY, Ind:
		return 3
	default:
		return 1
	}
}

// InstIsBranch reports whether an instruction is a branch/jump/call —
// i.e. its effective address is a possible transfer-of-control target.
func InstIsBranch(kind InstKind, mode AddrMode) bool {
	switch kind {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS, JMP, JSR:
		return true
	default:
		return false
	}
}

// InstWritesMemNormal reports whether an instruction writes to memory
// through its addressing mode's effective address (excludes branches,
// which are classified separately, and Accumulator-mode shifts, which
// write to the A register rather than memory).
func InstWritesMemNormal(kind InstKind, mode AddrMode) bool {
	switch kind {
	case STA, STX, STY:
		return true
	case ASL, LSR, ROL, ROR, INC, DEC:
		return mode != Accumulator
	default:
		return false
	}
}
