package cpu6502

// Regs is the 6502 register snapshot from spec.md §3: {PC, A, X, Y, SP, status}.
type Regs struct {
	PC     uint16
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	Status uint8
}

// Status flag bits, high to low: N V - B D I Z C (bit 5 unused).
const (
	FlagN uint8 = 0x80
	FlagV uint8 = 0x40
	FlagUnused uint8 = 0x20
	FlagB uint8 = 0x10
	FlagD uint8 = 0x08
	FlagI uint8 = 0x04
	FlagZ uint8 = 0x02
	FlagC uint8 = 0x01
)

// Memory is the minimal read surface the effective-address calculator and
// disassembler need from the interpreter: little-endian 16-bit reads.
type Memory interface {
	RAMPeek(addr uint16) uint8
	RAMPeek16(addr uint16) uint16
}

// EffectiveAddress computes the memory address touched by an instruction
// given its addressing mode and literal operand (spec.md §4.2). It is a
// total, pure function: addressing modes with no memory access return 0.
func EffectiveAddress(mem Memory, regs Regs, mode AddrMode, operand uint16) uint16 {
	switch mode {
	case Abs, Rel, Zpg:
		return operand
	case AbsX:
		return operand + uint16(regs.X)
	case AbsY:
		return operand + uint16(regs.Y)
	case Ind:
		return mem.RAMPeek16(operand)
	case XInd:
		return mem.RAMPeek16((operand + uint16(regs.X)) & 0xFF)
	case IndY:
		return mem.RAMPeek16(operand&0xFF) + uint16(regs.Y)
	case ZpgX:
		return (operand + uint16(regs.X)) & 0xFF
	case ZpgY:
		return (operand + uint16(regs.Y)) & 0xFF
	default:
		return 0
	}
}
