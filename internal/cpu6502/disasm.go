package cpu6502

import "fmt"

// SymbolResolver maps an address to a symbolic name, if one is known.
// find_apple_ii_symbol in spec.md §6.
type SymbolResolver func(addr uint16) (string, bool)

// FormattedInst is the concrete result of format_inst (spec.md §6).
type FormattedInst struct {
	BytesText   string
	InstText    string
	OperandText string
}

// FormatInst renders a decoded instruction the way DebugState6502::printRecord
// (spec.md §4.5) expects: raw bytes, mnemonic, and an addressing-mode-specific
// operand string. A resolver, if given, substitutes a symbol name for a bare
// absolute/zero-page/relative operand address.
func FormatInst(inst Inst, bytes ThreeBytes, resolver SymbolResolver) FormattedInst {
	var bytesText string
	for i := 0; i < inst.Size; i++ {
		if i > 0 {
			bytesText += " "
		}
		bytesText += fmt.Sprintf("%02X", bytes[i])
	}

	return FormattedInst{
		BytesText:   bytesText,
		InstText:    inst.Kind.String(),
		OperandText: formatOperand(inst, resolver),
	}
}

func symbolOr(addr uint16, width int, resolver SymbolResolver) string {
	if resolver != nil {
		if name, ok := resolver(addr); ok {
			return name
		}
	}
	if width == 1 {
		return fmt.Sprintf("$%02X", addr)
	}
	return fmt.Sprintf("$%04X", addr)
}

func formatOperand(inst Inst, resolver SymbolResolver) string {
	op := inst.Operand
	switch inst.AddrMode {
	case Implied, Accumulator, ModeNone:
		return ""
	case Immediate:
		return fmt.Sprintf("#$%02X", op)
	case Zpg:
		return symbolOr(op, 1, resolver)
	case ZpgX:
		return fmt.Sprintf("%s,X", symbolOr(op, 1, resolver))
	case ZpgY:
		return fmt.Sprintf("%s,Y", symbolOr(op, 1, resolver))
	case Abs:
		return symbolOr(op, 2, resolver)
	case AbsX:
		return fmt.Sprintf("%s,X", symbolOr(op, 2, resolver))
	case AbsY:
		return fmt.Sprintf("%s,Y", symbolOr(op, 2, resolver))
	case Ind:
		return fmt.Sprintf("(%s)", symbolOr(op, 2, resolver))
	case XInd:
		return fmt.Sprintf("(%s,X)", symbolOr(op, 1, resolver))
	case IndY:
		return fmt.Sprintf("(%s),Y", symbolOr(op, 1, resolver))
	case Rel:
		return symbolOr(op, 2, resolver)
	default:
		return ""
	}
}
