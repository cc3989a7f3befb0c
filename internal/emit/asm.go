// Package emit renders a built ir.Function as either an annotated assembly
// listing or a deliberately simple, non-optimizing C skeleton (spec.md §1:
// "the IR-to-C emitter" is named as an external collaborator with only an
// interface contract; this package honors that contract minimally).
package emit

import (
	"fmt"
	"io"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
	"github.com/apple2tc/apple2tc/internal/ir"
)

// PrintAsmListing prints fn's blocks in reverse-post-order layout (the
// natural top-down reading order for a control-flow graph), labeling every
// block GenEntryBlocks identifies as a DFS root — an explicit entry,
// a predecessorless block, or the root of an otherwise-unreachable
// component.
func PrintAsmListing(w io.Writer, fn *ir.Function, resolver cpu6502.SymbolResolver) {
	if len(fn.Blocks) == 0 {
		return
	}

	order := ir.GenPostOrder(fn, 0, ir.Forward)
	layout := make([]int, len(order))
	for i, bb := range order {
		layout[len(order)-1-i] = bb
	}

	entries := ir.GenEntryBlocks(fn, 0, ir.Forward)
	isEntry := make(map[int]bool, len(entries))
	for _, e := range entries {
		isEntry[e] = true
	}

	for _, idx := range layout {
		bb := fn.Blocks[idx]
		if isEntry[idx] {
			fmt.Fprintf(w, "%s:\n", blockLabel(bb.StartPC, resolver))
		}
		for _, ins := range bb.Insts {
			fmt_ := cpu6502.FormatInst(ins.Inst, ins.Bytes, resolver)
			fmt.Fprintf(w, "%04X:  %-8s    %-4s", ins.PC, fmt_.BytesText, fmt_.InstText)
			if fmt_.OperandText != "" {
				fmt.Fprintf(w, "  %s", fmt_.OperandText)
				if ins.Inst.AddrMode == cpu6502.Rel {
					fmt.Fprintf(w, " (%d)", int8(ins.Bytes[1]))
				}
			}
			fmt.Fprint(w, "\n")
		}
	}
}

func blockLabel(pc uint16, resolver cpu6502.SymbolResolver) string {
	if resolver != nil {
		if name, ok := resolver(pc); ok {
			return name
		}
	}
	return fmt.Sprintf("L%04X", pc)
}
