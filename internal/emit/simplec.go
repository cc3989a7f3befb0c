package emit

import (
	"fmt"
	"io"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
	"github.com/apple2tc/apple2tc/internal/ir"
)

// PrintSimpleC emits one goto-labelled C block per BasicBlock. Each
// instruction becomes a comment-annotated line; full semantic lifting of
// 6502 opcodes to C expressions is out of scope (spec.md §1 names the
// IR-to-C emitter as an external collaborator with only an interface
// contract) — this emitter is legible scaffolding, not a recompiler.
func PrintSimpleC(w io.Writer, fn *ir.Function) {
	fmt.Fprint(w, "#include <stdint.h>\n\n")
	fmt.Fprint(w, "void translated(void) {\n")

	for _, bb := range fn.Blocks {
		fmt.Fprintf(w, "L_%04X:\n", bb.StartPC)
		for _, ins := range bb.Insts {
			fmt_ := cpu6502.FormatInst(ins.Inst, ins.Bytes, nil)
			fmt.Fprintf(w, "    /* %04X: %s %s */\n", ins.PC, fmt_.InstText, fmt_.OperandText)
		}
		switch len(bb.Succs) {
		case 0:
			fmt.Fprint(w, "    return; // no successors: call/exit/undecodable tail\n")
		case 1:
			fmt.Fprintf(w, "    goto L_%04X;\n", fn.Blocks[bb.Succs[0]].StartPC)
		default:
			fmt.Fprint(w, "    /* conditional: branch lifting is out of scope, pick a successor */\n")
			fmt.Fprintf(w, "    goto L_%04X;\n", fn.Blocks[bb.Succs[0]].StartPC)
		}
	}

	fmt.Fprint(w, "}\n")
}
