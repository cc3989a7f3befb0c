// Package trace implements the execution-trace collector attached to the
// 6502 interpreter: the per-instruction debug hook, the history ring, the
// watch table, and the self-modifying-code generation tracker. It is the
// Go port of the original project's DebugState6502 (spec.md §4.5-§4.6).
package trace

import "github.com/apple2tc/apple2tc/internal/cpu6502"

// InstRecord is a register snapshot plus the three raw bytes at PC: enough
// to re-decode and re-format the instruction later, without re-reading RAM
// (spec.md §3's "Instruction record"). Records are immutable once pushed.
type InstRecord struct {
	Regs  cpu6502.Regs
	Bytes cpu6502.ThreeBytes
}

func readRecord(emu cpu6502.Emu6502, pc uint16) InstRecord {
	return InstRecord{
		Regs:  emu.GetRegs(),
		Bytes: cpu6502.ThreeBytes{emu.RAMPeek(pc), emu.RAMPeek(pc + 1), emu.RAMPeek(pc + 2)},
	}
}
