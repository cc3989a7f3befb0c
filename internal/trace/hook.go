package trace

import (
	"fmt"
	"io"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
)

// statusFlagNames mirrors the original tool's "NV.BDIZC" layout: bit 7 is
// N, bit 6 is V, bit 5 is always rendered '.' regardless of its value (the
// quirk spec.md §4.5/§9 asks implementations to preserve for log
// compatibility), then B D I Z C.
const statusFlagNames = "NV.BDIZC"

// DebugState is the top-level per-instruction observer (spec.md §4.5, C6):
// it owns the history ring, watch table, non-debug ranges, and SMC tracker,
// and dispatches each instruction to exactly one of them per the collect >
// debugBB > tracing precedence.
type DebugState struct {
	nonDebug NonDebugRanges
	watches  WatchTable
	history  *History
	smc      *SMCTracker

	collect   bool
	debugBB   bool
	buffering bool
	limit     uint
	icount    uint

	resolveSymbols bool
	symbolResolver cpu6502.SymbolResolver

	branchTarget bool // debugBB's one-instruction-delayed "was the previous instruction a branch" flag

	Out io.Writer
}

// New returns a DebugState with an empty history ring whose cap is 0
// (matching the original's default-constructed deque cap of zero), so no
// record is buffered until SetMaxHistory raises it, and output directed to
// out.
func New(out io.Writer) *DebugState {
	return &DebugState{
		history: NewHistory(0),
		smc:     NewSMCTracker(),
		Out:     out,
	}
}

// SetSymbolResolver installs the external Apple II ROM symbol resolver used
// when ResolveSymbols is on.
func (d *DebugState) SetSymbolResolver(r cpu6502.SymbolResolver) {
	d.symbolResolver = r
}

// Reset mirrors DebugState6502::reset() exactly: collect/debugBB/buffering/
// limit/history/watches/generations are cleared, but non-debug ranges are
// deliberately left untouched — the original never calls anything on
// nonDebug_ from reset(), so it survives across reset the same way here.
func (d *DebugState) Reset() {
	d.SetCollect(nil, false)
	d.debugBB = false
	d.SetBuffering(false)
	d.limit = 0
	d.icount = 0
	d.ClearHistory()
	d.watches.Clear()
	d.smc.ResetCollectedData()
	d.branchTarget = false
}

// SetCollect toggles collection mode. emu is only consulted (for the
// initial register snapshot) on an off->on transition, and may be nil
// otherwise.
func (d *DebugState) SetCollect(emu cpu6502.Emu6502, on bool) {
	d.smc.SetCollect(emu, d.collect, on)
	d.collect = on
}

func (d *DebugState) SetDebugBB(on bool) { d.debugBB = on }

// SetBuffering toggles buffering. On a true->false transition the history
// ring is freed outright, not merely cleared (spec.md §3).
func (d *DebugState) SetBuffering(on bool) {
	if !on && d.buffering {
		d.history.Free()
	}
	d.buffering = on
}

func (d *DebugState) SetLimit(limit uint)          { d.limit = limit }
func (d *DebugState) SetMaxHistory(n uint)         { d.history.SetMaxHistory(n) }
func (d *DebugState) SetResolveSymbols(on bool)    { d.resolveSymbols = on }
func (d *DebugState) ClearHistory()                { d.history.Clear() }
func (d *DebugState) AddWatch(name string, addr uint16, size uint8) { d.watches.Add(name, addr, size) }
func (d *DebugState) RemoveWatch(name string)      { d.watches.Remove(name) }
func (d *DebugState) AddNonDebug(from, to uint16)  { d.nonDebug.Add(from, to) }

// Watches exposes the current watch list, for tests and callers.
func (d *DebugState) Watches() []Watch { return d.watches.List() }

// History exposes the underlying ring, for tests and callers.
func (d *DebugState) History() *History { return d.history }

// SMC exposes the generation tracker, for tests and callers.
func (d *DebugState) SMC() *SMCTracker { return d.smc }

// ICount returns the number of instructions observed (not necessarily
// executed) since the last reset.
func (d *DebugState) ICount() uint { return d.icount }

// Hook is the interpreter-invoked per-instruction callback (spec.md §4.5).
// Its signature matches cpu6502.DebugHook, so it can be installed directly:
// cpu.SetHook(debugState.Hook).
func (d *DebugState) Hook(emu cpu6502.Emu6502, pc uint16) cpu6502.StopReason {
	if d.nonDebug.Contains(pc) {
		return cpu6502.StopNone
	}

	if d.collect {
		return d.smc.CollectData(emu, pc, &d.icount, d.limit)
	}

	if d.debugBB {
		wasBranchTarget := d.branchTarget
		opc := cpu6502.DecodeOpcode(emu.RAMPeek(pc))
		d.branchTarget = cpu6502.InstIsBranch(opc.Kind, opc.Mode)
		if !wasBranchTarget {
			return cpu6502.StopNone
		}
	}

	if d.limit != 0 && d.icount >= d.limit {
		return cpu6502.StopRequested
	}
	d.icount++

	rec := readRecord(emu, pc)

	if d.buffering {
		d.history.Push(rec)

		if cpu6502.DecodeOpcode(rec.Bytes[0]).Kind == cpu6502.Invalid {
			fmt.Fprint(d.Out, "*** INVALID OPCODE! Dumping history:\n")
			d.PrintHistory()
			return cpu6502.StopRequested
		}

		return cpu6502.StopNone
	}

	d.printRecord(rec, len(d.watches.List()) == 0)

	for _, w := range d.watches.List() {
		fmt.Fprint(d.Out, " ")
		if w.Name != "" {
			fmt.Fprint(d.Out, w.Name)
		}
		if w.Addr < 256 {
			fmt.Fprintf(d.Out, "($%02X)=", w.Addr)
		} else {
			fmt.Fprintf(d.Out, "($%04X)=", w.Addr)
		}
		if w.Size == 1 {
			fmt.Fprintf(d.Out, "$%02X", emu.RAMPeek(w.Addr))
		} else {
			fmt.Fprintf(d.Out, "$%04X", emu.RAMPeek16(w.Addr))
		}
	}
	fmt.Fprint(d.Out, "\n")

	return cpu6502.StopNone
}

// PrintHistory prints every buffered record, oldest first, one per line.
func (d *DebugState) PrintHistory() {
	for _, rec := range d.history.Records() {
		d.printRecord(rec, true)
		fmt.Fprint(d.Out, "\n")
	}
}

// printRecord renders one record in the exact layout spec.md §4.5 fixes:
// address, an 8-wide label field, the register dump, the flag string, and
// (if showInst) the decoded instruction.
func (d *DebugState) printRecord(rec InstRecord, showInst bool) {
	r := rec.Regs

	var label string
	if d.resolveSymbols && d.symbolResolver != nil {
		if name, ok := d.symbolResolver(r.PC); ok {
			label = name
		}
	}
	fmt.Fprintf(d.Out, "%04X: %-8s  ", r.PC, label)

	fmt.Fprintf(d.Out, "A=%02X X=%02X Y=%02X SP=%02X SR=", r.A, r.X, r.Y, r.SP)
	for i := 0; i != 8; i++ {
		bit := uint8(0x80 >> uint(i))
		if i == 2 {
			fmt.Fprint(d.Out, ".")
		} else if r.Status&bit != 0 {
			fmt.Fprintf(d.Out, "%c", statusFlagNames[i])
		} else {
			fmt.Fprint(d.Out, ".")
		}
	}

	if showInst {
		fmt.Fprintf(d.Out, " PC=%04X  ", r.PC)

		inst := cpu6502.DecodeInst(r.PC, rec.Bytes)
		var resolver cpu6502.SymbolResolver
		if d.resolveSymbols {
			resolver = d.symbolResolver
		}
		fmt_ := cpu6502.FormatInst(inst, rec.Bytes, resolver)

		fmt.Fprintf(d.Out, "%-8s  %s", fmt_.BytesText, fmt_.InstText)
		if fmt_.OperandText != "" {
			fmt.Fprintf(d.Out, "  %s", fmt_.OperandText)
			if inst.AddrMode == cpu6502.Rel {
				fmt.Fprintf(d.Out, " (%d)", int8(rec.Bytes[1]))
			}
		}
	}
}
