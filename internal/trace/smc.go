package trace

import (
	"github.com/apple2tc/apple2tc/internal/bitset"
	"github.com/apple2tc/apple2tc/internal/cpu6502"
)

// ByteRange is a captured span of main RAM, address plus the bytes read
// from it at generation-close time.
type ByteRange struct {
	Addr  uint16
	Bytes []byte
}

// Generation is a maximal interval of execution during which no instruction
// was fetched from a location written within that same interval (spec.md
// §3, GLOSSARY). The first generation records only the starting registers
// and its Data stays empty; every later generation's Data is captured when
// that generation is opened.
type Generation struct {
	Regs cpu6502.Regs
	Data []ByteRange
}

// SMCTracker partitions execution into generations to cope with
// self-modifying code (spec.md §4.6, C7). It is only driven while
// collection is enabled; the hook (hook.go) owns that toggle.
type SMCTracker struct {
	curMemExec     *bitset.Set
	curMemWritten  *bitset.Set
	prevMemWritten *bitset.Set
	branchTargets  map[uint16]struct{}
	generations    []Generation
}

// NewSMCTracker returns a tracker with all three bitmaps sized to the full
// 16-bit address space and no generations.
func NewSMCTracker() *SMCTracker {
	return &SMCTracker{
		curMemExec:     bitset.New(65536),
		curMemWritten:  bitset.New(65536),
		prevMemWritten: bitset.New(65536),
		branchTargets:  make(map[uint16]struct{}),
	}
}

// Generations returns the closed-and-open generations in creation order.
// The caller must not mutate the returned slice.
func (t *SMCTracker) Generations() []Generation {
	return t.generations
}

// BranchTargets returns the set of addresses ever seen as a branch's
// effective address while collecting.
func (t *SMCTracker) BranchTargets() map[uint16]struct{} {
	return t.branchTargets
}

// SetCollect toggles collection. On an off→on transition it clears all
// three bitmaps, discards prior generations, and opens a fresh first
// generation holding only the starting register snapshot (spec.md §3:
// "its data remains empty").
func (t *SMCTracker) SetCollect(emu cpu6502.Emu6502, wasOn, on bool) {
	if on && !wasOn {
		t.curMemWritten.Clear()
		t.prevMemWritten.Clear()
		t.curMemExec.Clear()
		t.generations = t.generations[:0]
		t.generations = append(t.generations, Generation{Regs: emu.GetRegs()})
	}
}

// ResetCollectedData clears branch targets and generations (spec.md §4.6:
// "Reset of collected data"). The next collect on-transition creates a
// fresh first generation.
func (t *SMCTracker) ResetCollectedData() {
	t.branchTargets = make(map[uint16]struct{})
	t.generations = nil
}

// CollectData is the collect-mode body of the hook (spec.md §4.6 steps
// 1-4). icount/limit are owned by the caller (DebugState) since the same
// counter is shared with plain tracing mode.
func (t *SMCTracker) CollectData(emu cpu6502.Emu6502, pc uint16, icount *uint, limit uint) cpu6502.StopReason {
	bytes := cpu6502.ThreeBytes{emu.RAMPeek(pc), emu.RAMPeek(pc + 1), emu.RAMPeek(pc + 2)}
	inst := cpu6502.DecodeInst(pc, bytes)
	regs := emu.GetRegs()
	ea := cpu6502.EffectiveAddress(emu, regs, inst.AddrMode, inst.Operand)

	if t.curMemWritten.Get(uint32(pc)) {
		t.newGeneration(emu, regs)
		t.curMemExec.SetMulti(uint32(pc), uint32(pc)+uint32(inst.Size), true)
	} else if t.prevMemWritten.Get(uint32(pc)) {
		t.curMemExec.SetMulti(uint32(pc), uint32(pc)+uint32(inst.Size), true)
	}

	if cpu6502.InstIsBranch(inst.Kind, inst.AddrMode) {
		t.branchTargets[ea] = struct{}{}
		if limit != 0 && *icount >= limit {
			return cpu6502.StopRequested
		}
		*icount++
	} else if cpu6502.InstWritesMemNormal(inst.Kind, inst.AddrMode) {
		t.curMemWritten.Set(uint32(ea), true)
	}

	return cpu6502.StopNone
}

// newGeneration closes the current generation: it captures every maximal
// run of set bits in curMemExec from main RAM into the new generation's
// data, then rotates the write bitmaps (spec.md §4.6 step 3).
func (t *SMCTracker) newGeneration(emu cpu6502.Emu6502, regs cpu6502.Regs) {
	gen := Generation{Regs: regs}

	ram := emu.GetMainRAM()
	size := t.curMemExec.Size()
	from := t.curMemExec.FindSetBit(0)
	for from != size {
		to := t.curMemExec.FindClearBit(from + 1)
		data := make([]byte, to-from)
		copy(data, ram[from:to])
		gen.Data = append(gen.Data, ByteRange{Addr: uint16(from), Bytes: data})
		if to == size {
			break
		}
		from = t.curMemExec.FindSetBit(to + 1)
	}

	t.generations = append(t.generations, gen)

	t.curMemExec.Clear()
	t.prevMemWritten.Swap(t.curMemWritten)
	t.curMemWritten.Clear()
}
