package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugEmuAt(pc uint16) (*DebugState, *bytes.Buffer, *fakeEmu) {
	var out bytes.Buffer
	ds := New(&out)
	emu := &fakeEmu{}
	emu.regs.PC = pc
	return ds, &out, emu
}

func TestNonDebugShortCircuit(t *testing.T) {
	ds, out, emu := newDebugEmuAt(0xC000)
	ds.AddNonDebug(0xC000, 0xC0FF)
	ds.SetBuffering(true)
	ds.SetMaxHistory(10)

	reason := ds.Hook(emu, 0xC000)

	assert.Equal(t, cpu6502.StopNone, reason)
	assert.Equal(t, 0, ds.History().Len(), "non-debug ranges must not touch history")
	assert.Equal(t, uint(0), ds.ICount())
	assert.Equal(t, 0, out.Len())
}

// TestInvalidOpcodeInBufferMode is spec.md §8 scenario 6.
func TestInvalidOpcodeInBufferMode(t *testing.T) {
	ds, out, emu := newDebugEmuAt(0x1000)
	ds.SetBuffering(true)
	ds.SetMaxHistory(100)

	for i := uint16(0); i < 5; i++ {
		emu.ram[0x1000+i] = 0xEA // NOP, valid, size 1
		reason := ds.Hook(emu, 0x1000+i)
		require.Equal(t, cpu6502.StopNone, reason)
		emu.regs.PC = 0x1000 + i + 1
	}

	emu.ram[0x1005] = 0x02 // never-assigned opcode
	reason := ds.Hook(emu, 0x1005)

	assert.Equal(t, cpu6502.StopRequested, reason)
	assert.Equal(t, 6, ds.History().Len(), "the invalid record is pushed before detection")

	text := out.String()
	assert.Contains(t, text, "*** INVALID OPCODE! Dumping history:")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Len(t, lines, 7, "banner line plus 6 dumped history lines")
}

func TestDebugBBOneStepDelay(t *testing.T) {
	ds, _, emu := newDebugEmuAt(0x1000)
	ds.SetDebugBB(true)
	ds.SetBuffering(true)
	ds.SetMaxHistory(10)

	// BEQ +2 (branch), NOP, NOP, NOP.
	emu.ram[0x1000], emu.ram[0x1001] = 0xF0, 0x02
	emu.ram[0x1002] = 0xEA
	emu.ram[0x1003] = 0xEA

	ds.Hook(emu, 0x1000) // the entry instruction itself: never printed/recorded unless preceded by a branch
	assert.Equal(t, 0, ds.History().Len())

	emu.regs.PC = 0x1002
	ds.Hook(emu, 0x1002) // immediately follows a branch: recorded
	assert.Equal(t, 1, ds.History().Len())

	emu.regs.PC = 0x1003
	ds.Hook(emu, 0x1003) // not a branch target: not recorded
	assert.Equal(t, 1, ds.History().Len())
}

func TestLimitStopsObservationNotExecution(t *testing.T) {
	ds, _, emu := newDebugEmuAt(0x1000)
	ds.SetLimit(2)
	ds.SetBuffering(true)
	ds.SetMaxHistory(10)
	emu.ram[0x1000] = 0xEA

	assert.Equal(t, cpu6502.StopNone, ds.Hook(emu, 0x1000))
	assert.Equal(t, cpu6502.StopNone, ds.Hook(emu, 0x1000))
	assert.Equal(t, cpu6502.StopRequested, ds.Hook(emu, 0x1000))
	assert.Equal(t, uint(2), ds.ICount())
}

func TestPlainTracePrintsWatchesCompactly(t *testing.T) {
	ds, out, emu := newDebugEmuAt(0x1000)
	emu.ram[0x1000] = 0xEA
	emu.ram[0x0050] = 0x7E
	ds.AddWatch("foo", 0x0050, 1)

	ds.Hook(emu, 0x1000)

	text := out.String()
	assert.Contains(t, text, "foo($50)=$7E")
	assert.NotContains(t, text, "PC=", "watches force the compact layout without the instruction dump")
}

// TestResetPreservesNonDebugRanges matches DebugState6502::reset(), which
// never touches nonDebug_: everything else clears, but a non-debug range
// added before Reset still short-circuits the hook afterward.
func TestResetPreservesNonDebugRanges(t *testing.T) {
	ds, out, emu := newDebugEmuAt(0xC000)
	ds.AddNonDebug(0xC000, 0xC0FF)
	ds.AddWatch("foo", 0x0050, 1)
	ds.SetLimit(5)
	ds.SetBuffering(true)
	ds.SetMaxHistory(10)

	ds.Reset()

	assert.Empty(t, ds.Watches(), "watches clear on reset")
	assert.Equal(t, uint(0), ds.ICount(), "icount clears on reset")

	reason := ds.Hook(emu, 0xC000)

	assert.Equal(t, cpu6502.StopNone, reason)
	assert.Equal(t, 0, out.Len(), "the non-debug range added before Reset still short-circuits the hook")
}

func TestCollectPrecedesDebugBBAndTracing(t *testing.T) {
	ds, out, emu := newDebugEmuAt(0x1000)
	ds.SetDebugBB(true)
	ds.SetBuffering(true)
	ds.SetCollect(emu, true)
	emu.ram[0x1000] = 0xEA

	ds.Hook(emu, 0x1000)

	assert.Equal(t, 0, ds.History().Len(), "collect takes precedence and never touches history")
	assert.Equal(t, 0, out.Len())
	assert.Len(t, ds.SMC().Generations(), 1)
}
