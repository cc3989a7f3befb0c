package trace

import (
	"testing"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
	"github.com/stretchr/testify/assert"
)

func recAt(pc uint16) InstRecord {
	return InstRecord{Regs: cpu6502.Regs{PC: pc}}
}

// TestHistoryCap is spec.md §8 scenario 1 verbatim.
func TestHistoryCap(t *testing.T) {
	h := NewHistory(3)
	h.Push(recAt(0x1000))
	h.Push(recAt(0x1001))
	h.Push(recAt(0x1002))
	h.Push(recAt(0x1003))

	assert.LessOrEqual(t, h.Len(), 3)

	var pcs []uint16
	for _, rec := range h.Records() {
		pcs = append(pcs, rec.Regs.PC)
	}
	assert.Equal(t, []uint16{0x1001, 0x1002, 0x1003}, pcs)
}

func TestHistoryShrinkDropsOldest(t *testing.T) {
	h := NewHistory(5)
	for _, pc := range []uint16{0x10, 0x11, 0x12, 0x13} {
		h.Push(recAt(pc))
	}

	h.SetMaxHistory(2)

	assert.LessOrEqual(t, h.Len(), 2)
	pcs := make([]uint16, 0, 2)
	for _, rec := range h.Records() {
		pcs = append(pcs, rec.Regs.PC)
	}
	assert.Equal(t, []uint16{0x12, 0x13}, pcs)
}

func TestHistoryGrowAfterShrinkIsUnaffected(t *testing.T) {
	h := NewHistory(5)
	h.Push(recAt(0x10))
	h.SetMaxHistory(10)
	assert.Equal(t, uint(10), h.MaxHistory())
	assert.Equal(t, 1, h.Len())
}

func TestHistoryFreeEmptiesRing(t *testing.T) {
	h := NewHistory(3)
	h.Push(recAt(0x10))
	h.Free()
	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.Records())
}

func TestHistoryClearKeepsCap(t *testing.T) {
	h := NewHistory(3)
	h.Push(recAt(0x10))
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, uint(3), h.MaxHistory())
}

func TestHistoryZeroCapNeverRetains(t *testing.T) {
	h := NewHistory(0)
	h.Push(recAt(0x10))
	h.Push(recAt(0x11))
	assert.Equal(t, 0, h.Len())
}
