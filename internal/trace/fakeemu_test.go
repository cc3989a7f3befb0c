package trace

import "github.com/apple2tc/apple2tc/internal/cpu6502"

// fakeEmu is a minimal cpu6502.Emu6502 implementation for tests that drive
// the tracer directly, bypassing a real CPU.
type fakeEmu struct {
	regs cpu6502.Regs
	ram  [65536]byte
}

func (e *fakeEmu) GetRegs() cpu6502.Regs { return e.regs }

func (e *fakeEmu) RAMPeek(addr uint16) uint8 { return e.ram[addr] }

func (e *fakeEmu) RAMPeek16(addr uint16) uint16 {
	return uint16(e.ram[addr]) | uint16(e.ram[addr+1])<<8
}

func (e *fakeEmu) GetMainRAM() *[65536]byte { return &e.ram }
