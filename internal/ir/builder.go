package ir

import (
	"sort"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
	"github.com/apple2tc/apple2tc/internal/trace"
)

// codeMemory is a sparse view over captured generation bytes, just enough
// to satisfy cpu6502.Memory for static effective-address resolution of
// jump/branch targets (e.g. JMP (ind) needs to read the captured vector
// table, not live emulator RAM which no longer exists once tracing ends).
type codeMemory map[uint16]byte

func (m codeMemory) RAMPeek(addr uint16) uint8 { return m[addr] }

func (m codeMemory) RAMPeek16(addr uint16) uint16 {
	return uint16(m[addr]) | uint16(m[addr+1])<<8
}

func isConditionalBranch(kind cpu6502.InstKind) bool {
	switch kind {
	case cpu6502.BCC, cpu6502.BCS, cpu6502.BEQ, cpu6502.BMI, cpu6502.BNE, cpu6502.BPL, cpu6502.BVC, cpu6502.BVS:
		return true
	default:
		return false
	}
}

func isBlockExit(kind cpu6502.InstKind) bool {
	switch kind {
	case cpu6502.JSR, cpu6502.RTS, cpu6502.RTI, cpu6502.BRK:
		return true
	default:
		return false
	}
}

// isLeaderTerminator reports whether kind ends a block such that the
// instruction right after it is always a leader (spec.md GLOSSARY).
func isLeaderTerminator(kind cpu6502.InstKind) bool {
	return isConditionalBranch(kind) || isBlockExit(kind) || kind == cpu6502.JMP
}

// BuildFunction walks the generations a collector (internal/trace)
// gathered while tracing, decodes every byte range it captured, and
// partitions the result into leader-delimited BasicBlocks (spec.md
// SPEC_FULL.md §4.13). It never drops a decoded instruction: every one
// ends up in exactly one BasicBlock.
func BuildFunction(gens []trace.Generation, branchTargets map[uint16]struct{}) *Function {
	code := make(codeMemory)
	for _, gen := range gens {
		for _, br := range gen.Data {
			for i, b := range br.Bytes {
				code[br.Addr+uint16(i)] = b
			}
		}
	}

	insts := decodeRuns(code)
	leaders := findLeaders(insts, branchTargets)

	fn := &Function{}
	pcToBlock := make(map[uint16]int)

	var cur *BasicBlock
	for _, ins := range insts {
		if cur == nil || leaders[ins.PC] {
			cur = fn.addBlock(ins.PC)
			pcToBlock[ins.PC] = cur.ID
		}
		cur.Insts = append(cur.Insts, ins)
	}

	for _, bb := range fn.Blocks {
		if len(bb.Insts) == 0 {
			continue
		}
		last := bb.Insts[len(bb.Insts)-1]
		addFallthroughOrTargetEdges(fn, bb, last, code, pcToBlock)
	}

	return fn
}

// decodeRuns groups the captured addresses into maximal contiguous spans
// and decodes each sequentially from its start, in ascending address
// order overall.
func decodeRuns(code codeMemory) []Instruction {
	addrs := make([]uint16, 0, len(code))
	for a := range code {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	var insts []Instruction
	i := 0
	for i < len(addrs) {
		start := addrs[i]
		end := start
		for i < len(addrs) && addrs[i] == end {
			end++
			i++
		}
		// [start, end) is one maximal contiguous captured run.
		pc := start
		for pc < end {
			bytes := cpu6502.ThreeBytes{code[pc], code[pc+1], code[pc+2]}
			inst := cpu6502.DecodeInst(pc, bytes)
			insts = append(insts, Instruction{PC: pc, Inst: inst, Bytes: bytes})
			pc += uint16(inst.Size)
		}
	}
	return insts
}

func findLeaders(insts []Instruction, branchTargets map[uint16]struct{}) map[uint16]bool {
	leaders := make(map[uint16]bool)
	for i, ins := range insts {
		if i == 0 {
			leaders[ins.PC] = true
		}
		if _, ok := branchTargets[ins.PC]; ok {
			leaders[ins.PC] = true
		}
		if i > 0 && isLeaderTerminator(insts[i-1].Inst.Kind) {
			leaders[ins.PC] = true
		}
	}
	return leaders
}

func addFallthroughOrTargetEdges(fn *Function, bb *BasicBlock, last Instruction, code codeMemory, pcToBlock map[uint16]int) {
	kind := last.Inst.Kind
	fallthroughPC := last.PC + uint16(last.Inst.Size)

	switch {
	case isConditionalBranch(kind):
		target := cpu6502.EffectiveAddress(code, cpu6502.Regs{}, last.Inst.AddrMode, last.Inst.Operand)
		if idx, ok := pcToBlock[fallthroughPC]; ok {
			fn.addEdge(bb.ID, idx)
		}
		if idx, ok := pcToBlock[target]; ok {
			fn.addEdge(bb.ID, idx)
		}
	case kind == cpu6502.JMP:
		target := cpu6502.EffectiveAddress(code, cpu6502.Regs{}, last.Inst.AddrMode, last.Inst.Operand)
		if idx, ok := pcToBlock[target]; ok {
			fn.addEdge(bb.ID, idx)
		}
	case isBlockExit(kind):
		// JSR/RTS/RTI/BRK: treated as function exits for this pass.
	default:
		if idx, ok := pcToBlock[fallthroughPC]; ok {
			fn.addEdge(bb.ID, idx)
		}
	}
}
