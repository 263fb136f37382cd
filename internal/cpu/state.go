// Package cpu models the UFLA-RISC register file, flag quartet, ALU,
// and control unit. It owns no process-wide state: every value lives in
// a *State the caller constructs and threads through explicitly.
package cpu

import "github.com/uflarisc/ufla-risc/internal/isa"

// NumRegisters is the size of the general-purpose register file.
const NumRegisters = 32

// Flags is the one-bit condition-code quartet. Flags are not
// addressable; they are written by flag-affecting instructions in
// EX_MEM and read only by the (future) branch semantics.
type Flags struct {
	Neg, Zero, Carry, Overflow bool
}

// State is the complete architectural state of one UFLA-RISC core:
// the register file, program counter, instruction register, and flags.
type State struct {
	Regs  [NumRegisters]uint32
	PC    uint32
	IR    uint32
	Flags Flags
}

// Read returns the value of register i. Register 0 always reads as 0.
func (s *State) Read(i uint8) uint32 {
	if i == 0 {
		return 0
	}
	return s.Regs[isa.Mask5(uint32(i))]
}

// ReadSigned returns register i reinterpreted as two's-complement signed.
func (s *State) ReadSigned(i uint8) int32 {
	return int32(s.Read(i))
}

// Write stores v into register i, masked to 32 bits. Writes to register
// 0 are silently discarded — the R0 sink invariant.
func (s *State) Write(i uint8, v uint32) {
	idx := isa.Mask5(uint32(i))
	if idx == 0 {
		return
	}
	s.Regs[idx] = v
}

// IncPC advances the program counter by one word.
func (s *State) IncPC() {
	s.PC++
}

// SetPC replaces the program counter outright (used by JAL/JR/J/BEQ/BNE).
func (s *State) SetPC(v uint32) {
	s.PC = v
}

// GetPC returns the current program counter.
func (s *State) GetPC() uint32 {
	return s.PC
}

// SetIR records the last-fetched instruction word.
func (s *State) SetIR(w uint32) {
	s.IR = w
}

// GetIR returns the last-fetched instruction word.
func (s *State) GetIR() uint32 {
	return s.IR
}

// SetFlags updates flags selectively: a nil pointer leaves that flag
// untouched. EX_MEM commits flag-affecting results through SetFlagsAll
// instead; control-flow and memory instructions touch the flags through
// neither.
func (s *State) SetFlags(neg, zero, carry, overflow *bool) {
	if neg != nil {
		s.Flags.Neg = *neg
	}
	if zero != nil {
		s.Flags.Zero = *zero
	}
	if carry != nil {
		s.Flags.Carry = *carry
	}
	if overflow != nil {
		s.Flags.Overflow = *overflow
	}
}

// SetFlagsAll overwrites the whole quartet at once, the common case
// used by EX_MEM when committing an ALU result's flags.
func (s *State) SetFlagsAll(f Flags) {
	s.Flags = f
}

// ClearFlags zeros all four flags.
func (s *State) ClearFlags() {
	s.Flags = Flags{}
}

// Reset returns the state to its power-on value: all registers, PC, IR
// and flags zero.
func (s *State) Reset() {
	*s = State{}
}
