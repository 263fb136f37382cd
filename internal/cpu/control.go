package cpu

import "github.com/uflarisc/ufla-risc/internal/isa"

// Control unit: the five branch/jump instructions. Each mutates PC
// (and, for JAL, R31) on the State it's given. All targets are masked
// to the width their encoding carries, defensively re-applied here even
// though the decoder already constrains the field.

// BEQ sets PC to off8 if valA == valB, and reports whether it branched.
func (s *State) BEQ(valA, valB uint32, off8 uint8) bool {
	if valA == valB {
		s.SetPC(uint32(off8))
		return true
	}
	return false
}

// BNE sets PC to off8 if valA != valB, and reports whether it branched.
func (s *State) BNE(valA, valB uint32, off8 uint8) bool {
	if valA != valB {
		s.SetPC(uint32(off8))
		return true
	}
	return false
}

// JAL saves the current PC (already advanced past JAL by IF) into R31,
// then jumps to addr24.
func (s *State) JAL(addr24 uint32) {
	s.Write(31, s.GetPC())
	s.SetPC(isa.Mask24(addr24))
}

// JR jumps to the low 16 bits of regVal.
func (s *State) JR(regVal uint32) {
	s.SetPC(uint32(isa.Mask16(regVal)))
}

// J jumps unconditionally to addr24.
func (s *State) J(addr24 uint32) {
	s.SetPC(isa.Mask24(addr24))
}
