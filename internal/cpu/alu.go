package cpu

import "github.com/uflarisc/ufla-risc/internal/isa"

// Result is the 32-bit value and flag quartet an ALU operation produces.
// Flag-affecting instructions commit Flags atomically in EX_MEM; others
// never call an ALU op at all, so the CPU's own flags are untouched.
type Result struct {
	Value uint32
	Flags Flags
}

// arithmetic computes the flag quartet for ADD/SUB/INC/DEC/NEG-family
// operations. res is the unbounded (unmasked) result; a and b are the
// 32-bit operands as actually combined (so NEG passes a=0, b=operand and
// isSub=true, matching "NEG is modeled as 0 - a").
func arithmetic(res int64, a, b uint32, isSub bool) Result {
	result32 := isa.Mask32(uint64(res))
	f := Flags{
		Zero: result32 == 0,
		Neg:  result32&0x80000000 != 0,
	}
	if isSub {
		f.Carry = a < b
	} else {
		f.Carry = res > 0xFFFFFFFF
	}
	aS, bS, resS := isa.ToSigned32(a), isa.ToSigned32(b), isa.ToSigned32(result32)
	if isSub {
		f.Overflow = (aS >= 0 && bS < 0 && resS < 0) || (aS < 0 && bS >= 0 && resS >= 0)
	} else {
		f.Overflow = (aS >= 0 && bS >= 0 && resS < 0) || (aS < 0 && bS < 0 && resS >= 0)
	}
	return Result{Value: result32, Flags: f}
}

// logical computes the flag quartet shared by XOR/OR/AND/NOT/PASSA/shifts/
// SLT/MUL/DIV/MOD: carry and overflow are always clear.
func logical(result uint32) Result {
	return Result{
		Value: result,
		Flags: Flags{
			Zero: result == 0,
			Neg:  result&0x80000000 != 0,
		},
	}
}

// Add computes a + b with arithmetic flags.
func Add(a, b uint32) Result {
	return arithmetic(int64(a)+int64(b), a, b, false)
}

// Sub computes a - b with arithmetic flags.
func Sub(a, b uint32) Result {
	return arithmetic(int64(a)-int64(b), a, b, true)
}

// Xor computes a ^ b with logical flags.
func Xor(a, b uint32) Result { return logical(a ^ b) }

// Or computes a | b with logical flags.
func Or(a, b uint32) Result { return logical(a | b) }

// And computes a & b with logical flags.
func And(a, b uint32) Result { return logical(a & b) }

// Not computes the one's complement of a with logical flags (PASSNOTA/NOT).
func Not(a uint32) Result { return logical(^a) }

// Copy passes a through unchanged with logical flags (PASSA).
func Copy(a uint32) Result { return logical(a) }

// Zeros always yields 0 with zero=1 and the other three flags clear.
func Zeros() Result {
	return Result{Value: 0, Flags: Flags{Zero: true}}
}

// Asl is arithmetic shift left; identical to Lsl (both fill with zero).
func Asl(value, shiftAmount uint32) Result {
	shift := isa.Mask5(shiftAmount)
	return logical(value << shift)
}

// Asr is arithmetic shift right: sign-extending.
func Asr(value, shiftAmount uint32) Result {
	shift := isa.Mask5(shiftAmount)
	return logical(isa.ToUnsigned32(isa.ToSigned32(value) >> shift))
}

// Lsl is logical shift left; identical to Asl (both fill with zero).
func Lsl(value, shiftAmount uint32) Result {
	shift := isa.Mask5(shiftAmount)
	return logical(value << shift)
}

// Lsr is logical shift right: zero-fill.
func Lsr(value, shiftAmount uint32) Result {
	shift := isa.Mask5(shiftAmount)
	return logical(value >> shift)
}

// Slt returns 1 if a < b as signed 32-bit values, else 0.
func Slt(a, b uint32) Result {
	var v uint32
	if isa.ToSigned32(a) < isa.ToSigned32(b) {
		v = 1
	}
	return logical(v)
}

// Mul returns the low 32 bits of the unsigned 64-bit product.
func Mul(a, b uint32) Result {
	return logical(uint32(uint64(a) * uint64(b)))
}

// Div performs signed division. A zero divisor does not trap: it
// yields 0 with zero=1 and the other flags clear, and the second return
// value is true so the caller can surface a warning.
func Div(a, b uint32) (Result, bool) {
	if b == 0 {
		return Result{Value: 0, Flags: Flags{Zero: true}}, true
	}
	return logical(isa.ToUnsigned32(isa.ToSigned32(a) / isa.ToSigned32(b))), false
}

// Mod performs signed remainder, with the same divide-by-zero recovery as Div.
func Mod(a, b uint32) (Result, bool) {
	if b == 0 {
		return Result{Value: 0, Flags: Flags{Zero: true}}, true
	}
	return logical(isa.ToUnsigned32(isa.ToSigned32(a) % isa.ToSigned32(b))), false
}

// Neg computes -a (two's complement), modeled as the sub rule with a=0, b=operand.
func Neg(a uint32) Result {
	return arithmetic(int64(0)-int64(a), 0, a, true)
}

// Inc computes a + 1 via the add rule.
func Inc(a uint32) Result {
	return arithmetic(int64(a)+1, a, 1, false)
}

// Dec computes a - 1 via the sub rule.
func Dec(a uint32) Result {
	return arithmetic(int64(a)-1, a, 1, true)
}

// LoadConstHigh replaces the high 16 bits of cur with const16 (LCH).
// Does not update flags: LCH/LCL are not in the flag-affecting set.
func LoadConstHigh(cur uint32, const16 uint16) uint32 {
	return uint32(const16)<<16 | uint32(isa.Mask16(cur))
}

// LoadConstLow replaces the low 16 bits of cur with const16 (LCL).
func LoadConstLow(cur uint32, const16 uint16) uint32 {
	return (cur & 0xFFFF0000) | uint32(const16)
}
