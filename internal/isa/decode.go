package isa

import "encoding/binary"

// Decoded is a freshly-extracted view of a 32-bit instruction word.
// The simulator's ID stage recomputes one of these per cycle; it is
// never retained across instructions.
type Decoded struct {
	Raw          uint32
	Op           Opcode
	Ra, Rb, Rc   uint8
	Const16      uint16
	Address24    uint32
	BranchOffset uint8
	Kind         Kind
	Mnemonic     string
}

// Decode extracts every field a UFLA-RISC instruction word might carry.
// Field extraction never fails, even for reserved opcodes: those come
// back with Kind == KindUnknown and Mnemonic == "UNKNOWN", and it is the
// scheduler's job to reject them at dispatch time.
func Decode(word uint32) Decoded {
	op := Opcode(word >> 24)
	return Decoded{
		Raw:          word,
		Op:           op,
		Ra:           uint8(word >> 16),
		Rb:           uint8(word >> 8),
		Rc:           uint8(word),
		Const16:      uint16(word >> 8),
		Address24:    Mask24(word),
		BranchOffset: Mask8(word),
		Kind:         KindOf(op),
		Mnemonic:     Mnemonic(op),
	}
}

// PackWord marshals an encoded instruction word into its 4-byte
// big-endian wire form, for tooling that fingerprints programs (see
// internal/conformance).
func PackWord(word uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], word)
	return b
}

// UnpackWord is the inverse of PackWord.
func UnpackWord(b [4]byte) uint32 {
	return binary.BigEndian.Uint32(b[:])
}
