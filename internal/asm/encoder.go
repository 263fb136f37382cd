package asm

import (
	"github.com/uflarisc/ufla-risc/internal/isa"
)

// Encode runs pass 2: turns each parsed instruction into its 32-bit
// word, resolving labels against symtab. Encode never mutates instrs or
// symtab.
func Encode(instrs []ParsedInstruction, symtab *SymbolTable) ([]uint32, error) {
	words := make([]uint32, 0, len(instrs))
	for _, instr := range instrs {
		word, err := encodeOne(instr, symtab)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, nil
}

func encodeOne(instr ParsedInstruction, symtab *SymbolTable) (uint32, error) {
	op, _ := isa.Lookup(instr.Mnemonic) // Parse already validated this exists
	if op == isa.HALT {
		return 0xFFFFFFFF, nil
	}

	switch isa.KindOf(op) {
	case isa.Kind3Reg:
		return encode3Reg(op, instr)
	case isa.Kind2Reg, isa.KindStore:
		return encode2Reg(op, instr)
	case isa.Kind1Reg:
		return encode1Reg(op, instr)
	case isa.KindImm16:
		return encodeImm16(op, instr)
	case isa.KindBranch:
		return encodeBranch(op, instr, symtab)
	case isa.KindJump:
		return encodeJump(op, instr, symtab)
	case isa.KindNone:
		return uint32(op) << 24, nil
	default:
		return 0, errf(KindLexical, instr.Line, instr.Raw, "unrecognized instruction type: %s", instr.Mnemonic)
	}
}

// encode3Reg: opcode | ra | rb | rc. Source order is "rc, ra, rb" (dest first).
func encode3Reg(op isa.Opcode, instr ParsedInstruction) (uint32, error) {
	if len(instr.Args) < 3 {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%s requires 3 registers", instr.Mnemonic)
	}
	rc, err := ParseRegister(instr.Args[0])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	ra, err := ParseRegister(instr.Args[1])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	rb, err := ParseRegister(instr.Args[2])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	return uint32(op)<<24 | uint32(ra)<<16 | uint32(rb)<<8 | uint32(rc), nil
}

// encode2Reg: opcode | ra | 0 | rc. Source order is "rc, ra" (dest
// first); for STORE, rc names the address register and ra the value
// register, but the bit positions and token order are identical.
func encode2Reg(op isa.Opcode, instr ParsedInstruction) (uint32, error) {
	if len(instr.Args) < 2 {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%s requires 2 registers", instr.Mnemonic)
	}
	rc, err := ParseRegister(instr.Args[0])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	ra, err := ParseRegister(instr.Args[1])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	return uint32(op)<<24 | uint32(ra)<<16 | uint32(rc), nil
}

// encode1Reg: opcode | 0 | 0 | rc.
func encode1Reg(op isa.Opcode, instr ParsedInstruction) (uint32, error) {
	if len(instr.Args) < 1 {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%s requires 1 register", instr.Mnemonic)
	}
	rc, err := ParseRegister(instr.Args[0])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	return uint32(op)<<24 | uint32(rc), nil
}

// encodeImm16: opcode | const16 | rc. Source order is "rc, const16".
func encodeImm16(op isa.Opcode, instr ParsedInstruction) (uint32, error) {
	if len(instr.Args) < 2 {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%s requires a register and a constant", instr.Mnemonic)
	}
	rc, err := ParseRegister(instr.Args[0])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	val, ok := ParseNumber(instr.Args[1])
	if !ok {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "invalid constant: %s", instr.Args[1])
	}
	if val < 0 || val > isa.MaxConst16 {
		return 0, errf(KindRange, instr.Line, instr.Raw, "constant out of range 0-65535: %d", val)
	}
	return uint32(op)<<24 | uint32(val)<<8 | uint32(rc), nil
}

// encodeBranch: opcode | ra | rb | offset8. Source order is "ra, rb, target".
func encodeBranch(op isa.Opcode, instr ParsedInstruction, symtab *SymbolTable) (uint32, error) {
	if len(instr.Args) < 3 {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%s requires 2 registers and a target", instr.Mnemonic)
	}
	ra, err := ParseRegister(instr.Args[0])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	rb, err := ParseRegister(instr.Args[1])
	if err != nil {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%v", err)
	}
	val, err := resolveAddressArg(instr.Args[2], symtab, instr.Line, instr.Raw)
	if err != nil {
		return 0, err
	}
	if val < 0 || val > isa.MaxOffset8 {
		return 0, errf(KindRange, instr.Line, instr.Raw, "branch offset out of range 0-255: %d", val)
	}
	return uint32(op)<<24 | uint32(ra)<<16 | uint32(rb)<<8 | uint32(val), nil
}

// encodeJump: opcode | address24. Source order is just the target.
func encodeJump(op isa.Opcode, instr ParsedInstruction, symtab *SymbolTable) (uint32, error) {
	if len(instr.Args) < 1 {
		return 0, errf(KindLexical, instr.Line, instr.Raw, "%s requires a target address", instr.Mnemonic)
	}
	val, err := resolveAddressArg(instr.Args[0], symtab, instr.Line, instr.Raw)
	if err != nil {
		return 0, err
	}
	if val < 0 || val > isa.MaxAddress24 {
		return 0, errf(KindRange, instr.Line, instr.Raw, "jump address out of range 0-16777215: %d", val)
	}
	return uint32(op)<<24 | uint32(val), nil
}

// resolveAddressArg parses arg as a number; if it isn't one, it must be
// a defined label.
func resolveAddressArg(arg string, symtab *SymbolTable, line int, raw string) (int64, error) {
	if val, ok := ParseNumber(arg); ok {
		return val, nil
	}
	addr, ok := symtab.Lookup(arg)
	if !ok {
		return 0, errf(KindSymbol, line, raw, "unresolved label: %s", arg)
	}
	return int64(addr), nil
}
