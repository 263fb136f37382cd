package asm

import (
	"fmt"
	"io"
	"strings"
)

// Result bundles everything an assemble run produces, for the CLI to
// report on (instruction/label counts) without re-parsing. Addresses
// runs parallel to Words: Addresses[i] is the memory address Words[i]
// belongs at, which may skip ahead of len(Words) wherever the source
// used an "address" directive to place code non-contiguously.
type Result struct {
	Words     []uint32
	Addresses []uint32
	Symtab    *SymbolTable
}

// Assemble runs the full two-pass pipeline: Parse then Encode.
func Assemble(src io.Reader) (Result, error) {
	instrs, symtab, err := Parse(src)
	if err != nil {
		return Result{}, err
	}
	words, err := Encode(instrs, symtab)
	if err != nil {
		return Result{}, err
	}
	addrs := make([]uint32, len(instrs))
	for i, instr := range instrs {
		addrs[i] = instr.Address
	}
	return Result{Words: words, Addresses: addrs, Symtab: symtab}, nil
}

// WriteListing renders words as the machine-code listing format: one
// 32-bit instruction per line, as 32 characters of '0'/'1'. Wherever
// addresses skips ahead of the next contiguous slot, an "address N"
// directive line is emitted first, so the loader places each word
// exactly where the assembler put it.
func WriteListing(w io.Writer, words []uint32, addresses []uint32) error {
	var lines []string
	next := uint32(0)
	for i, word := range words {
		addr := addresses[i]
		if addr != next {
			lines = append(lines, fmt.Sprintf("address %b", addr))
		}
		lines = append(lines, fmt.Sprintf("%032b", word))
		next = addr + 1
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
