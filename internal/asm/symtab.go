package asm

import (
	"errors"
	"sort"
)

// ErrDuplicateLabel is returned by Define when name is already bound.
var ErrDuplicateLabel = errors.New("duplicate label")

// SymbolTable maps label identifiers to the 16-bit address they were
// defined at. Populated only during the parser's pass 1.
type SymbolTable struct {
	addrs map[string]uint32
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addrs: make(map[string]uint32)}
}

// Define binds name to addr. Redefining an existing label is an error.
func (t *SymbolTable) Define(name string, addr uint32) error {
	if _, exists := t.addrs[name]; exists {
		return ErrDuplicateLabel
	}
	t.addrs[name] = addr
	return nil
}

// Lookup resolves name to its address.
func (t *SymbolTable) Lookup(name string) (uint32, bool) {
	addr, ok := t.addrs[name]
	return addr, ok
}

// Symbol is one (name, address) pair, for sorted listing output.
type Symbol struct {
	Name    string
	Address uint32
}

// Sorted returns every label bound in the table, ordered by address
// then name — used by the assembler's --symbols dump and by tests.
func (t *SymbolTable) Sorted() []Symbol {
	out := make([]Symbol, 0, len(t.addrs))
	for name, addr := range t.addrs {
		out = append(out, Symbol{Name: name, Address: addr})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of labels defined.
func (t *SymbolTable) Len() int {
	return len(t.addrs)
}
