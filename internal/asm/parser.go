package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/uflarisc/ufla-risc/internal/isa"
)

// ParsedInstruction is one source instruction surviving pass 1:
// mnemonic and arguments kept as raw token strings, ready for pass 2
// (the encoder) to interpret. It is discarded once encoded.
type ParsedInstruction struct {
	Mnemonic string
	Args     []string
	Line     int
	Raw      string
	Address  uint32
}

// Parse runs pass 1 over src: address tracking, label definition, and
// instruction collection. It does not encode anything — that's Encode's
// job (pass 2).
func Parse(src io.Reader) ([]ParsedInstruction, *SymbolTable, error) {
	var instrs []ParsedInstruction
	symtab := NewSymbolTable()
	addr := uint32(0)

	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := Preprocess(raw)
		if line == "" {
			continue
		}

		tokens := Tokenize(line)
		if len(tokens) == 0 {
			continue
		}

		if strings.EqualFold(tokens[0], "address") {
			newAddr, err := parseAddressDirective(tokens, lineNo, raw)
			if err != nil {
				return nil, nil, err
			}
			addr = newAddr
			continue
		}

		if strings.HasSuffix(line, ":") {
			label := strings.TrimSuffix(line, ":")
			if err := defineLabel(symtab, label, addr, lineNo, raw); err != nil {
				return nil, nil, err
			}
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			label := strings.TrimSpace(line[:idx])
			if err := defineLabel(symtab, label, addr, lineNo, raw); err != nil {
				return nil, nil, err
			}
			rest := strings.TrimSpace(line[idx+1:])
			if rest == "" {
				continue
			}
			tokens = Tokenize(rest)
		}

		mnemonic := strings.ToLower(tokens[0])
		if _, ok := isa.Lookup(mnemonic); !ok {
			return nil, nil, errf(KindLexical, lineNo, raw, "unknown instruction: %s", tokens[0])
		}

		instrs = append(instrs, ParsedInstruction{
			Mnemonic: mnemonic,
			Args:     tokens[1:],
			Line:     lineNo,
			Raw:      raw,
			Address:  addr,
		})
		addr++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return instrs, symtab, nil
}

func defineLabel(symtab *SymbolTable, label string, addr uint32, lineNo int, raw string) error {
	if label == "" {
		return errf(KindLexical, lineNo, raw, "empty label")
	}
	if err := symtab.Define(label, addr); err != nil {
		return errf(KindLexical, lineNo, raw, "duplicate label: %s", label)
	}
	return nil
}

// parseAddressDirective parses "address <literal>". The literal is
// tried first as a general number (decimal/hex/binary); if that fails,
// as plain base-2 digits with no prefix.
func parseAddressDirective(tokens []string, lineNo int, raw string) (uint32, error) {
	if len(tokens) < 2 {
		return 0, errf(KindLexical, lineNo, raw, "address directive requires an argument")
	}
	val, ok := ParseNumber(tokens[1])
	if !ok {
		v, err := strconv.ParseInt(tokens[1], 2, 64)
		if err != nil {
			return 0, errf(KindLexical, lineNo, raw, "invalid address: %s", tokens[1])
		}
		val = v
	}
	if val < 0 || val > isa.MaxAddress16 {
		return 0, errf(KindRange, lineNo, raw, "address out of range 0-65535: %d", val)
	}
	return uint32(val), nil
}
