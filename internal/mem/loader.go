package mem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/uflarisc/ufla-risc/internal/isa"
)

// LoadResult summarizes a Load call: how many instruction words were
// written, and any non-fatal warnings about malformed lines (mirroring
// the original loader's tolerant behavior — a bad line is skipped, not
// a hard failure).
type LoadResult struct {
	Loaded   int
	Warnings []string
}

// Load reads the machine-code listing format described by the toolchain's
// external interface: one 32-bit instruction per line as 32 characters
// of '0'/'1', optional "address <bin>" directives (a plain base-2
// literal, no "0b" prefix) that reposition the write cursor, blank
// lines, and '#'-prefixed comment lines. Loading starts at address 0.
func (m *Memory) Load(r io.Reader) (LoadResult, error) {
	var res LoadResult
	addr := uint32(0)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if strings.EqualFold(fields[0], "address") {
			if len(fields) < 2 {
				res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: address directive missing argument", lineNo))
				continue
			}
			v, err := strconv.ParseUint(fields[1], 2, 32)
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: invalid address %q", lineNo, fields[1]))
				continue
			}
			addr = uint32(v)
			continue
		}

		if len(line) != 32 || !isBinaryWord(line) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: malformed instruction %q", lineNo, line))
			continue
		}

		word, err := strconv.ParseUint(line, 2, 32)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: malformed instruction %q", lineNo, line))
			continue
		}

		m.Write(addr, uint32(word))
		addr = uint32(isa.Mask16(addr + 1))
		res.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func isBinaryWord(s string) bool {
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}
