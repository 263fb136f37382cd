package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// Preprocess strips comments (from the first '#' or ';' to end of line),
// turns commas into whitespace, and trims the result.
func Preprocess(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	line = strings.ReplaceAll(line, ",", " ")
	return strings.TrimSpace(line)
}

// Tokenize splits a preprocessed line on runs of whitespace.
func Tokenize(line string) []string {
	if line == "" {
		return nil
	}
	return strings.Fields(line)
}

// ParseRegister accepts "rN" (case-insensitive) with 0 <= N <= 31.
func ParseRegister(tok string) (uint8, error) {
	t := strings.ToLower(strings.TrimSpace(tok))
	if !strings.HasPrefix(t, "r") {
		return 0, fmt.Errorf("register must start with 'r': %s", tok)
	}
	n, err := strconv.Atoi(t[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid register: %s", tok)
	}
	if n < 0 || n > 31 {
		return 0, fmt.Errorf("register out of range 0-31: %s", tok)
	}
	return uint8(n), nil
}

// ParseNumber accepts decimal, 0x…, and 0b… literals with an optional
// leading sign. ok is false when tok isn't a numeric literal at all —
// the caller should then try it as a label. Only 0x/0b-prefixed tokens
// go through base-0 parsing; anything else is parsed strictly as base
// 10, so a leading-zero token like "010" is decimal ten, never C-style
// octal eight (base 0's octal fallback would silently misread it).
func ParseNumber(tok string) (value int64, ok bool) {
	t := strings.TrimSpace(tok)
	unsigned := strings.TrimPrefix(t, "-")
	base := 10
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") ||
		strings.HasPrefix(unsigned, "0b") || strings.HasPrefix(unsigned, "0B") {
		base = 0
	}
	v, err := strconv.ParseInt(t, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
