package asm

import (
	"reflect"
	"testing"
)

func TestPreprocessStripsComments(t *testing.T) {
	cases := map[string]string{
		"add r1, r2, r3 # comment":  "add r1  r2  r3",
		"add r1, r2, r3 ; comment":  "add r1  r2  r3",
		"  add r1, r2  ":            "add r1  r2",
		"# just a comment":          "",
	}
	for in, want := range cases {
		if got := Preprocess(in); got != want {
			t.Errorf("Preprocess(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("add r1 r2   r3")
	want := []string{"add", "r1", "r2", "r3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v; want %v", got, want)
	}
}

func TestParseRegister(t *testing.T) {
	for _, tc := range []struct {
		tok     string
		want    uint8
		wantErr bool
	}{
		{"r0", 0, false},
		{"R15", 15, false},
		{"r31", 31, false},
		{"r32", 0, true},
		{"x1", 0, true},
		{"rNaN", 0, true},
	} {
		got, err := ParseRegister(tc.tok)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseRegister(%q) err = %v; wantErr %v", tc.tok, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseRegister(%q) = %d; want %d", tc.tok, got, tc.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	for _, tc := range []struct {
		tok     string
		want    int64
		wantOk  bool
	}{
		{"10", 10, true},
		{"-10", -10, true},
		{"0x1F", 0x1F, true},
		{"-0x1F", -0x1F, true},
		{"0b101", 5, true},
		{"010", 10, true},  // decimal ten, never C-style octal eight
		{"011", 11, true},  // decimal eleven, never C-style octal nine
		{"mylabel", 0, false},
	} {
		got, ok := ParseNumber(tc.tok)
		if ok != tc.wantOk {
			t.Errorf("ParseNumber(%q) ok = %v; want %v", tc.tok, ok, tc.wantOk)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseNumber(%q) = %d; want %d", tc.tok, got, tc.want)
		}
	}
}
