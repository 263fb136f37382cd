package sim

import (
	"strings"
	"testing"

	"github.com/uflarisc/ufla-risc/internal/asm"
	"github.com/uflarisc/ufla-risc/internal/cpu"
	"github.com/uflarisc/ufla-risc/internal/mem"
)

func newScheduler(t *testing.T, src string) *Scheduler {
	t.Helper()
	res, err := asm.Assemble(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble(%q) error: %v", src, err)
	}
	m := mem.New()
	for i, w := range res.Words {
		m.Write(res.Addresses[i], w)
	}
	return New(&cpu.State{}, m)
}

// Scenario 1: add r1, r0, r0; halt -> reg[1]=0, zero=1, cycles=8.
func TestScenario1AddZeroThenHalt(t *testing.T) {
	s := newScheduler(t, "add r1, r0, r0\nhalt\n")
	s.Run(1000)
	if !s.Halted {
		t.Fatal("expected halted")
	}
	if s.CPU.Read(1) != 0 {
		t.Errorf("reg[1] = %d; want 0", s.CPU.Read(1))
	}
	if !s.CPU.Flags.Zero || s.CPU.Flags.Neg || s.CPU.Flags.Carry || s.CPU.Flags.Overflow {
		t.Errorf("flags = %+v; want only zero set", s.CPU.Flags)
	}
	if s.Cycles != 8 {
		t.Errorf("cycles = %d; want 8", s.Cycles)
	}
}

// Scenario 2: lch r2, 0xDEAD; lcl r2, 0xBEEF; halt -> reg[2]=0xDEADBEEF, cycles=12.
func TestScenario2LoadConstHighLow(t *testing.T) {
	s := newScheduler(t, "lch r2, 0xDEAD\nlcl r2, 0xBEEF\nhalt\n")
	s.Run(1000)
	if got := s.CPU.Read(2); got != 0xDEADBEEF {
		t.Errorf("reg[2] = 0x%08X; want 0xDEADBEEF", got)
	}
	if s.Cycles != 12 {
		t.Errorf("cycles = %d; want 12", s.Cycles)
	}
}

// Scenario 3: lcl r1,5; lcl r2,3; sub r3,r1,r2; halt -> reg[3]=2, all four flags clear.
func TestScenario3Subtract(t *testing.T) {
	s := newScheduler(t, "lcl r1, 5\nlcl r2, 3\nsub r3, r1, r2\nhalt\n")
	s.Run(1000)
	if got := s.CPU.Read(3); got != 2 {
		t.Errorf("reg[3] = %d; want 2", got)
	}
	if s.CPU.Flags.Neg || s.CPU.Flags.Zero || s.CPU.Flags.Carry || s.CPU.Flags.Overflow {
		t.Errorf("flags = %+v; want all clear", s.CPU.Flags)
	}
}

// Scenario 4: BEQ not taken, BNE taken, landing on a HALT placed via the
// address directive.
func TestScenario4BranchTaken(t *testing.T) {
	src := "lcl r1, 1\nlcl r2, 2\nbeq r1, r2, 0x08\nbne r1, r2, 0x20\naddress 0x20\nhalt\n"
	s := newScheduler(t, src)
	s.Run(10000)
	if !s.Halted {
		t.Fatal("expected halted")
	}
	if s.CPU.GetPC() != 0x21 {
		t.Errorf("final PC = 0x%X; want 0x21 (HALT at 0x20 advances PC by one in IF)", s.CPU.GetPC())
	}
}

// Scenario 5: division by zero recovers to 0 with zero flag set and a
// warning, rather than trapping.
func TestScenario5DivByZeroRecovers(t *testing.T) {
	s := newScheduler(t, "lcl r1, 10\nlcl r2, 0\ndiv r3, r1, r2\nhalt\n")
	var out strings.Builder
	s.Out = &out
	s.Run(1000)
	if got := s.CPU.Read(3); got != 0 {
		t.Errorf("reg[3] = %d; want 0", got)
	}
	if !s.CPU.Flags.Zero {
		t.Error("zero flag should be set after divide-by-zero recovery")
	}
	if !strings.Contains(out.String(), "WARNING") {
		t.Error("expected a divide-by-zero warning written to Out")
	}
}

// Scenario 6: a small increment loop running via BNE until reg[1] reaches 5.
func TestScenario6IncrementLoop(t *testing.T) {
	src := "start: lcl r1, 0\nL: inc r1, r1\nlcl r2, 5\nbne r1, r2, 0x01\nhalt\n"
	s := newScheduler(t, src)
	s.Run(100000)
	if !s.Halted {
		t.Fatal("expected halted")
	}
	if got := s.CPU.Read(1); got != 5 {
		t.Errorf("reg[1] = %d; want 5", got)
	}
}

func TestR0SinkAcrossInstructions(t *testing.T) {
	s := newScheduler(t, "add r0, r0, r0\nhalt\n")
	s.Run(1000)
	if s.CPU.Read(0) != 0 {
		t.Errorf("reg[0] = %d; want 0", s.CPU.Read(0))
	}
}

func TestUnknownOpcodeHaltsWithReason(t *testing.T) {
	m := mem.New()
	m.Write(0, 0xC0000000) // unassigned opcode
	s := New(&cpu.State{}, m)
	s.Run(10)
	if !s.Halted {
		t.Fatal("expected halted on unknown opcode")
	}
	if s.HaltReason() == "" {
		t.Error("expected a non-empty halt reason")
	}
}

func TestVerboseLoggingWritesPerCycle(t *testing.T) {
	s := newScheduler(t, "add r1, r0, r0\nhalt\n")
	var out strings.Builder
	s.Verbose = true
	s.Out = &out
	s.Run(1000)
	if out.Len() == 0 {
		t.Error("expected verbose output")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newScheduler(t, "lcl r1, 42\nhalt\n")
	s.Step() // IF
	s.Step() // ID
	ck := s.Snapshot()

	s2 := New(&cpu.State{}, mem.New())
	s2.Restore(ck)
	if s2.CPU.GetPC() != s.CPU.GetPC() {
		t.Errorf("restored PC = %d; want %d", s2.CPU.GetPC(), s.CPU.GetPC())
	}
	if s2.Cycles != s.Cycles || s2.Stage != s.Stage {
		t.Errorf("restored cycles/stage = %d/%v; want %d/%v", s2.Cycles, s2.Stage, s.Cycles, s.Stage)
	}
}
