package cpu

import "testing"

func TestR0Sink(t *testing.T) {
	var s State
	s.Write(0, 0xDEADBEEF)
	if got := s.Read(0); got != 0 {
		t.Fatalf("Read(0) = 0x%08X; want 0", got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	var s State
	s.Write(5, 42)
	if got := s.Read(5); got != 42 {
		t.Fatalf("Read(5) = %d; want 42", got)
	}
}

func TestReadSigned(t *testing.T) {
	var s State
	s.Write(1, 0xFFFFFFFF)
	if got := s.ReadSigned(1); got != -1 {
		t.Fatalf("ReadSigned(1) = %d; want -1", got)
	}
}

func TestIncPCWraps32Bit(t *testing.T) {
	var s State
	s.SetPC(0xFFFFFFFF)
	s.IncPC()
	if s.GetPC() != 0 {
		t.Fatalf("PC after wraparound = %d; want 0", s.GetPC())
	}
}

func TestDiffDetectsChanges(t *testing.T) {
	var s State
	before := s.Snapshot()
	s.Write(3, 7)
	s.SetPC(1)
	d := s.Diff(before)
	if d.Empty() {
		t.Fatal("diff should not be empty")
	}
	if !d.PCChanged || d.PCNew != 1 {
		t.Errorf("PC diff = %+v", d)
	}
	if len(d.Regs) != 1 || d.Regs[0].Index != 3 || d.Regs[0].New != 7 {
		t.Errorf("reg diff = %+v", d.Regs)
	}
}

func TestControlUnitBEQBNE(t *testing.T) {
	var s State
	s.SetPC(3)
	if taken := s.BEQ(1, 1, 0x08); !taken {
		t.Error("BEQ(1,1) should branch")
	}
	if s.GetPC() != 0x08 {
		t.Errorf("PC = %d; want 8", s.GetPC())
	}
	s.SetPC(3)
	if taken := s.BEQ(1, 2, 0x08); taken {
		t.Error("BEQ(1,2) should not branch")
	}
	if s.GetPC() != 3 {
		t.Errorf("PC = %d; want unchanged 3", s.GetPC())
	}
	if taken := s.BNE(1, 2, 0x20); !taken {
		t.Error("BNE(1,2) should branch")
	}
	if s.GetPC() != 0x20 {
		t.Errorf("PC = %d; want 0x20", s.GetPC())
	}
}

func TestControlUnitJAL(t *testing.T) {
	var s State
	s.SetPC(11) // IF already advanced past the JAL at address 10
	s.JAL(100)
	if s.GetPC() != 100 {
		t.Errorf("PC = %d; want 100", s.GetPC())
	}
	if s.Read(31) != 11 {
		t.Errorf("R31 = %d; want 11 (return address)", s.Read(31))
	}
}

func TestControlUnitJR(t *testing.T) {
	var s State
	s.Write(31, 11)
	s.JR(s.Read(31))
	if s.GetPC() != 11 {
		t.Errorf("PC = %d; want 11", s.GetPC())
	}
}

func TestControlUnitJ(t *testing.T) {
	var s State
	s.J(500)
	if s.GetPC() != 500 {
		t.Errorf("PC = %d; want 500", s.GetPC())
	}
}
