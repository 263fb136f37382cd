package sim

import (
	"encoding/gob"
	"os"

	"github.com/uflarisc/ufla-risc/internal/cpu"
	"github.com/uflarisc/ufla-risc/internal/mem"
)

// Checkpoint is the machine state a simulation is restored from:
// registers, flags, PC/IR, the pipeline stage in flight, cycle/instruction
// counters, and the entire memory image. It does not hold the latches
// passed between stages (the decoded instruction, its operand values,
// the ALU result) nor the Halted flag, so only a Checkpoint taken at an
// instruction boundary (Stage == StageIF) of a running core carries
// everything the next Step reads.
type Checkpoint struct {
	CPU    cpu.State
	Mem    [mem.Size]uint32
	Stage  Stage
	Cycles int
	Instrs int
}

// Snapshot captures the scheduler's full state for persistence.
func (s *Scheduler) Snapshot() Checkpoint {
	ck := Checkpoint{
		CPU:    *s.CPU,
		Stage:  s.Stage,
		Cycles: s.Cycles,
		Instrs: s.Instrs,
	}
	for _, w := range s.Mem.NonZero() {
		ck.Mem[w.Addr] = w.Value
	}
	return ck
}

// Restore replaces the scheduler's CPU/memory/counters with ck's and
// clears Halted. The stage latches are left as they were.
func (s *Scheduler) Restore(ck Checkpoint) {
	*s.CPU = ck.CPU
	s.Mem.Reset()
	for addr, v := range ck.Mem {
		if v != 0 {
			s.Mem.Write(uint32(addr), v)
		}
	}
	s.Stage = ck.Stage
	s.Cycles = ck.Cycles
	s.Instrs = ck.Instrs
	s.Halted = false
}

// SaveSnapshot writes the scheduler's Checkpoint to path as a gob
// stream.
func SaveSnapshot(path string, s *Scheduler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ck := s.Snapshot()
	return gob.NewEncoder(f).Encode(&ck)
}

// LoadSnapshot reads a gob-encoded Checkpoint from path.
func LoadSnapshot(path string) (Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checkpoint{}, err
	}
	defer f.Close()
	var ck Checkpoint
	err = gob.NewDecoder(f).Decode(&ck)
	return ck, err
}
