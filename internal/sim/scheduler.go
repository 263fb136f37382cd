// Package sim implements the 4-stage pipeline scheduler: IF, ID, EX_MEM,
// WB, one stage per clock cycle, strictly sequential with no hazard
// detection, forwarding, or branch prediction.
package sim

import (
	"fmt"
	"io"

	"github.com/uflarisc/ufla-risc/internal/cpu"
	"github.com/uflarisc/ufla-risc/internal/isa"
	"github.com/uflarisc/ufla-risc/internal/mem"
)

// Stage names the current pipeline stage.
type Stage int

const (
	StageIF Stage = iota
	StageID
	StageExMem
	StageWB
)

func (s Stage) String() string {
	switch s {
	case StageIF:
		return "IF"
	case StageID:
		return "ID"
	case StageExMem:
		return "EX_MEM"
	case StageWB:
		return "WB"
	default:
		return "?"
	}
}

// Scheduler drives one UFLA-RISC core through its pipeline, one stage
// per Step call. It owns no concurrency of its own: a single program
// counter walks a single pipeline, matching the hardware it models.
type Scheduler struct {
	CPU    *cpu.State
	Mem    *mem.Memory
	Stage  Stage
	Cycles int
	Instrs int
	Halted bool
	Verbose bool
	Out     io.Writer

	// Stage registers, latched between calls to Step.
	decoded     isa.Decoded
	valA, valB, valC uint32
	aluResult   uint32
	memData     uint32
	writeEnable bool
	isHalt      bool

	prev cpu.Snapshot

	// haltReason is set when EX_MEM hits an opcode with no catalog
	// entry; Run stops and reports it instead of looping forever.
	haltReason string
}

// New builds a scheduler over the given CPU and memory, starting in IF
// with a clean pipeline.
func New(c *cpu.State, m *mem.Memory) *Scheduler {
	return &Scheduler{CPU: c, Mem: m, Stage: StageIF, Out: io.Discard}
}

// Step executes a single clock cycle (one pipeline stage). It returns
// false once the core has halted and there is nothing left to do.
func (s *Scheduler) Step() bool {
	if s.Halted {
		return false
	}

	s.prev = s.CPU.Snapshot()

	switch s.Stage {
	case StageIF:
		s.stageIF()
		s.logStage(StageIF)
		s.Stage = StageID
	case StageID:
		s.stageID()
		s.logStage(StageID)
		s.Stage = StageExMem
	case StageExMem:
		s.stageExMem()
		s.logStage(StageExMem)
		s.Stage = StageWB
	case StageWB:
		s.stageWB()
		s.logStage(StageWB)
		s.Stage = StageIF
		s.Instrs++
	}

	s.Cycles++
	return true
}

// Run drives Step until the core halts or maxCycles is reached,
// whichever comes first. It returns the number of cycles actually
// executed.
func (s *Scheduler) Run(maxCycles int) int {
	for s.Cycles < maxCycles {
		if !s.Step() {
			break
		}
	}
	return s.Cycles
}

// CPI reports cycles per instruction, or 0 if no instruction has
// retired yet.
func (s *Scheduler) CPI() float64 {
	if s.Instrs == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instrs)
}

// HaltReason reports why the core stopped on an invalid opcode, or ""
// if it halted normally (or hasn't halted).
func (s *Scheduler) HaltReason() string {
	return s.haltReason
}

func (s *Scheduler) stageIF() {
	pc := s.CPU.GetPC()
	word := s.Mem.Read(pc)
	s.CPU.SetIR(word)
	s.CPU.IncPC()
}

func (s *Scheduler) stageID() {
	s.decoded = isa.Decode(s.CPU.GetIR())
	s.valA = s.CPU.Read(s.decoded.Ra)
	s.valB = s.CPU.Read(s.decoded.Rb)
	s.valC = s.CPU.Read(s.decoded.Rc)
}

func (s *Scheduler) stageExMem() {
	s.writeEnable = false
	s.aluResult = 0
	s.isHalt = false
	d := s.decoded

	switch d.Op {
	case isa.ADD:
		s.commitALU(cpu.Add(s.valA, s.valB))
	case isa.SUB:
		s.commitALU(cpu.Sub(s.valA, s.valB))
	case isa.ZEROS:
		s.commitALU(cpu.Zeros())
	case isa.XOR:
		s.commitALU(cpu.Xor(s.valA, s.valB))
	case isa.OR:
		s.commitALU(cpu.Or(s.valA, s.valB))
	case isa.NOT:
		s.commitALU(cpu.Not(s.valA))
	case isa.AND:
		s.commitALU(cpu.And(s.valA, s.valB))
	case isa.ASL:
		s.commitALU(cpu.Asl(s.valA, s.valB))
	case isa.ASR:
		s.commitALU(cpu.Asr(s.valA, s.valB))
	case isa.LSL:
		s.commitALU(cpu.Lsl(s.valA, s.valB))
	case isa.LSR:
		s.commitALU(cpu.Lsr(s.valA, s.valB))
	case isa.PASSA:
		s.commitALU(cpu.Copy(s.valA))
	case isa.LCH:
		s.commitALU(cpu.Result{Value: cpu.LoadConstHigh(s.valC, d.Const16)})
	case isa.LCL:
		s.commitALU(cpu.Result{Value: cpu.LoadConstLow(s.valC, d.Const16)})
	case isa.LOAD:
		addr := uint32(isa.Mask16(s.valA))
		s.memData = s.Mem.Read(addr)
		s.writeEnable = true
	case isa.STORE:
		addr := uint32(isa.Mask16(s.valC))
		s.Mem.Write(addr, s.valA)
	case isa.JAL:
		s.CPU.JAL(d.Address24)
	case isa.JR:
		s.CPU.JR(s.valC)
	case isa.BEQ:
		s.CPU.BEQ(s.valA, s.valB, d.BranchOffset)
	case isa.BNE:
		s.CPU.BNE(s.valA, s.valB, d.BranchOffset)
	case isa.J:
		s.CPU.J(d.Address24)
	case isa.SLT:
		s.commitALU(cpu.Slt(s.valA, s.valB))
	case isa.MUL:
		s.commitALU(cpu.Mul(s.valA, s.valB))
	case isa.DIV:
		res, byZero := cpu.Div(s.valA, s.valB)
		if byZero {
			fmt.Fprintln(s.Out, "WARNING: division by zero, returning 0")
		}
		s.commitALU(res)
	case isa.MOD:
		res, byZero := cpu.Mod(s.valA, s.valB)
		if byZero {
			fmt.Fprintln(s.Out, "WARNING: modulo by zero, returning 0")
		}
		s.commitALU(res)
	case isa.NEG:
		s.commitALU(cpu.Neg(s.valA))
	case isa.INC:
		s.commitALU(cpu.Inc(s.valA))
	case isa.DEC:
		s.commitALU(cpu.Dec(s.valA))
	case isa.NOP:
		// No operation.
	case isa.HALT:
		s.isHalt = true
	default:
		s.haltReason = fmt.Sprintf("invalid opcode 0x%02x at PC=%d (IR=0x%08x)", uint8(d.Op), s.CPU.GetPC()-1, d.Raw)
		s.Halted = true
	}
}

// commitALU records result.Value for WB and updates the flag quartet
// immediately, matching the architecture's EX_MEM-not-WB flag timing.
func (s *Scheduler) commitALU(result cpu.Result) {
	s.aluResult = result.Value
	s.writeEnable = true
	if isa.AffectsFlags(s.decoded.Op) {
		s.CPU.SetFlagsAll(result.Flags)
	}
}

// logStage prints per-cycle register/PC/flag changes when Verbose is
// set, mirroring the reference simulator's cycle-by-cycle trace.
func (s *Scheduler) logStage(stage Stage) {
	if !s.Verbose {
		return
	}
	diff := s.CPU.Diff(s.prev)
	fmt.Fprintf(s.Out, "cycle %d instr %d [%s]: %s\n", s.Cycles+1, s.Instrs+1, stage, diff.String())
}

func (s *Scheduler) stageWB() {
	if s.writeEnable && s.decoded.Rc != 0 {
		if s.decoded.Op == isa.LOAD {
			s.CPU.Write(s.decoded.Rc, s.memData)
		} else {
			s.CPU.Write(s.decoded.Rc, s.aluResult)
		}
	}
	if s.isHalt {
		s.Halted = true
	}
}
