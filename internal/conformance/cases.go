package conformance

import (
	"fmt"

	"github.com/uflarisc/ufla-risc/internal/sim"
)

// requireReg checks that register idx holds want after the run.
func requireReg(idx uint8, want uint32) func(*sim.Scheduler) error {
	return func(s *sim.Scheduler) error {
		if got := s.CPU.Read(idx); got != want {
			return fmt.Errorf("reg[%d] = %d; want %d", idx, got, want)
		}
		return nil
	}
}

// requireCycles checks the total cycle count.
func requireCycles(want int) func(*sim.Scheduler) error {
	return func(s *sim.Scheduler) error {
		if s.Cycles != want {
			return fmt.Errorf("cycles = %d; want %d", s.Cycles, want)
		}
		return nil
	}
}

func all(checks ...func(*sim.Scheduler) error) func(*sim.Scheduler) error {
	return func(s *sim.Scheduler) error {
		for _, c := range checks {
			if err := c(s); err != nil {
				return err
			}
		}
		return nil
	}
}

// DefaultCases returns the six worked scenarios from the architecture
// manual as a ready-to-run conformance battery.
func DefaultCases() []Case {
	return []Case{
		{
			Name:   "add-zero-then-halt",
			Source: "add r1, r0, r0\nhalt\n",
			Check:  all(requireReg(1, 0), requireCycles(8)),
		},
		{
			Name:   "load-const-high-low",
			Source: "lch r2, 0xDEAD\nlcl r2, 0xBEEF\nhalt\n",
			Check:  all(requireReg(2, 0xDEADBEEF), requireCycles(12)),
		},
		{
			Name:   "subtract",
			Source: "lcl r1, 5\nlcl r2, 3\nsub r3, r1, r2\nhalt\n",
			Check:  requireReg(3, 2),
		},
		{
			Name:   "branch-taken",
			Source: "lcl r1, 1\nlcl r2, 2\nbeq r1, r2, 0x08\nbne r1, r2, 0x20\naddress 0x20\nhalt\n",
			Check: func(s *sim.Scheduler) error {
				if s.CPU.GetPC() != 0x21 {
					return fmt.Errorf("final PC = 0x%X; want 0x21", s.CPU.GetPC())
				}
				return nil
			},
		},
		{
			Name:   "div-by-zero-recovers",
			Source: "lcl r1, 10\nlcl r2, 0\ndiv r3, r1, r2\nhalt\n",
			Check: all(requireReg(3, 0), func(s *sim.Scheduler) error {
				if !s.CPU.Flags.Zero {
					return fmt.Errorf("zero flag not set after divide-by-zero recovery")
				}
				return nil
			}),
		},
		{
			Name:   "increment-loop",
			Source: "start: lcl r1, 0\nL: inc r1, r1\nlcl r2, 5\nbne r1, r2, 0x01\nhalt\n",
			Check:  requireReg(1, 5),
		},
	}
}
