package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uflarisc/ufla-risc/internal/cpu"
	"github.com/uflarisc/ufla-risc/internal/mem"
	"github.com/uflarisc/ufla-risc/internal/sim"
)

func main() {
	var verbose bool
	var maxCycles int
	var dumpPath string

	rootCmd := &cobra.Command{
		Use:   "uflasim <input.bin>",
		Short: "UFLA-RISC simulator — cycle-accurate 4-stage pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			m := mem.New()
			loadResult, err := m.Load(f)
			if err != nil {
				return fmt.Errorf("load program: %w", err)
			}
			for _, w := range loadResult.Warnings {
				fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
			}

			s := sim.New(&cpu.State{}, m)
			s.Verbose = verbose
			s.Out = os.Stdout

			fmt.Printf("loaded %d instructions\n", loadResult.Loaded)
			s.Run(maxCycles)

			if dumpPath != "" {
				if err := sim.SaveSnapshot(dumpPath, s); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
				fmt.Printf("snapshot written to %s\n", dumpPath)
			}

			printSummary(s)
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every pipeline cycle")
	rootCmd.Flags().IntVar(&maxCycles, "max-cycles", 100000, "cycle budget before forced stop")
	rootCmd.Flags().StringVar(&dumpPath, "dump", "", "write a gob snapshot of the final machine state to this path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(s *sim.Scheduler) {
	fmt.Println("--- final state ---")
	for i := 1; i < cpu.NumRegisters; i++ {
		if v := s.CPU.Read(uint8(i)); v != 0 {
			fmt.Printf("  R%-2d = 0x%08X\n", i, v)
		}
	}
	fmt.Printf("  PC = 0x%04X\n", s.CPU.GetPC())
	fmt.Printf("  flags: N=%v Z=%v C=%v O=%v\n",
		s.CPU.Flags.Neg, s.CPU.Flags.Zero, s.CPU.Flags.Carry, s.CPU.Flags.Overflow)

	words := s.Mem.NonZero()
	limit := len(words)
	if limit > 20 {
		limit = 20
	}
	fmt.Printf("  memory: %d non-zero words (showing first %d)\n", len(words), limit)
	for _, w := range words[:limit] {
		fmt.Printf("    [0x%04X] = 0x%08X\n", w.Addr, w.Value)
	}

	fmt.Printf("cycles=%d instructions=%d cpi=%.2f\n", s.Cycles, s.Instrs, s.CPI())
	if reason := s.HaltReason(); reason != "" {
		fmt.Fprintf(os.Stderr, "halted abnormally: %s\n", reason)
	}
}
