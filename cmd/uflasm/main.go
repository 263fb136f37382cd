package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uflarisc/ufla-risc/internal/asm"
)

func main() {
	var verbose bool
	var dumpSymbols bool

	rootCmd := &cobra.Command{
		Use:   "uflasm <input.asm> <output.bin>",
		Short: "UFLA-RISC assembler — two-pass assembly to machine-code listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outputPath := args[0], args[1]

			src, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer src.Close()

			result, err := asm.Assemble(src)
			if err != nil {
				return err
			}

			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			if err := asm.WriteListing(out, result.Words, result.Addresses); err != nil {
				return fmt.Errorf("write listing: %w", err)
			}

			if verbose {
				fmt.Printf("assembled %d instructions, %d labels -> %s\n",
					len(result.Words), result.Symtab.Len(), outputPath)
			}

			if dumpSymbols {
				for _, sym := range result.Symtab.Sorted() {
					fmt.Printf("  %-24s 0x%04X\n", sym.Name, sym.Address)
				}
			}

			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print assembly summary")
	rootCmd.Flags().BoolVar(&dumpSymbols, "symbols", false, "dump the resolved symbol table")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
