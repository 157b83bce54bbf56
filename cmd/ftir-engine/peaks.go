// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ftir-engine/internal/peaks"
	"github.com/pdiddy/ftir-engine/internal/spectrum"
)

var peaksCmd = &cobra.Command{
	Use:   "peaks <file>",
	Short: "Print the ranked peak table for one FTIR CSV file",
	Long: `Peaks processes a single file and prints its ranked peak table:
wavenumber, prominence, and transmittance per peak, most prominent first.
With --csv the table is written in its exportable delimited form, which
round-trips exactly through reparsing.`,
	Args: cobra.ExactArgs(1),
	RunE: runPeaks,
}

func init() {
	peakFlags(peaksCmd)
	peaksCmd.Flags().Bool("csv", false, "write the table as CSV instead of fixed-width text")

	rootCmd.AddCommand(peaksCmd)
}

func runPeaks(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	spec, err := spectrum.Process(filepath.Base(args[0]), f, processingConfig(cmd))
	if err != nil {
		return err
	}

	for _, de := range spec.DomainErrors() {
		fmt.Fprintf(os.Stderr, "warning %v\n", de)
	}

	table := peaks.Extract(spec, peakConfig(cmd))

	asCSV, _ := cmd.Flags().GetBool("csv")
	if asCSV {
		return peaks.WriteTable(os.Stdout, table)
	}
	fmt.Print(peaks.FormatTable(table))
	return nil
}
