// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ftir-engine/internal/peaks"
	"github.com/pdiddy/ftir-engine/internal/session"
	"github.com/pdiddy/ftir-engine/internal/spectrum"
	"github.com/pdiddy/ftir-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process FTIR CSV files and detect absorption peaks",
	Long: `Process parses each two-column CSV (wavenumber, percent transmittance),
derives absorbance per row, and detects significant absorption peaks.
A failing file is reported and skipped; the remaining files continue
independently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	peakFlags(processCmd)
	processCmd.Flags().String("export", "", "directory to write peak tables as CSV")
	processCmd.Flags().String("format", "table", "output format: table or yaml")

	rootCmd.AddCommand(processCmd)
}

// batchSummary holds counts from a batch processing run.
type batchSummary struct {
	Processed int
	Failed    int
}

// HasFailures reports whether any files failed.
func (s batchSummary) HasFailures() bool { return s.Failed > 0 }

// processInto runs each file through the processing and detection stages,
// recording results (or error entries) in the session store. One file's
// failure never aborts its siblings.
func processInto(store *session.Store, files []string, pcfg types.ProcessingConfig, dcfg types.PeakDetectionConfig, w io.Writer) batchSummary {
	var summary batchSummary

	for _, path := range files {
		name := filepath.Base(path)

		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			store.Fail(name, err)
			summary.Failed++
			continue
		}

		spec, err := spectrum.Process(name, f, pcfg)
		f.Close()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			store.Fail(name, err)
			summary.Failed++
			continue
		}

		for _, de := range spec.DomainErrors() {
			fmt.Fprintf(w, "warning %v\n", de)
		}

		table := peaks.Extract(spec, dcfg)
		store.Put(name, spec, table)
		fmt.Fprintf(w, "processed %s (%d samples, %d peaks)\n", name, spec.Len(), len(table))
		summary.Processed++
	}

	return summary
}

func runProcess(cmd *cobra.Command, args []string) error {
	pcfg := processingConfig(cmd)
	dcfg := peakConfig(cmd)
	format, _ := cmd.Flags().GetString("format")
	exportDir, _ := cmd.Flags().GetString("export")

	store := session.New()
	summary := processInto(store, args, pcfg, dcfg, os.Stderr)

	for _, name := range store.Names() {
		entry, _ := store.Get(name)
		if entry.Failed() {
			// Error entries stay visible in the listing.
			fmt.Printf("\n%s: ERROR: %v\n", name, entry.Err)
			continue
		}
		if err := printEntry(entry, format); err != nil {
			return err
		}
	}

	if exportDir != "" {
		if err := exportTables(store, exportDir); err != nil {
			return err
		}
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed processing", summary.Failed)
	}
	return nil
}

func printEntry(entry session.Entry, format string) error {
	snr := spectrum.SignalToNoise(entry.Spectrum)

	if format == "yaml" {
		out := struct {
			Name          string          `yaml:"name"`
			Samples       int             `yaml:"samples"`
			SignalToNoise float64         `yaml:"signal_to_noise"`
			Peaks         types.PeakTable `yaml:"peaks"`
		}{entry.Name, entry.Spectrum.Len(), snr, entry.Peaks}
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", entry.Name, err)
		}
		fmt.Printf("---\n%s", data)
		return nil
	}

	fmt.Printf("\n%s (%d samples", entry.Name, entry.Spectrum.Len())
	if !math.IsNaN(snr) {
		fmt.Printf(", SNR estimate %.2f", snr)
	}
	fmt.Println(")")
	fmt.Print(peaks.FormatTable(entry.Peaks))
	return nil
}

// exportTables writes each successful entry's peak table to dir as CSV.
func exportTables(store *session.Store, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	for _, lt := range store.Tables() {
		base := strings.TrimSuffix(lt.Sample, filepath.Ext(lt.Sample))
		path := filepath.Join(dir, base+"-peaks.csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := peaks.WriteTable(f, lt.Table); err != nil {
			f.Close()
			return fmt.Errorf("exporting %s: %w", lt.Sample, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported %s\n", path)
	}
	return nil
}
