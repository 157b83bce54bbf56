// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ftir-engine/internal/httputil"
	"github.com/pdiddy/ftir-engine/internal/interpret"
	"github.com/pdiddy/ftir-engine/internal/session"
	"github.com/pdiddy/ftir-engine/internal/spectrum"
	"github.com/pdiddy/ftir-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Request a structured chemical interpretation of detected peaks",
	Long: `Analyze processes the given files, then submits the detected peaks to
the inference service for interpretation. One file yields a single-sample
analysis (functional groups, material composition, quality metrics);
multiple files with --combined yield a cross-sample comparison.

The service is probed once before any request. A reply that does not match
the expected schema is printed verbatim rather than discarded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	peakFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("combined", false, "compare all files in one request instead of analyzing the first")
	analyzeCmd.Flags().String("model", "", "inference model identifier")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	combined, _ := cmd.Flags().GetBool("combined")
	if combined && len(args) < 2 {
		return fmt.Errorf("--combined requires at least 2 files")
	}
	if !combined && len(args) > 1 {
		return fmt.Errorf("multiple files require --combined (or analyze them one at a time)")
	}

	store := session.New()
	summary := processInto(store, args, processingConfig(cmd), peakConfig(cmd), os.Stderr)
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed processing", summary.Failed)
	}

	icfg := interpretationConfig(cmd)
	backend := &interpret.GroqBackend{
		Config: icfg,
		Client: httputil.NewClient(icfg.HTTPConfig),
	}
	analyzer := interpret.NewAnalyzer(backend)

	ctx := context.Background()
	if err := analyzer.CheckService(ctx); err != nil {
		return err
	}

	var result types.InterpretationResult
	var err error
	if combined {
		result, err = analyzer.AnalyzeCombined(ctx, store.Tables())
	} else {
		entry, _ := store.Get(store.Names()[0])
		snr := spectrum.SignalToNoise(entry.Spectrum)
		result, err = analyzer.AnalyzeSample(ctx, entry.Name, entry.Peaks, snr)
	}
	if err != nil {
		return err
	}

	return printResult(result)
}

// printResult renders a structured payload as yaml; an unparsed reply is
// printed literally so nothing the service said is lost.
func printResult(result types.InterpretationResult) error {
	if !result.Structured() {
		fmt.Fprintln(os.Stderr, "response did not match the expected schema; raw reply follows")
		fmt.Println(result.Raw)
		return nil
	}

	var payload any
	if result.Single != nil {
		payload = result.Single
	} else {
		payload = result.Combined
	}
	data, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
