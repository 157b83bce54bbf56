// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ftir-engine CLI.
// Each pipeline stage is a subcommand: process parses spectra and detects
// peaks, analyze requests a structured chemical interpretation, status
// probes the inference service.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ftir-engine/internal/secrets"
	"github.com/pdiddy/ftir-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the named secret if loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the ftir-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "ftir-engine",
	Short: "FTIR spectral processing and interpretation",
	Long: `ftir-engine ingests two-column FTIR CSV files (wavenumber, percent
transmittance), derives absorbance, detects and ranks significant
absorption peaks, and optionally requests a structured chemical
interpretation of the peaks from an inference service.

Each stage is a subcommand: process, peaks, analyze, and status.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ftir-engine.yaml or ~/.config/ftir-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ftir-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ftir-engine"))
		}
	}

	viper.SetEnvPrefix("FTIR_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// processingConfig resolves the processing stage settings.
func processingConfig(cmd *cobra.Command) types.ProcessingConfig {
	cfg := types.ProcessingConfig{AllowHeader: true}
	if viper.IsSet("processing.allow_header") {
		cfg.AllowHeader = viper.GetBool("processing.allow_header")
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		strict, _ := cmd.Flags().GetBool("strict")
		cfg.AllowHeader = !strict
	}
	return cfg
}

// peakConfig resolves the detection parameters: defaults, then config
// file, then flags. The defaults are tunable configuration, not constants.
func peakConfig(cmd *cobra.Command) types.PeakDetectionConfig {
	cfg := types.DefaultPeakDetection()

	if viper.IsSet("peak_detection.min_prominence") {
		cfg.MinProminence = viper.GetFloat64("peak_detection.min_prominence")
	}
	if viper.IsSet("peak_detection.min_width") {
		cfg.MinWidth = viper.GetFloat64("peak_detection.min_width")
	}
	if viper.IsSet("peak_detection.min_distance") {
		cfg.MinDistance = viper.GetInt("peak_detection.min_distance")
	}
	if viper.IsSet("peak_detection.max_peaks") {
		cfg.MaxPeaks = viper.GetInt("peak_detection.max_peaks")
	}

	flags := cmd.Flags()
	if f := flags.Lookup("prominence"); f != nil && f.Changed {
		cfg.MinProminence, _ = flags.GetFloat64("prominence")
	}
	if f := flags.Lookup("width"); f != nil && f.Changed {
		cfg.MinWidth, _ = flags.GetFloat64("width")
	}
	if f := flags.Lookup("distance"); f != nil && f.Changed {
		cfg.MinDistance, _ = flags.GetInt("distance")
	}
	if f := flags.Lookup("max-peaks"); f != nil && f.Changed {
		cfg.MaxPeaks, _ = flags.GetInt("max-peaks")
	}
	return cfg.Normalize()
}

// interpretationConfig resolves the interpretation stage settings. The API
// key comes from .secrets/groq-api-key, the environment, or the config
// file; it is never embedded in code.
func interpretationConfig(cmd *cobra.Command) types.InterpretationConfig {
	cfg := types.InterpretationConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("interpretation.timeout"),
			UserAgent: "ftir-engine/" + version,
		},
		Model:       viper.GetString("interpretation.model"),
		Temperature: viper.GetFloat64("interpretation.temperature"),
		APIKey:      secretDefault(secrets.GroqAPIKey, viper.GetString("interpretation.api_key")),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if f := cmd.Flags().Lookup("model"); f != nil && f.Changed {
		cfg.Model, _ = cmd.Flags().GetString("model")
	}
	return cfg
}

// peakFlags registers the shared detection parameter flags.
func peakFlags(cmd *cobra.Command) {
	d := types.DefaultPeakDetection()
	cmd.Flags().Float64("prominence", d.MinProminence, "minimum peak prominence on the absorbance scale")
	cmd.Flags().Float64("width", d.MinWidth, "minimum peak width in samples at half-prominence")
	cmd.Flags().Int("distance", d.MinDistance, "minimum index separation between accepted peaks")
	cmd.Flags().Int("max-peaks", d.MaxPeaks, "maximum number of peaks returned")
	cmd.Flags().Bool("strict", false, "reject a non-numeric first row instead of skipping it as a header")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
