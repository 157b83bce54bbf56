// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ftir-engine/internal/httputil"
	"github.com/pdiddy/ftir-engine/internal/interpret"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the inference service and report availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		icfg := interpretationConfig(cmd)
		backend := &interpret.GroqBackend{
			Config: icfg,
			Client: httputil.NewClient(icfg.HTTPConfig),
		}
		analyzer := interpret.NewAnalyzer(backend)

		if err := analyzer.CheckService(context.Background()); err != nil {
			return fmt.Errorf("inference service unavailable: %w", err)
		}
		fmt.Println("inference service available")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
