// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package spectrum

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// SignalToNoise estimates a signal-to-noise figure for a spectrum as the
// distance of the strongest absorbance above the mean, in standard
// deviations, over the finite samples only. It is a coarse anchor for the
// quality metrics reported by the interpretation service, not a calibrated
// measurement. Returns NaN when fewer than two finite samples exist or the
// series is constant.
func SignalToNoise(s *types.Spectrum) float64 {
	finite := make([]float64, 0, s.Len())
	for _, smp := range s.Samples {
		if smp.Finite() {
			finite = append(finite, smp.Absorbance)
		}
	}
	if len(finite) < 2 {
		return math.NaN()
	}

	mean, std := stat.MeanStdDev(finite, nil)
	if std == 0 {
		return math.NaN()
	}
	return (floats.Max(finite) - mean) / std
}
