// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package peaks

import (
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// synth builds a spectrum from a transmittance series, with wavenumbers
// descending from 4000 cm⁻¹ in 50 cm⁻¹ steps.
func synth(trans []float64) *types.Spectrum {
	samples := make([]types.Sample, len(trans))
	for i, tr := range trans {
		samples[i] = types.Sample{
			Wavenumber:    4000 - 50*float64(i),
			Transmittance: tr,
			Absorbance:    math.Log10(100 / tr),
		}
	}
	return &types.Spectrum{Name: "synthetic", Samples: samples}
}

// gaussianDip lowers a flat baseline by a Gaussian absorption band.
func gaussianDip(n int, baseline float64, center int, depth, sigma float64) []float64 {
	trans := make([]float64, n)
	for i := range trans {
		d := float64(i - center)
		trans[i] = baseline - depth*math.Exp(-d*d/(2*sigma*sigma))
	}
	return trans
}

func TestExtractSingleDip(t *testing.T) {
	// A clear absorption band at index 30: transmittance drops from a 98%
	// baseline to 60% at 2500 cm⁻¹.
	spec := synth(gaussianDip(60, 98, 30, 38, 3))

	table := Extract(spec, types.PeakDetectionConfig{})
	if len(table) != 1 {
		t.Fatalf("got %d peaks, want 1: %+v", len(table), table)
	}

	p := table[0]
	if p.Wavenumber != 2500 {
		t.Errorf("peak at %v cm⁻¹, want 2500", p.Wavenumber)
	}
	if p.Index != 30 {
		t.Errorf("peak index %d, want 30", p.Index)
	}
	if p.Transmittance != 60 {
		t.Errorf("peak transmittance %v, want the original 60", p.Transmittance)
	}
	// The ~40-point transmittance drop corresponds to roughly
	// log10(100/60) - log10(100/98) of prominence.
	if p.Prominence < 0.15 || p.Prominence > 0.25 {
		t.Errorf("prominence %v does not reflect the transmittance drop", p.Prominence)
	}
}

func TestExtractIdempotent(t *testing.T) {
	spec := synth(gaussianDip(60, 98, 30, 38, 3))
	a := Extract(spec, types.PeakDetectionConfig{})
	b := Extract(spec, types.PeakDetectionConfig{})
	if !reflect.DeepEqual(a, b) {
		t.Error("extracting twice from the same spectrum did not yield identical tables")
	}
}

// multiDip builds a baseline with triangle dips of the given depths at the
// given centers. Each dip spans five samples: depth*0.5, depth*0.75, depth,
// depth*0.75, depth*0.5 below baseline.
func multiDip(n int, baseline float64, centers []int, depths []float64) []float64 {
	trans := make([]float64, n)
	for i := range trans {
		trans[i] = baseline
	}
	shape := []float64{0.5, 0.75, 1, 0.75, 0.5}
	for k, c := range centers {
		for off, frac := range shape {
			trans[c+off-2] = baseline - depths[k]*frac
		}
	}
	return trans
}

func TestExtractRankingAndTruncation(t *testing.T) {
	// Twelve dips, 21 samples apart, strictly decreasing depth: only the
	// ten most prominent survive, in depth order.
	centers := make([]int, 12)
	depths := make([]float64, 12)
	for k := range centers {
		centers[k] = 30 + 21*k
		depths[k] = 38 - 2*float64(k)
	}
	spec := synth(multiDip(320, 98, centers, depths))

	table := Extract(spec, types.PeakDetectionConfig{})
	if len(table) != 10 {
		t.Fatalf("got %d peaks, want the top 10 of 12", len(table))
	}

	for i := 1; i < len(table); i++ {
		if table[i].Prominence > table[i-1].Prominence {
			t.Errorf("table not sorted by descending prominence at rank %d", i)
		}
	}
	for i, p := range table {
		if p.Index != centers[i] {
			t.Errorf("rank %d at index %d, want %d (deepest dips first)", i, p.Index, centers[i])
		}
	}
}

func TestExtractDistanceConstraint(t *testing.T) {
	// Two dips 10 samples apart violate the 20-sample separation; the
	// shallower one is discarded.
	spec := synth(multiDip(100, 98, []int{30, 40}, []float64{38, 30}))

	table := Extract(spec, types.PeakDetectionConfig{})
	if len(table) != 1 {
		t.Fatalf("got %d peaks, want 1 after distance filtering: %+v", len(table), table)
	}
	if table[0].Index != 30 {
		t.Errorf("kept index %d, want the more prominent dip at 30", table[0].Index)
	}

	// Moved 21 samples apart, both survive and are at least MinDistance apart.
	spec = synth(multiDip(100, 98, []int{30, 51}, []float64{38, 30}))
	table = Extract(spec, types.PeakDetectionConfig{})
	if len(table) != 2 {
		t.Fatalf("got %d peaks, want 2: %+v", len(table), table)
	}
	d := table[0].Index - table[1].Index
	if d < 0 {
		d = -d
	}
	if d < 20 {
		t.Errorf("accepted peaks %d apart, want >= 20", d)
	}
}

func TestExtractEqualProminenceTieBreak(t *testing.T) {
	// Identical dips produce bit-identical prominences; the earlier index
	// ranks first.
	spec := synth(multiDip(100, 98, []int{30, 69}, []float64{38, 38}))

	table := Extract(spec, types.PeakDetectionConfig{})
	if len(table) != 2 {
		t.Fatalf("got %d peaks, want 2: %+v", len(table), table)
	}
	if table[0].Prominence != table[1].Prominence {
		t.Fatalf("expected equal prominences, got %v and %v", table[0].Prominence, table[1].Prominence)
	}
	if table[0].Index != 30 || table[1].Index != 69 {
		t.Errorf("tie not broken by ascending index: %+v", table)
	}
}

func TestExtractWidthConstraint(t *testing.T) {
	// A one-sample spike is prominent but too narrow at half-prominence.
	trans := make([]float64, 60)
	for i := range trans {
		trans[i] = 98
	}
	trans[30] = 60

	table := Extract(synth(trans), types.PeakDetectionConfig{})
	if len(table) != 0 {
		t.Errorf("narrow spike should be rejected by the width constraint, got %+v", table)
	}
}

func TestExtractProminenceThreshold(t *testing.T) {
	// A 0.5-point dip on a 98% baseline is below the 0.01 prominence floor.
	spec := synth(gaussianDip(60, 98, 30, 0.5, 3))
	table := Extract(spec, types.PeakDetectionConfig{})
	if len(table) != 0 {
		t.Errorf("shallow dip should be rejected, got %+v", table)
	}
}

func TestExtractNonFiniteRows(t *testing.T) {
	// Zero and negative transmittance rows produce non-finite absorbance.
	// They must not crash detection and must not hide the real band.
	trans := gaussianDip(60, 98, 30, 38, 3)
	trans[5] = 0
	trans[50] = -2

	table := Extract(synth(trans), types.PeakDetectionConfig{})
	if len(table) != 1 {
		t.Fatalf("got %d peaks, want 1: %+v", len(table), table)
	}
	if table[0].Index != 30 {
		t.Errorf("peak index %d, want 30", table[0].Index)
	}
}

func TestExtractShortSpectrum(t *testing.T) {
	tests := []struct {
		name  string
		trans []float64
	}{
		{"empty", nil},
		{"two samples", []float64{98, 60}},
		{"narrow vee", []float64{98, 60, 98}},
		{"all non-finite", []float64{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if table := Extract(synth(tt.trans), types.PeakDetectionConfig{}); len(table) != 0 {
				t.Errorf("got %+v, want empty table", table)
			}
		})
	}
}

func TestExtractMaxPeaksOverride(t *testing.T) {
	centers := make([]int, 6)
	depths := make([]float64, 6)
	for k := range centers {
		centers[k] = 30 + 21*k
		depths[k] = 38 - 3*float64(k)
	}
	spec := synth(multiDip(200, 98, centers, depths))

	cfg := types.PeakDetectionConfig{MaxPeaks: 3}
	table := Extract(spec, cfg)
	if len(table) != 3 {
		t.Errorf("got %d peaks, want the configured maximum of 3", len(table))
	}
}
