// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package peaks detects and ranks significant absorption peaks in a
// processed spectrum, and exports the resulting table.
package peaks

import (
	"sort"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// candidate is a detected local maximum before constraint filtering.
type candidate struct {
	idx        int     // sample index in the source spectrum
	prominence float64 // vertical drop to the surrounding baseline
	width      float64 // width in samples at half-prominence
}

// Extract detects absorption peaks in the spectrum's absorbance series and
// returns them ranked by descending prominence, ties broken by ascending
// source index, truncated to cfg.MaxPeaks. Each record carries the original
// wavenumber and transmittance at the detected index.
//
// Peaks are local maxima of absorbance (strong absorption means low
// transmittance and high absorbance) that jointly satisfy the prominence,
// width, and distance constraints. Rows with non-finite absorbance split
// the series into independent finite segments; they can never be peaks or
// baseline points. A spectrum too short for any candidate yields an empty
// table, never an error.
func Extract(s *types.Spectrum, cfg types.PeakDetectionConfig) types.PeakTable {
	cfg = cfg.Normalize()
	y := s.Absorbance()

	var cands []candidate
	for _, seg := range finiteSegments(s) {
		cands = append(cands, segmentCandidates(y, seg.lo, seg.hi, cfg)...)
	}

	accepted := enforceDistance(cands, cfg.MinDistance)

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].prominence != accepted[j].prominence {
			return accepted[i].prominence > accepted[j].prominence
		}
		return accepted[i].idx < accepted[j].idx
	})

	if len(accepted) > cfg.MaxPeaks {
		accepted = accepted[:cfg.MaxPeaks]
	}

	table := make(types.PeakTable, 0, len(accepted))
	for _, c := range accepted {
		table = append(table, types.PeakRecord{
			Wavenumber:    s.Samples[c.idx].Wavenumber,
			Prominence:    c.prominence,
			Transmittance: s.Samples[c.idx].Transmittance,
			Index:         c.idx,
		})
	}
	return table
}

// segment is a maximal run [lo, hi] of finite samples.
type segment struct {
	lo, hi int
}

// finiteSegments splits the spectrum at non-finite absorbance values.
func finiteSegments(s *types.Spectrum) []segment {
	var segs []segment
	lo := -1
	for i, smp := range s.Samples {
		if smp.Finite() {
			if lo < 0 {
				lo = i
			}
			continue
		}
		if lo >= 0 {
			segs = append(segs, segment{lo: lo, hi: i - 1})
			lo = -1
		}
	}
	if lo >= 0 {
		segs = append(segs, segment{lo: lo, hi: len(s.Samples) - 1})
	}
	return segs
}

// segmentCandidates finds local maxima within y[lo..hi] that pass the
// prominence and width thresholds. Flat-topped peaks report their midpoint.
func segmentCandidates(y []float64, lo, hi int, cfg types.PeakDetectionConfig) []candidate {
	var cands []candidate

	i := lo + 1
	for i < hi {
		if y[i] <= y[i-1] {
			i++
			continue
		}
		// Rising edge at i; extend across any plateau.
		j := i
		for j < hi && y[j+1] == y[i] {
			j++
		}
		if j >= hi || y[j+1] >= y[i] {
			i = j + 1
			continue
		}
		p := (i + j) / 2

		prom, lb, rb := prominence(y, lo, hi, p)
		if prom >= cfg.MinProminence {
			if w := widthAt(y, lb, rb, p, prom); w >= cfg.MinWidth {
				cands = append(cands, candidate{idx: p, prominence: prom, width: w})
			}
		}
		i = j + 1
	}
	return cands
}

// prominence computes the vertical drop from the peak at p to its baseline
// within [lo, hi]: on each side, walk until a sample higher than the peak or
// the segment edge, tracking the lowest point; the prominence is the peak
// height above the higher of the two side minima. Returns the indices of
// the side minima as the contour bases for the width measurement.
func prominence(y []float64, lo, hi, p int) (prom float64, leftBase, rightBase int) {
	leftMin, leftBase := y[p], p
	for i := p - 1; i >= lo; i-- {
		if y[i] > y[p] {
			break
		}
		if y[i] < leftMin {
			leftMin, leftBase = y[i], i
		}
	}

	rightMin, rightBase := y[p], p
	for i := p + 1; i <= hi; i++ {
		if y[i] > y[p] {
			break
		}
		if y[i] < rightMin {
			rightMin, rightBase = y[i], i
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return y[p] - base, leftBase, rightBase
}

// widthAt measures the peak's horizontal extent in samples at
// half-prominence, interpolating linearly between the samples where the
// contour crosses the evaluation height.
func widthAt(y []float64, lb, rb, p int, prom float64) float64 {
	height := y[p] - prom/2

	left := float64(lb)
	for i := p; i > lb; i-- {
		if y[i-1] < height {
			left = float64(i-1) + (height-y[i-1])/(y[i]-y[i-1])
			break
		}
	}

	right := float64(rb)
	for i := p; i < rb; i++ {
		if y[i+1] < height {
			right = float64(i+1) - (height-y[i+1])/(y[i]-y[i+1])
			break
		}
	}

	return right - left
}

// enforceDistance drops candidates closer than minDistance samples to a
// higher-prominence candidate. Equal prominences keep the earlier index.
func enforceDistance(cands []candidate, minDistance int) []candidate {
	byPriority := make([]candidate, len(cands))
	copy(byPriority, cands)
	sort.SliceStable(byPriority, func(i, j int) bool {
		if byPriority[i].prominence != byPriority[j].prominence {
			return byPriority[i].prominence > byPriority[j].prominence
		}
		return byPriority[i].idx < byPriority[j].idx
	})

	var kept []candidate
	for _, c := range byPriority {
		ok := true
		for _, k := range kept {
			d := c.idx - k.idx
			if d < 0 {
				d = -d
			}
			if d < minDistance {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, c)
		}
	}
	return kept
}
