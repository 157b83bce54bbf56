// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PeakRecord is one significant absorption peak detected in a spectrum.
// Wavenumber and Transmittance are the original sample values at the
// detected index, not interpolated; Prominence is computed on the
// absorbance series.
type PeakRecord struct {
	// Wavenumber is the peak position in cm⁻¹.
	Wavenumber float64 `json:"wavenumber" yaml:"wavenumber"`

	// Prominence is the vertical drop from the peak to its surrounding
	// baseline on the absorbance scale.
	Prominence float64 `json:"prominence" yaml:"prominence"`

	// Transmittance is the measured percent transmittance at the peak.
	Transmittance float64 `json:"transmittance" yaml:"transmittance"`

	// Index is the sample index in the source spectrum.
	Index int `json:"index" yaml:"index"`
}

// PeakTable is an ordered list of peaks for one spectrum, sorted by
// descending prominence with ties broken by ascending source index.
// At most MaxPeaks entries; shorter when fewer peaks qualify, never padded.
type PeakTable []PeakRecord

// LabelledTable pairs a peak table with the sample identifier it was
// derived from, for combined (multi-sample) interpretation requests.
type LabelledTable struct {
	Sample string    `json:"sample" yaml:"sample"`
	Table  PeakTable `json:"table" yaml:"table"`
}
