// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ftir-engine pipeline:
// spectra, peak tables, interpretation schemas, stage configuration, and the
// error taxonomy.
package types

import "math"

// Sample is one row of an FTIR spectrum: the measured wavenumber and percent
// transmittance, plus the derived absorbance log10(100/transmittance).
type Sample struct {
	// Wavenumber is the spectral position in cm⁻¹.
	Wavenumber float64 `json:"wavenumber" yaml:"wavenumber"`

	// Transmittance is the measured percent transmittance at this wavenumber.
	Transmittance float64 `json:"transmittance" yaml:"transmittance"`

	// Absorbance is log10(100/transmittance). Non-finite when the measured
	// transmittance is zero (+Inf) or negative (NaN).
	Absorbance float64 `json:"absorbance" yaml:"absorbance"`
}

// Finite reports whether the derived absorbance is a usable number.
func (s Sample) Finite() bool {
	return !math.IsNaN(s.Absorbance) && !math.IsInf(s.Absorbance, 0)
}

// Spectrum is a processed FTIR measurement: an ordered sequence of samples
// in file order. A Spectrum is immutable after construction; reprocessing
// the same input produces a new value, never an in-place update.
type Spectrum struct {
	// Name identifies the source file or sample.
	Name string `json:"name" yaml:"name"`

	// Samples holds the rows in input order.
	Samples []Sample `json:"samples" yaml:"samples"`
}

// Len returns the number of samples.
func (s *Spectrum) Len() int { return len(s.Samples) }

// Absorbance returns the absorbance series in sample order.
func (s *Spectrum) Absorbance() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Absorbance
	}
	return out
}

// DomainErrors returns one DomainError per sample whose transmittance is
// not strictly positive. Rows are reported, not dropped: the sample stays
// in the spectrum with its non-finite absorbance.
func (s *Spectrum) DomainErrors() []DomainError {
	var errs []DomainError
	for i, smp := range s.Samples {
		if !smp.Finite() {
			errs = append(errs, DomainError{
				Name:          s.Name,
				Row:           i,
				Wavenumber:    smp.Wavenumber,
				Transmittance: smp.Transmittance,
			})
		}
	}
	return errs
}
