// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package spectrum parses raw two-column FTIR tables and derives absorbance.
package spectrum

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// minSamples is the smallest spectrum worth processing: below this the
// detection window constraints can never be satisfied and the absorbance
// series carries no structure.
const minSamples = 3

// Process parses a raw two-column table (wavenumber, percent transmittance)
// and returns a new immutable Spectrum with absorbance derived per row.
// Column order is fixed; there is no header-name sniffing and no unit
// conversion. A record with other than two fields is a ValidationError.
//
// Rows with non-positive transmittance are kept with a non-finite
// absorbance (+Inf at zero, NaN below); callers read them back via
// Spectrum.DomainErrors. Process is a pure transform with no side effects.
func Process(name string, r io.Reader, cfg types.ProcessingConfig) (*types.Spectrum, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var samples []types.Sample
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &types.ValidationError{Name: name, Line: line + 1, Reason: err.Error()}
		}
		line++

		if len(record) != 2 {
			return nil, &types.ValidationError{
				Name:   name,
				Line:   line,
				Reason: fmt.Sprintf("expected 2 columns (wavenumber, transmittance), got %d", len(record)),
			}
		}

		wn, errW := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		tr, errT := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if errW != nil || errT != nil {
			// Instruments often emit one row of column labels.
			if cfg.AllowHeader && line == 1 {
				continue
			}
			return nil, &types.ValidationError{
				Name:   name,
				Line:   line,
				Reason: fmt.Sprintf("non-numeric record %q", strings.Join(record, ",")),
			}
		}

		samples = append(samples, types.Sample{
			Wavenumber:    wn,
			Transmittance: tr,
			Absorbance:    math.Log10(100 / tr),
		})
	}

	if len(samples) < minSamples {
		return nil, &types.ValidationError{
			Name:   name,
			Reason: fmt.Sprintf("too few rows: %d (need at least %d)", len(samples), minSamples),
		}
	}

	return &types.Spectrum{Name: name, Samples: samples}, nil
}
