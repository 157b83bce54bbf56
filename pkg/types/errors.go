// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ValidationError reports malformed input: a raw table whose shape does not
// match the two-column wavenumber/transmittance contract. Fatal to the one
// file, never to sibling files in a batch.
type ValidationError struct {
	// Name identifies the offending file or sample.
	Name string

	// Line is the 1-based input line, or 0 when the problem is file-wide.
	Line int

	// Reason is a human-readable cause.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Name, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// DomainError reports a row whose transmittance is not strictly positive,
// so its absorbance is non-finite. Reported per record; processing of the
// remaining rows continues.
type DomainError struct {
	Name          string
	Row           int
	Wavenumber    float64
	Transmittance float64
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s: row %d (%.1f cm⁻¹): transmittance %g yields non-finite absorbance",
		e.Name, e.Row, e.Wavenumber, e.Transmittance)
}

// ServiceError reports that the interpretation service could not be used:
// the connectivity probe failed or the request itself errored. Terminal for
// the attempt and distinct from an unparsed (but successful) response.
type ServiceError struct {
	// Target identifies the sample or sample set being analyzed.
	Target string

	// Err is the underlying cause.
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("interpretation of %s failed: %v", e.Target, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
