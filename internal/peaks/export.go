// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package peaks

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// exportHeader is the fixed column order of an exported peak table.
var exportHeader = []string{"Wavenumber", "Prominence", "Transmittance"}

// WriteTable exports a peak table as CSV in rank order. Values use the
// shortest representation that survives an exact round-trip through
// ParseTable.
func WriteTable(w io.Writer, table types.PeakTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range table {
		row := []string{
			strconv.FormatFloat(p.Wavenumber, 'g', -1, 64),
			strconv.FormatFloat(p.Prominence, 'g', -1, 64),
			strconv.FormatFloat(p.Transmittance, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseTable reads a table previously produced by WriteTable, recovering
// the records in export order. Source indices are not part of the export
// and come back as zero.
func ParseTable(r io.Reader) (types.PeakTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading peak table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty peak table")
	}
	if !equalHeader(records[0]) {
		return nil, fmt.Errorf("unexpected header %v", records[0])
	}

	table := make(types.PeakTable, 0, len(records)-1)
	for i, rec := range records[1:] {
		wn, err1 := strconv.ParseFloat(rec[0], 64)
		pr, err2 := strconv.ParseFloat(rec[1], 64)
		tr, err3 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("row %d: non-numeric value in %v", i+1, rec)
		}
		table = append(table, types.PeakRecord{Wavenumber: wn, Prominence: pr, Transmittance: tr})
	}
	return table, nil
}

func equalHeader(row []string) bool {
	if len(row) != len(exportHeader) {
		return false
	}
	for i, col := range exportHeader {
		if row[i] != col {
			return false
		}
	}
	return true
}

// FormatTable renders a fixed-width text table for terminal display and
// for embedding peak data in interpretation prompts.
func FormatTable(table types.PeakTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s  %12s  %12s  %14s\n", "Rank", "Wavenumber", "Prominence", "Transmittance")
	for i, p := range table {
		fmt.Fprintf(&b, "%-4d  %12.2f  %12.4f  %14.2f\n", i, p.Wavenumber, p.Prominence, p.Transmittance)
	}
	return b.String()
}
