// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package peaks

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

func TestWriteParseRoundTrip(t *testing.T) {
	// Values chosen to stress the formatter: integers, long fractions,
	// and a prominence that has no short decimal representation.
	table := types.PeakTable{
		{Wavenumber: 2500, Prominence: math.Log10(100.0/60) - math.Log10(100.0/98), Transmittance: 60},
		{Wavenumber: 1712.34, Prominence: 0.1234567890123, Transmittance: 71.5},
		{Wavenumber: 1050, Prominence: 0.01, Transmittance: 88},
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, table); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	got, err := ParseTable(&buf)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(got) != len(table) {
		t.Fatalf("got %d rows, want %d", len(got), len(table))
	}
	for i := range table {
		if got[i].Wavenumber != table[i].Wavenumber ||
			got[i].Prominence != table[i].Prominence ||
			got[i].Transmittance != table[i].Transmittance {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], table[i])
		}
	}
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, nil); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	got, err := ParseTable(&buf)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}

func TestParseTableRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"wrong header", "A,B,C\n1,2,3\n"},
		{"wrong column count", "Wavenumber,Prominence\n1,2\n"},
		{"non-numeric row", "Wavenumber,Prominence,Transmittance\n1,x,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTable(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFormatTable(t *testing.T) {
	table := types.PeakTable{
		{Wavenumber: 2500, Prominence: 0.2130, Transmittance: 60},
		{Wavenumber: 1712, Prominence: 0.1001, Transmittance: 71.5},
	}
	out := FormatTable(table)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Wavenumber") || !strings.Contains(lines[0], "Prominence") {
		t.Errorf("missing header columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2500.00") {
		t.Errorf("rank 0 should be the most prominent peak: %q", lines[1])
	}
}
