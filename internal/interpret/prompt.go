// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/pdiddy/ftir-engine/internal/peaks"
	"github.com/pdiddy/ftir-engine/pkg/types"
)

// singlePromptTmpl asks the service to interpret one sample's peak table.
// The JSON shape in the instruction is the schema the strict decoder
// expects back; the model must not reply with anything outside it.
var singlePromptTmpl = template.Must(template.New("single").Parse(`You are a spectroscopy expert. Analyze this FTIR data and provide results in the following JSON format:
{
    "functional_groups": [
        {"wavenumber": float, "group": string, "confidence": float}
    ],
    "material_composition": [
        {"material": string, "probability": float}
    ],
    "quality_metrics": {
        "signal_to_noise": float,
        "baseline_stability": string,
        "peak_resolution": string
    },
    "key_findings": [string],
    "recommendations": [string]
}

Confidence and probability values must be between 0.0 and 1.0. Respond with the JSON object only, no text outside it.

Sample: {{.Sample}}{{if .HasSNR}}
Measured signal-to-noise estimate: {{printf "%.2f" .SNR}}{{end}}

Peak Data (top {{.MaxPeaks}} peaks):
{{.PeakData}}
`))

// combinedPromptTmpl asks the service to compare several samples' peaks.
var combinedPromptTmpl = template.Must(template.New("combined").Parse(`Compare these FTIR samples and provide results in the following JSON format:
{
    "sample_similarities": [string],
    "sample_differences": [string],
    "common_functional_groups": [
        {"group": string, "frequency": float}
    ],
    "sample_quality_comparison": {
        "best_quality_sample": string,
        "quality_metrics": {
            "signal_to_noise": float,
            "peak_resolution": string
        }
    },
    "recommendations": [string]
}

Frequency values are the fraction of samples a group occurs in, between 0.0 and 1.0. Respond with the JSON object only, no text outside it.

Peak Data:
{{.PeakData}}
`))

// renderSinglePrompt builds the single-sample prompt. A NaN snr omits the
// measured estimate line.
func renderSinglePrompt(sample string, table types.PeakTable, snr float64) (string, error) {
	data := struct {
		Sample   string
		PeakData string
		MaxPeaks int
		SNR      float64
		HasSNR   bool
	}{
		Sample:   sample,
		PeakData: peaks.FormatTable(table),
		MaxPeaks: len(table),
		SNR:      snr,
		HasSNR:   !math.IsNaN(snr),
	}

	var buf bytes.Buffer
	if err := singlePromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering single-sample prompt: %w", err)
	}
	return buf.String(), nil
}

// renderCombinedPrompt builds the comparison prompt, concatenating each
// sample's table under its identifier.
func renderCombinedPrompt(samples []types.LabelledTable) (string, error) {
	var peakData strings.Builder
	for i, lt := range samples {
		if i > 0 {
			peakData.WriteString("\n")
		}
		fmt.Fprintf(&peakData, "Sample: %s\n%s", lt.Sample, peaks.FormatTable(lt.Table))
	}

	data := struct{ PeakData string }{PeakData: peakData.String()}

	var buf bytes.Buffer
	if err := combinedPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering combined prompt: %w", err)
	}
	return buf.String(), nil
}
