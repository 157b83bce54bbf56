package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ftir-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProcessingConfig holds settings for the spectrum processing stage.
type ProcessingConfig struct {
	// AllowHeader tolerates a single leading non-numeric record, as
	// produced by instruments that emit column labels.
	AllowHeader bool `json:"allow_header" yaml:"allow_header"`
}

// PeakDetectionConfig holds the peak detection constraints. The defaults
// mirror the parameters the pipeline was tuned with; they are configuration
// rather than constants because their validity for arbitrarily scaled input
// is unverified.
type PeakDetectionConfig struct {
	// MinProminence is the minimum vertical drop, on the absorbance scale,
	// from a peak to its surrounding baseline (default 0.01).
	MinProminence float64 `json:"min_prominence" yaml:"min_prominence"`

	// MinWidth is the minimum peak width in samples, measured at
	// half-prominence (default 2).
	MinWidth float64 `json:"min_width" yaml:"min_width"`

	// MinDistance is the minimum index separation between accepted peaks
	// (default 20). When two candidates are closer, the lower-prominence
	// one is discarded.
	MinDistance int `json:"min_distance" yaml:"min_distance"`

	// MaxPeaks bounds the returned table (default 10).
	MaxPeaks int `json:"max_peaks" yaml:"max_peaks"`
}

// DefaultPeakDetection returns the standard detection parameters.
func DefaultPeakDetection() PeakDetectionConfig {
	return PeakDetectionConfig{
		MinProminence: 0.01,
		MinWidth:      2,
		MinDistance:   20,
		MaxPeaks:      10,
	}
}

// Normalize fills zero-valued fields with the defaults.
func (c PeakDetectionConfig) Normalize() PeakDetectionConfig {
	d := DefaultPeakDetection()
	if c.MinProminence <= 0 {
		c.MinProminence = d.MinProminence
	}
	if c.MinWidth <= 0 {
		c.MinWidth = d.MinWidth
	}
	if c.MinDistance <= 0 {
		c.MinDistance = d.MinDistance
	}
	if c.MaxPeaks <= 0 {
		c.MaxPeaks = d.MaxPeaks
	}
	return c
}

// InterpretationConfig holds settings for the interpretation stage.
type InterpretationConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the inference model identifier (e.g. "mixtral-8x7b-32768").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the inference API. Sourced from
	// .secrets/, environment, or config file; never embedded in code.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature for analysis calls (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Processing     ProcessingConfig     `json:"processing" yaml:"processing"`
	PeakDetection  PeakDetectionConfig  `json:"peak_detection" yaml:"peak_detection"`
	Interpretation InterpretationConfig `json:"interpretation" yaml:"interpretation"`
}
