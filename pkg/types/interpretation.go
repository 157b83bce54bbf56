// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FunctionalGroup is one chemical group assignment for a detected peak.
type FunctionalGroup struct {
	Wavenumber float64 `json:"wavenumber" yaml:"wavenumber"`
	Group      string  `json:"group" yaml:"group"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// MaterialEstimate is one candidate material with its estimated probability.
type MaterialEstimate struct {
	Material    string  `json:"material" yaml:"material"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// QualityMetrics describes measurement quality: a numeric signal-to-noise
// figure and qualitative labels for baseline stability and peak resolution.
type QualityMetrics struct {
	SignalToNoise     float64 `json:"signal_to_noise" yaml:"signal_to_noise"`
	BaselineStability string  `json:"baseline_stability" yaml:"baseline_stability"`
	PeakResolution    string  `json:"peak_resolution" yaml:"peak_resolution"`
}

// SingleAnalysis is the structured interpretation of one sample's peaks.
type SingleAnalysis struct {
	FunctionalGroups    []FunctionalGroup  `json:"functional_groups" yaml:"functional_groups"`
	MaterialComposition []MaterialEstimate `json:"material_composition" yaml:"material_composition"`
	QualityMetrics      QualityMetrics     `json:"quality_metrics" yaml:"quality_metrics"`
	KeyFindings         []string           `json:"key_findings" yaml:"key_findings"`
	Recommendations     []string           `json:"recommendations" yaml:"recommendations"`
}

// CommonGroup is a functional group attributed to several samples, with the
// fraction of samples it occurs in.
type CommonGroup struct {
	Group     string  `json:"group" yaml:"group"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

// ComparisonMetrics is the quality summary reported for the best sample in
// a combined analysis. The combined schema omits baseline stability.
type ComparisonMetrics struct {
	SignalToNoise  float64 `json:"signal_to_noise" yaml:"signal_to_noise"`
	PeakResolution string  `json:"peak_resolution" yaml:"peak_resolution"`
}

// QualityComparison names the best-quality sample and its metrics.
type QualityComparison struct {
	BestQualitySample string            `json:"best_quality_sample" yaml:"best_quality_sample"`
	QualityMetrics    ComparisonMetrics `json:"quality_metrics" yaml:"quality_metrics"`
}

// CombinedAnalysis is the structured interpretation of a multi-sample
// comparison.
type CombinedAnalysis struct {
	SampleSimilarities      []string          `json:"sample_similarities" yaml:"sample_similarities"`
	SampleDifferences       []string          `json:"sample_differences" yaml:"sample_differences"`
	CommonFunctionalGroups  []CommonGroup     `json:"common_functional_groups" yaml:"common_functional_groups"`
	SampleQualityComparison QualityComparison `json:"sample_quality_comparison" yaml:"sample_quality_comparison"`
	Recommendations         []string          `json:"recommendations" yaml:"recommendations"`
}

// ResultKind tags an InterpretationResult variant.
type ResultKind string

const (
	// ResultStructured means the service reply decoded against the schema.
	ResultStructured ResultKind = "structured"

	// ResultUnparsed means the call succeeded but the reply was not valid
	// structured data; the literal body is preserved.
	ResultUnparsed ResultKind = "unparsed"
)

// InterpretationResult is the outcome of one interpretation request.
// Exactly one of Single or Combined is set when Kind is ResultStructured;
// Raw holds the service's literal response body when Kind is ResultUnparsed.
// Both variants are first-class: callers must never discard Raw.
type InterpretationResult struct {
	Kind     ResultKind        `json:"kind" yaml:"kind"`
	Single   *SingleAnalysis   `json:"single,omitempty" yaml:"single,omitempty"`
	Combined *CombinedAnalysis `json:"combined,omitempty" yaml:"combined,omitempty"`
	Raw      string            `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Structured reports whether the result carries a decoded payload.
func (r InterpretationResult) Structured() bool { return r.Kind == ResultStructured }

// AnalysisState tracks one logical analysis target through its lifecycle.
type AnalysisState string

const (
	StateIdle       AnalysisState = "idle"
	StateRequesting AnalysisState = "requesting"
	StateStructured AnalysisState = "structured"
	StateUnparsed   AnalysisState = "unparsed"
	StateFailed     AnalysisState = "failed"
)
