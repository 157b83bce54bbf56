// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interpret requests structured chemical interpretations of peak
// tables from an external inference service and decodes the replies.
//
// A reply that decodes against the expected schema becomes a Structured
// result; a reply that does not is downgraded to an Unparsed result
// carrying the literal response body. Only transport-level failures are
// errors.
package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// Backend abstracts the inference service so tests can supply a mock.
// Complete submits one prompt and returns the raw reply text; Probe makes
// a minimal request to verify authentication and availability.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Probe(ctx context.Context) error
}

// ErrUnavailable is returned when analysis is requested before a
// successful connectivity probe.
var ErrUnavailable = errors.New("interpretation service unavailable")

// ErrInFlight is returned when a request is already outstanding for the
// same target; at most one interpretation per target may be in flight.
var ErrInFlight = errors.New("interpretation already in progress")

// Analyzer coordinates interpretation requests against a backend. It keeps
// a per-target state machine (idle → requesting → structured / unparsed /
// failed) and refuses concurrent requests for the same target. Peak tables
// and spectra are never mutated.
type Analyzer struct {
	backend Backend

	mu        sync.Mutex
	available bool
	states    map[string]types.AnalysisState
}

// NewAnalyzer returns an Analyzer over the given backend. The service is
// considered unavailable until CheckService succeeds.
func NewAnalyzer(backend Backend) *Analyzer {
	return &Analyzer{
		backend: backend,
		states:  make(map[string]types.AnalysisState),
	}
}

// CheckService runs the connectivity probe once and records the outcome.
// Analysis requests are gated on a successful probe.
func (a *Analyzer) CheckService(ctx context.Context) error {
	err := a.backend.Probe(ctx)

	a.mu.Lock()
	a.available = err == nil
	a.mu.Unlock()

	if err != nil {
		return &types.ServiceError{Target: "probe", Err: err}
	}
	return nil
}

// Available reports whether the last probe succeeded.
func (a *Analyzer) Available() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.available
}

// State returns the current state for a target, StateIdle if never seen.
func (a *Analyzer) State(target string) types.AnalysisState {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.states[target]; ok {
		return s
	}
	return types.StateIdle
}

// AnalyzeSample requests a single-sample interpretation of one peak table.
// snr is the measured signal-to-noise estimate for the source spectrum;
// pass NaN when unknown. The returned result is Structured or Unparsed; an
// error means the call itself failed and the target is in StateFailed.
func (a *Analyzer) AnalyzeSample(ctx context.Context, sample string, table types.PeakTable, snr float64) (types.InterpretationResult, error) {
	prompt, err := renderSinglePrompt(sample, table, snr)
	if err != nil {
		return types.InterpretationResult{}, err
	}
	return a.request(ctx, sample, prompt, decodeSingle)
}

// AnalyzeCombined requests a comparison across two or more labelled peak
// tables. The target identifier is the sorted concatenation of sample
// names, so repeated comparisons of the same set share one state.
func (a *Analyzer) AnalyzeCombined(ctx context.Context, samples []types.LabelledTable) (types.InterpretationResult, error) {
	if len(samples) < 2 {
		return types.InterpretationResult{}, fmt.Errorf("combined analysis needs at least 2 samples, got %d", len(samples))
	}

	prompt, err := renderCombinedPrompt(samples)
	if err != nil {
		return types.InterpretationResult{}, err
	}
	return a.request(ctx, combinedTarget(samples), prompt, decodeCombined)
}

// decoder attempts a strict-schema decode of a reply body.
type decoder func(raw string) (types.InterpretationResult, bool)

// request runs one prompt/response exchange for a target: reserve the
// target, make the single outbound call, then fold the reply into a
// Structured or Unparsed result. No retry, no caching.
func (a *Analyzer) request(ctx context.Context, target, prompt string, decode decoder) (types.InterpretationResult, error) {
	if err := a.begin(target); err != nil {
		return types.InterpretationResult{}, &types.ServiceError{Target: target, Err: err}
	}

	raw, err := a.backend.Complete(ctx, prompt)
	if err != nil {
		a.finish(target, types.StateFailed)
		return types.InterpretationResult{}, &types.ServiceError{Target: target, Err: err}
	}

	if result, ok := decode(raw); ok {
		a.finish(target, types.StateStructured)
		return result, nil
	}

	a.finish(target, types.StateUnparsed)
	return types.InterpretationResult{Kind: types.ResultUnparsed, Raw: raw}, nil
}

// begin transitions a target to StateRequesting, refusing when the service
// is unavailable or a request for the target is already outstanding.
func (a *Analyzer) begin(target string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.available {
		return ErrUnavailable
	}
	if a.states[target] == types.StateRequesting {
		return ErrInFlight
	}
	a.states[target] = types.StateRequesting
	return nil
}

func (a *Analyzer) finish(target string, s types.AnalysisState) {
	a.mu.Lock()
	a.states[target] = s
	a.mu.Unlock()
}

func combinedTarget(samples []types.LabelledTable) string {
	names := make([]string, len(samples))
	for i, lt := range samples {
		names[i] = lt.Sample
	}
	// Order-insensitive target identity.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return strings.Join(names, "+")
}

// decodeSingle attempts a strict decode of a single-sample reply. Unknown
// keys, trailing content, or out-of-range values all reject the payload.
func decodeSingle(raw string) (types.InterpretationResult, bool) {
	var payload types.SingleAnalysis
	if !strictDecode(raw, &payload) {
		return types.InterpretationResult{}, false
	}
	for _, g := range payload.FunctionalGroups {
		if g.Confidence < 0 || g.Confidence > 1 {
			return types.InterpretationResult{}, false
		}
	}
	for _, m := range payload.MaterialComposition {
		if m.Probability < 0 {
			return types.InterpretationResult{}, false
		}
	}
	return types.InterpretationResult{Kind: types.ResultStructured, Single: &payload}, true
}

// decodeCombined attempts a strict decode of a comparison reply.
func decodeCombined(raw string) (types.InterpretationResult, bool) {
	var payload types.CombinedAnalysis
	if !strictDecode(raw, &payload) {
		return types.InterpretationResult{}, false
	}
	for _, g := range payload.CommonFunctionalGroups {
		if g.Frequency < 0 || g.Frequency > 1 {
			return types.InterpretationResult{}, false
		}
	}
	return types.InterpretationResult{Kind: types.ResultStructured, Combined: &payload}, true
}

// strictDecode unmarshals raw into v, rejecting unknown fields and any
// content after the JSON value.
func strictDecode(raw string, v any) bool {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return false
	}
	// Anything beyond the first value means the reply was not pure JSON.
	if _, err := dec.Token(); err != io.EOF {
		return false
	}
	return true
}
