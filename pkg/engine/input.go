package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Diagnostic labels accepted on an assessment.
const (
	DiagnosticSolving  = "solving"
	DiagnosticAdapting = "adapting"
)

// ErrInvalidInput is returned when the top-level assessment payload is not a
// well-formed object. The engine assumes well-formed input past this boundary.
var ErrInvalidInput = errors.New("invalid assessment input")

// ScoreSet holds the raw axis scores for one model. Values are pointers so
// that an absent (null) axis is distinguishable from a score of 0 — absent
// axes are excluded from averages, never treated as zero.
type ScoreSet map[string]*float64

// Assessment is the scored input supplied by an upstream scorer.
// Scores are already computed; the engine only aggregates and classifies.
type Assessment struct {
	Event            string              `json:"event"`
	Scores           map[string]ScoreSet `json:"scores"`
	Diagnostic       string              `json:"diagnostic,omitempty"`
	Reasoning        map[string]string   `json:"reasoning,omitempty"`
	KeyObservations  []string            `json:"key_observations,omitempty"`
	HistoricalAnalog string              `json:"historical_analog,omitempty"`
}

// ParseAssessment decodes a raw JSON assessment payload.
// Malformed payloads fail here with ErrInvalidInput.
func ParseAssessment(b []byte) (*Assessment, error) {
	var a Assessment
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &a, nil
}

// ModelScores returns the score set for one model, which may be nil when the
// model is absent from the input.
func (a *Assessment) ModelScores(modelID string) ScoreSet {
	if a == nil || a.Scores == nil {
		return nil
	}
	return a.Scores[modelID]
}
