package report

import (
	"time"

	"github.com/pressframe/pctl/pkg/engine"
)

// Export is the durable, interchange representation of one evaluation.
// The computed fields round-trip losslessly through JSON.
type Export struct {
	Event            string                     `json:"event" yaml:"event"`
	Timestamp        string                     `json:"timestamp" yaml:"timestamp"`
	Scores           map[string]engine.ScoreSet `json:"scores" yaml:"scores"`
	Averages         map[string]float64         `json:"averages" yaml:"averages"`
	PPIScore         float64                    `json:"ppi_score" yaml:"ppi_score"`
	OverallPressure  float64                    `json:"overall_pressure" yaml:"overall_pressure"`
	Verdict          string                     `json:"verdict" yaml:"verdict"`
	VerdictLevel     string                     `json:"verdict_level" yaml:"verdict_level"`
	DominantPhase    string                     `json:"dominant_phase" yaml:"dominant_phase"`
	Diagnostic       string                     `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	KeyObservations  []string                   `json:"key_observations" yaml:"key_observations"`
	HistoricalAnalog string                     `json:"historical_analog" yaml:"historical_analog"`
	Reasoning        map[string]string          `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// NewExport assembles the export form from an assessment and its summary.
func NewExport(a *engine.Assessment, s *engine.Summary, now time.Time) *Export {
	obs := a.KeyObservations
	if obs == nil {
		obs = []string{}
	}
	return &Export{
		Event:            a.Event,
		Timestamp:        now.UTC().Format(time.RFC3339),
		Scores:           a.Scores,
		Averages:         s.Averages,
		PPIScore:         s.PPI,
		OverallPressure:  s.Composite,
		Verdict:          s.Verdict,
		VerdictLevel:     s.Level,
		DominantPhase:    s.Phase,
		Diagnostic:       a.Diagnostic,
		KeyObservations:  obs,
		HistoricalAnalog: a.HistoricalAnalog,
		Reasoning:        a.Reasoning,
	}
}
