package engine

import "math"

// Summary is the fully-derived result of one assessment evaluation.
// It is recomputed on every call and never persisted.
type Summary struct {
	Averages  map[string]float64 `json:"averages" yaml:"averages"`
	Composite float64            `json:"composite" yaml:"composite"`
	PPI       float64            `json:"ppi" yaml:"ppi"`
	Phase     string             `json:"phase,omitempty" yaml:"phase,omitempty"`
	Verdict   string             `json:"verdict" yaml:"verdict"`
	Level     string             `json:"level" yaml:"level"`
}

// Aggregate computes per-model averages, the weighted composite, the PPI, the
// dominant phase, and the verdict for one assessment.
//
// A model with no present axis scores averages 0 and still participates in
// the weighted sum. Models in the input but not in the registry are ignored.
// Values outside [0,10] are propagated as-is.
func Aggregate(a *Assessment, w Weights) *Summary {
	averages := make(map[string]float64, len(models))
	for _, m := range models {
		averages[m.ID] = modelAverage(a.ModelScores(m.ID))
	}

	var composite float64
	for _, m := range models {
		composite += averages[m.ID] * w[m.ID]
	}
	composite = round2(composite)

	level, verdict := Classify(composite)

	return &Summary{
		Averages:  averages,
		Composite: composite,
		PPI:       averages[SecondaryModelID],
		Phase:     SelectPhase(a.ModelScores(PhaseModelID)),
		Verdict:   verdict,
		Level:     level,
	}
}

// modelAverage is the arithmetic mean of the present, non-nil axis scores,
// rounded to two decimals. Zero present scores → average 0.
func modelAverage(scores ScoreSet) float64 {
	var sum float64
	var n int
	for _, v := range scores {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
