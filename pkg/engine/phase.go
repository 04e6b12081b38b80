package engine

import "fmt"

// SelectPhase picks the dominant axis of the phase model from its raw scores
// and returns the combined "KEY — PHASE NAME" label.
//
// The highest-scoring present axis wins; ties go to the earlier axis in
// registry order, so the result is stable across calls. When every value is
// nil, or the maximum is 0, there is no dominant phase and the result is "".
func SelectPhase(scores ScoreSet) string {
	if len(scores) == 0 {
		return ""
	}

	m, ok := ModelByID(PhaseModelID)
	if !ok {
		return ""
	}

	var topKey string
	var topVal float64
	for _, ax := range m.Axes {
		v := scores[ax.Key]
		if v == nil {
			continue
		}
		if topKey == "" || *v > topVal {
			topKey = ax.Key
			topVal = *v
		}
	}

	if topKey == "" || topVal <= 0 {
		return ""
	}
	return fmt.Sprintf("%s — %s", topKey, PhaseLabel(topKey))
}
