package engine

// Severity levels derived from the composite score.
const (
	LevelHigh     = "high"
	LevelModerate = "moderate"
	LevelLow      = "low"
)

// Tier boundaries for the composite score. Boundary values belong to the
// higher tier.
const (
	compositeHigh     = 7.0
	compositeModerate = 4.0
)

// Verdict narratives, one per tier.
const (
	verdictHigh     = "HIGH PRESSURE — conditions ripe for influence operation"
	verdictModerate = "MODERATE PRESSURE — monitor closely, seeding possible"
	verdictLow      = "LOW PRESSURE — organic activity likely"
)

// Classify maps a composite score to its severity tier and verdict text.
func Classify(composite float64) (level, verdict string) {
	switch {
	case composite >= compositeHigh:
		return LevelHigh, verdictHigh
	case composite >= compositeModerate:
		return LevelModerate, verdictModerate
	default:
		return LevelLow, verdictLow
	}
}
