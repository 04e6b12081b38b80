package engine

// Axis is a single scored dimension of a model.
type Axis struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// Model is one scoring model: an identifier, a display name, and an ordered
// list of axes. Order matters — it drives phase tie-breaks and alert output.
type Model struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Axes []Axis `json:"axes" yaml:"axes"`
}

const (
	// SecondaryModelID is the model whose average doubles as the PPI
	// (Psyop Probability Index).
	SecondaryModelID = "narcs"

	// PhaseModelID is the model whose dominant axis names the current phase.
	PhaseModelID = "trapn"
)

// models is the static registry. Defined once, never mutated.
var models = []Model{
	{
		ID: "soram", Name: "SORAM",
		Axes: []Axis{
			{Key: "S", Name: "Societal"},
			{Key: "O", Name: "Operational"},
			{Key: "R", Name: "Regulatory"},
			{Key: "A", Name: "Alignment"},
			{Key: "M", Name: "Media"},
		},
	},
	{
		ID: "prism", Name: "PRISM",
		Axes: []Axis{
			{Key: "P", Name: "Precursor"},
			{Key: "R", Name: "Repetition"},
			{Key: "I", Name: "Villains"},
			{Key: "S", Name: "Symbolism"},
			{Key: "M", Name: "Urgency"},
		},
	},
	{
		ID: "narcs", Name: "NARCS",
		Axes: []Axis{
			{Key: "N", Name: "Narrative"},
			{Key: "A", Name: "Authority"},
			{Key: "R", Name: "Historical"},
			{Key: "C", Name: "CogLoad"},
			{Key: "S", Name: "Inversion"},
		},
	},
	{
		ID: "trapn", Name: "TRAP-N",
		Axes: []Axis{
			{Key: "T", Name: "Tension"},
			{Key: "R", Name: "Rally"},
			{Key: "A", Name: "Authority"},
			{Key: "P", Name: "Polarise"},
			{Key: "N", Name: "Normalise"},
		},
	},
	{
		ID: "fate", Name: "FATE",
		Axes: []Axis{
			{Key: "F", Name: "Focus"},
			{Key: "A", Name: "Authority"},
			{Key: "T", Name: "Tribe"},
			{Key: "E", Name: "Emotion"},
		},
	},
	{
		ID: "sixaxis", Name: "6-Axis",
		Axes: []Axis{
			{Key: "focus", Name: "Focus"},
			{Key: "openness", Name: "Openness"},
			{Key: "connection", Name: "Connection"},
			{Key: "suggestibility", Name: "Suggestib."},
			{Key: "compliance", Name: "Compliance"},
			{Key: "expectancy", Name: "Expectancy"},
		},
	},
}

// phaseLabels maps a phase-model axis key to its narrative phase name.
// These are distinct from the short axis display names used in score tables.
var phaseLabels = map[string]string{
	"T": "TENSION BUILDING",
	"R": "RALLY PHASE",
	"A": "AUTHORITY CONSOLIDATION",
	"P": "POLARISATION ACTIVE",
	"N": "NORMALISATION UNDERWAY",
}

// impactDirections describes the direction of human impact for each
// six-axis key, used by the report renderer.
var impactDirections = map[string]string{
	"focus":          "tightens",
	"openness":       "drops",
	"connection":     "erodes",
	"suggestibility": "rises",
	"compliance":     "increases",
	"expectancy":     "managed",
}

// Models returns the ordered model registry.
func Models() []Model {
	return models
}

// ModelByID returns the registered model with the given identifier.
func ModelByID(id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Weights maps a model identifier to its combination weight.
// Models without an entry carry weight 0.
type Weights map[string]float64

// DefaultWeights returns the reference weight table. The weights sum to 1.0
// by convention, not by enforcement.
func DefaultWeights() Weights {
	return Weights{
		"soram":   0.25,
		"prism":   0.20,
		"narcs":   0.25,
		"trapn":   0.15,
		"fate":    0.10,
		"sixaxis": 0.05,
	}
}

// PhaseLabel returns the narrative phase name for a phase-model axis key,
// or "?" when the key is not a registered phase axis.
func PhaseLabel(key string) string {
	if l, ok := phaseLabels[key]; ok {
		return l
	}
	return "?"
}

// ImpactDirection returns the human-impact direction for a six-axis key.
func ImpactDirection(key string) string {
	return impactDirections[key]
}
