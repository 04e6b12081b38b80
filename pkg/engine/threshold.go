package engine

import "fmt"

// Alert types, matching the original wire values.
const (
	AlertOverall = "overall"
	AlertPPI     = "ppi"
	AlertAxis    = "axis"
	AlertModel   = "model"
)

// Alert severity levels.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Critical-escalation boundaries. These are fixed constants layered on top of
// the caller-tunable Thresholds, not derived from them.
const (
	criticalOverall = 8.0
	criticalPPI     = 8.0
	criticalAxis    = 9.0
	criticalModel   = 8.5
)

// Thresholds are the per-monitor tunable alert limits.
type Thresholds struct {
	Overall      float64 `json:"overall_pressure" yaml:"overall_pressure"`
	PPI          float64 `json:"ppi_score" yaml:"ppi_score"`
	Axis         float64 `json:"any_single_axis" yaml:"any_single_axis"`
	ModelAverage float64 `json:"model_average" yaml:"model_average"`
}

// DefaultThresholds returns the reference limits used when a monitor does not
// override them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Overall:      6.0,
		PPI:          6.0,
		Axis:         8,
		ModelAverage: 7.0,
	}
}

// Alert is a single threshold-crossing event.
type Alert struct {
	Type    string `json:"type" yaml:"type"`
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

// HasCritical reports whether any alert in the batch is critical.
func HasCritical(alerts []Alert) bool {
	for _, a := range alerts {
		if a.Level == SeverityCritical {
			return true
		}
	}
	return false
}

// Evaluate scans the raw scores and the computed summary against the given
// thresholds. The four rules are independent and non-exclusive; per-axis and
// per-model alerts can both fire for the same model.
//
// Alert order is fixed: overall, ppi, then per registry model its axis alerts
// followed by its average alert. An empty slice means nothing fired.
func Evaluate(a *Assessment, s *Summary, th Thresholds) []Alert {
	alerts := []Alert{}

	if s.Composite >= th.Overall {
		alerts = append(alerts, Alert{
			Type:    AlertOverall,
			Level:   severityAt(s.Composite, criticalOverall),
			Message: fmt.Sprintf("Overall pressure at %v/10", s.Composite),
		})
	}

	if s.PPI >= th.PPI {
		alerts = append(alerts, Alert{
			Type:    AlertPPI,
			Level:   severityAt(s.PPI, criticalPPI),
			Message: fmt.Sprintf("PPI at %v/10", s.PPI),
		})
	}

	for _, m := range models {
		scores := a.ModelScores(m.ID)
		for _, ax := range m.Axes {
			v := scores[ax.Key]
			if v == nil || *v < th.Axis {
				continue
			}
			alerts = append(alerts, Alert{
				Type:    AlertAxis,
				Level:   severityAt(*v, criticalAxis),
				Message: fmt.Sprintf("%s.%s (%s) at %v/10", m.Name, ax.Key, ax.Name, *v),
			})
		}

		if avg := s.Averages[m.ID]; avg >= th.ModelAverage {
			alerts = append(alerts, Alert{
				Type:    AlertModel,
				Level:   severityAt(avg, criticalModel),
				Message: fmt.Sprintf("%s average at %v/10", m.Name, avg),
			})
		}
	}

	return alerts
}

func severityAt(v, critical float64) string {
	if v >= critical {
		return SeverityCritical
	}
	return SeverityWarning
}
