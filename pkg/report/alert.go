package report

import (
	"fmt"
	"strings"

	"github.com/pressframe/pctl/pkg/engine"
)

const (
	alertRule     = 24
	eventClipLen  = 60
	alertFollowup = `→ Say "analyse" for full report`
)

// RenderAlerts produces the short bulletined alert notice for a non-empty
// alert batch. The header escalates when any alert in the batch is critical.
func RenderAlerts(a *engine.Assessment, s *engine.Summary, alerts []engine.Alert) string {
	head := "⚠️"
	if engine.HasCritical(alerts) {
		head = "🚨"
	}

	var lines []string
	lines = append(lines, head+" PRESSURE ALERT")
	lines = append(lines, rule("━", alertRule))
	lines = append(lines, "📌 "+clip(eventOrUnknown(a), eventClipLen))
	lines = append(lines, fmt.Sprintf("⚡ Overall: %s/10 | PPI: %s/10", fmtScore(s.Composite), fmtScore(s.PPI)))
	lines = append(lines, "")

	for _, al := range alerts {
		icon := "🟠"
		if al.Level == engine.SeverityCritical {
			icon = "🔴"
		}
		lines = append(lines, icon+" "+al.Message)
	}

	if s.Phase != "" {
		lines = append(lines, "")
		lines = append(lines, "📍 Phase: "+s.Phase)
	}
	lines = append(lines, "")
	lines = append(lines, alertFollowup)

	return strings.Join(lines, "\n")
}

// RenderNoAlerts is the distinct no-thresholds-triggered state. Callers must
// render this rather than staying silent.
func RenderNoAlerts(s *engine.Summary) string {
	return fmt.Sprintf("✅ No thresholds triggered. Overall: %s/10 | PPI: %s/10",
		fmtScore(s.Composite), fmtScore(s.PPI))
}
