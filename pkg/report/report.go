// Package report renders computed pressure evaluations as chat-ready text,
// alert notices, and a JSON-exportable form. It never recomputes anything;
// all numbers come from the engine.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pressframe/pctl/pkg/engine"
)

const (
	headerRule  = 28
	overallBar  = 20
	modelBar    = 10
	axisBar     = 8
	timeDisplay = "2006-01-02 15:04 UTC"
)

// Render produces the full analysis report. Plain mode swaps emoji for
// bracketed text markers; the numbers are identical in both modes.
func Render(a *engine.Assessment, s *engine.Summary, plain bool, now time.Time) string {
	e := !plain
	var lines []string

	lines = append(lines, rule("━", headerRule))
	if e {
		lines = append(lines, "⚡ PRESSURE ANALYSIS REPORT")
	} else {
		lines = append(lines, "   PRESSURE ANALYSIS REPORT")
	}
	lines = append(lines, rule("━", headerRule))
	lines = append(lines, prefixed(e, "📌 ", "Event: ")+eventOrUnknown(a))
	lines = append(lines, prefixed(e, "🕐 ", "Time:  ")+now.UTC().Format(timeDisplay))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("%s OVERALL: %s/10", marker(s.Composite, e), fmtScore(s.Composite)))
	lines = append(lines, "   "+bar(s.Composite, overallBar))
	lines = append(lines, "   "+s.Verdict)
	lines = append(lines, "")

	lines = append(lines, prefixed(e, "📊 ", "")+"PHASE SCORES")
	lines = append(lines, rule("─", headerRule))
	for _, m := range engine.Models() {
		avg := s.Averages[m.ID]
		lines = append(lines, fmt.Sprintf("%s %-8s %4.1f/10  %s", marker(avg, e), m.Name, avg, bar(avg, modelBar)))
		scores := a.ModelScores(m.ID)
		for _, ax := range m.Axes {
			v := scores[ax.Key]
			if v == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("   %s %s·%-10s %2s/10 %s",
				marker(*v, e), ax.Key, clip(ax.Name, 10), fmtScore(*v), bar(*v, axisBar)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, rule("━", headerRule))
	lines = append(lines, fmt.Sprintf("%s PPI (Psyop Probability Index): %s/10", marker(s.PPI, e), fmtScore(s.PPI)))
	lines = append(lines, "   "+ppiNarrative(s.PPI))
	lines = append(lines, "")

	if s.Phase != "" {
		lines = append(lines, prefixed(e, "📍 ", "")+"CURRENT PHASE: "+s.Phase)
		lines = append(lines, "")
	}

	if a.Diagnostic != "" {
		lines = append(lines, diagnosticLine(a.Diagnostic, e))
		lines = append(lines, "")
	}

	if impact := impactLines(a, e); len(impact) > 0 {
		lines = append(lines, prefixed(e, "🧠 ", "")+"HUMAN IMPACT (6-Axis)")
		lines = append(lines, rule("─", headerRule))
		lines = append(lines, impact...)
		lines = append(lines, "")
	}

	if len(a.KeyObservations) > 0 {
		lines = append(lines, prefixed(e, "🔍 ", "")+"KEY OBSERVATIONS")
		lines = append(lines, rule("─", headerRule))
		for i, o := range a.KeyObservations {
			lines = append(lines, fmt.Sprintf("   %d. %s", i+1, o))
		}
		lines = append(lines, "")
	}

	if a.HistoricalAnalog != "" {
		lines = append(lines, prefixed(e, "📜 ", "")+"HISTORICAL ANALOG: "+a.HistoricalAnalog)
		lines = append(lines, "")
	}

	lines = append(lines, rule("━", headerRule))
	lines = append(lines, "SORAM → PRISM → NARCS/PPI → TRAP-N → FATE → 6-Axis")
	lines = append(lines, "You don't predict events. You predict pressure.")

	return strings.Join(lines, "\n")
}

func impactLines(a *engine.Assessment, e bool) []string {
	m, ok := engine.ModelByID("sixaxis")
	if !ok {
		return nil
	}
	scores := a.ModelScores(m.ID)

	active := false
	for _, v := range scores {
		if v != nil && *v > 0 {
			active = true
			break
		}
	}
	if !active {
		return nil
	}

	var lines []string
	for _, ax := range m.Axes {
		v := scores[ax.Key]
		if v == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("   %s %-14s %2s/10 (%s)",
			marker(*v, e), ax.Key, fmtScore(*v), engine.ImpactDirection(ax.Key)))
	}
	return lines
}

func ppiNarrative(ppi float64) string {
	switch {
	case ppi >= 7:
		return "Conditions ripe. Intention highly likely."
	case ppi >= 4:
		return "Developing. Could be organic or manufactured."
	default:
		return "Low probability of coordinated influence."
	}
}

func diagnosticLine(diag string, e bool) string {
	var icon, text string
	switch diag {
	case engine.DiagnosticSolving:
		icon = "⚙️"
		text = "Solving a genuine problem"
	default:
		icon = "⚡"
		text = "Teaching adaptation — not solving a real problem"
	}
	if !e {
		return "DIAGNOSTIC: " + text
	}
	return icon + " DIAGNOSTIC: " + text
}

// marker returns the severity indicator for a value: red ≥8, orange ≥6,
// yellow ≥4, green below.
func marker(v float64, emoji bool) string {
	if emoji {
		switch {
		case v >= 8:
			return "🔴"
		case v >= 6:
			return "🟠"
		case v >= 4:
			return "🟡"
		default:
			return "🟢"
		}
	}
	switch {
	case v >= 8:
		return "[!!!]"
	case v >= 6:
		return "[!! ]"
	case v >= 4:
		return "[!  ]"
	default:
		return "[   ]"
	}
}

// bar renders a filled/empty progress bar over a 0–10 value. The fill is
// clamped to the bar width for display; the underlying value is not.
func bar(v float64, width int) string {
	filled := int(math.Round(v / 10 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func fmtScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

func prefixed(emoji bool, withEmoji, without string) string {
	if emoji {
		return withEmoji
	}
	return without
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func eventOrUnknown(a *engine.Assessment) string {
	if a.Event == "" {
		return "Unknown"
	}
	return a.Event
}
