package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pressframe/pctl/pkg/data"
	"github.com/pressframe/pctl/pkg/engine"
	"github.com/pressframe/pctl/pkg/report"
)

var (
	monitorIDFlag = &cli.StringFlag{
		Name:  "monitor",
		Usage: "Monitor id whose thresholds apply (also records the check)",
	}

	batchFileFlag = &cli.StringFlag{
		Name:  "batch",
		Usage: "Path to a file with one assessment JSON object per line",
	}

	quietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "Emit alerts as structured output instead of the notice text",
	}

	checkCmd = &cli.Command{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "Evaluate an assessment against alert thresholds",
		Action:  cmdCheck,
		Flags: []cli.Flag{
			jsonFlag,
			fileFlag,
			monitorIDFlag,
			batchFileFlag,
			quietFlag,
		},
	}
)

func cmdCheck(c *cli.Context) error {
	cfg := getConfig(c)

	th := engine.DefaultThresholds()
	monitorID := c.String(monitorIDFlag.Name)
	if monitorID != "" {
		m, err := data.GetMonitor(cfg.DB, monitorID)
		if err != nil {
			return err
		}
		th = m.Thresholds
	}

	if batchFile := c.String(batchFileFlag.Name); batchFile != "" {
		return checkBatch(c, batchFile, th)
	}

	a, err := readAssessment(c)
	if err != nil {
		return err
	}

	s := engine.Aggregate(a, engine.DefaultWeights())
	alerts := engine.Evaluate(a, s, th)

	if monitorID != "" {
		now := time.Now()
		if err := data.RecordCheck(cfg.DB, monitorID, now); err != nil {
			return err
		}
		if len(alerts) > 0 {
			if err := data.RecordAlert(cfg.DB, monitorID, now); err != nil {
				return err
			}
		}
	}

	if c.Bool(quietFlag.Name) {
		return encode(&engine.Evaluation{Summary: s, Alerts: alerts})
	}

	if len(alerts) == 0 {
		fmt.Fprintln(c.App.Writer, report.RenderNoAlerts(s))
		return nil
	}
	fmt.Fprintln(c.App.Writer, report.RenderAlerts(a, s, alerts))
	return nil
}

// checkBatch evaluates one assessment per line, fanned out in parallel, and
// emits the structured results in input order.
func checkBatch(c *cli.Context, path string, th engine.Thresholds) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening batch file %s: %w", path, err)
	}
	defer f.Close()

	var assessments []*engine.Assessment
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		a, err := engine.ParseAssessment(b)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		assessments = append(assessments, a)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}

	slog.Debug("evaluating batch", "count", len(assessments))
	results, err := engine.EvaluateBatch(c.Context, assessments, engine.DefaultWeights(), th)
	if err != nil {
		return err
	}
	return encode(results)
}
