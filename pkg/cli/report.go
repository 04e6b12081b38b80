package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pressframe/pctl/pkg/engine"
	"github.com/pressframe/pctl/pkg/report"
)

var (
	jsonFlag = &cli.StringFlag{
		Name:  "json",
		Usage: "Assessment payload as a JSON string",
	}

	fileFlag = &cli.StringFlag{
		Name:  "file",
		Usage: "Path to an assessment JSON file (use - for stdin)",
	}

	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Plain text output, no emoji (for SimpleX or plain terminals)",
	}

	reportCmd = &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Render the full analysis report for an assessment",
		Action:  cmdReport,
		Flags: []cli.Flag{
			jsonFlag,
			fileFlag,
			plainFlag,
		},
	}

	exportCmd = &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Emit the JSON-exportable form of an assessment evaluation",
		Action:  cmdExport,
		Flags: []cli.Flag{
			jsonFlag,
			fileFlag,
		},
	}
)

func cmdReport(c *cli.Context) error {
	a, err := readAssessment(c)
	if err != nil {
		return err
	}

	s := engine.Aggregate(a, engine.DefaultWeights())
	fmt.Fprintln(c.App.Writer, report.Render(a, s, c.Bool(plainFlag.Name), time.Now()))
	return nil
}

func cmdExport(c *cli.Context) error {
	a, err := readAssessment(c)
	if err != nil {
		return err
	}

	s := engine.Aggregate(a, engine.DefaultWeights())
	return encode(report.NewExport(a, s, time.Now()))
}
