package cli

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pressframe/pctl/pkg/data"
)

var (
	topicFlag = &cli.StringFlag{
		Name:     "topic",
		Usage:    "Monitor topic",
		Required: true,
	}

	feedsFlag = &cli.StringFlag{
		Name:  "feeds",
		Usage: "Comma-separated RSS/Atom feed URLs",
	}

	keywordsFlag = &cli.StringFlag{
		Name:  "keywords",
		Usage: "Comma-separated search terms",
	}

	frequencyFlag = &cli.IntFlag{
		Name:  "frequency",
		Usage: "Check frequency in minutes",
		Value: data.FrequencyMinutesDefault,
	}

	idFlag = &cli.StringFlag{
		Name:     "id",
		Usage:    "Monitor id",
		Required: true,
	}

	monitorCmd = &cli.Command{
		Name:    "monitor",
		Aliases: []string{"m"},
		Usage:   "Manage monitors",
		Subcommands: []*cli.Command{
			{
				Name:    "add",
				Aliases: []string{"a"},
				Usage:   "Add a monitor",
				Action:  cmdMonitorAdd,
				Flags: []cli.Flag{
					topicFlag,
					feedsFlag,
					keywordsFlag,
					frequencyFlag,
				},
			},
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List monitors",
				Action:  cmdMonitorList,
			},
			{
				Name:    "remove",
				Aliases: []string{"r"},
				Usage:   "Remove a monitor",
				Action:  cmdMonitorRemove,
				Flags:   []cli.Flag{idFlag},
			},
			{
				Name:   "pause",
				Usage:  "Pause a monitor",
				Action: cmdMonitorPause,
				Flags:  []cli.Flag{idFlag},
			},
			{
				Name:   "resume",
				Usage:  "Resume a paused monitor",
				Action: cmdMonitorResume,
				Flags:  []cli.Flag{idFlag},
			},
		},
	}
)

func cmdMonitorAdd(c *cli.Context) error {
	cfg := getConfig(c)
	m, err := data.AddMonitor(cfg.DB,
		c.String(topicFlag.Name),
		splitList(c.String(feedsFlag.Name)),
		splitList(c.String(keywordsFlag.Name)),
		c.Int(frequencyFlag.Name))
	if err != nil {
		return err
	}
	return encode(m)
}

func cmdMonitorList(c *cli.Context) error {
	cfg := getConfig(c)
	list, err := data.ListMonitors(cfg.DB)
	if err != nil {
		return err
	}
	return encode(list)
}

func cmdMonitorRemove(c *cli.Context) error {
	cfg := getConfig(c)
	return data.RemoveMonitor(cfg.DB, c.String(idFlag.Name))
}

func cmdMonitorPause(c *cli.Context) error {
	cfg := getConfig(c)
	return data.SetMonitorActive(cfg.DB, c.String(idFlag.Name), false)
}

func cmdMonitorResume(c *cli.Context) error {
	cfg := getConfig(c)
	return data.SetMonitorActive(cfg.DB, c.String(idFlag.Name), true)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
