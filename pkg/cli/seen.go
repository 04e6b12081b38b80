package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pressframe/pctl/pkg/data"
)

var (
	contentFlag = &cli.StringFlag{
		Name:     "content",
		Usage:    "Content text to hash",
		Required: true,
	}

	seenCmd = &cli.Command{
		Name:  "seen",
		Usage: "Content-hash deduplication bookkeeping",
		Subcommands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Check whether content was already analysed (exit 1 when new)",
				Action: cmdSeenCheck,
				Flags:  []cli.Flag{contentFlag},
			},
			{
				Name:   "mark",
				Usage:  "Mark content as analysed",
				Action: cmdSeenMark,
				Flags:  []cli.Flag{contentFlag},
			},
		},
	}
)

func cmdSeenCheck(c *cli.Context) error {
	cfg := getConfig(c)
	h := data.ContentHash(c.String(contentFlag.Name))

	seen, err := data.IsSeen(cfg.DB, h)
	if err != nil {
		return err
	}
	if seen {
		fmt.Fprintf(c.App.Writer, "SEEN:%s\n", h)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "NEW:%s\n", h)
	return cli.Exit("", 1)
}

func cmdSeenMark(c *cli.Context) error {
	cfg := getConfig(c)
	h := data.ContentHash(c.String(contentFlag.Name))

	if err := data.MarkSeen(cfg.DB, h); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "MARKED:%s\n", h)
	return nil
}
