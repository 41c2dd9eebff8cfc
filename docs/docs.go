package docs

import (
	"context"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"
)

var BuildCmd = &cli.Command{
	Name:    "docs",
	Aliases: []string{"d"},
	Usage:   "Generate CLI documentation",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      "output",
			Aliases:   []string{"o"},
			Usage:     "Markdown file to write",
			Value:     "cli.md",
			TakesFile: true,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		md, err := docs.ToMarkdown(cmd.Root())
		if err != nil {
			return cli.Exit("Error: Unable to render documentation: "+err.Error(), 1)
		}
		if err := os.WriteFile(cmd.String("output"), []byte(md), 0o644); err != nil {
			return cli.Exit("Error: Unable to write documentation: "+err.Error(), 1)
		}
		return nil
	},
}
