package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/fimgen/fimgen"
)

// InspectCommand returns the inspect subcommand.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "show the blocks selected in one component",
		Description: "Print the critical blocks of a component in selection order, with\n" +
			"byte offsets, line/column ranges and the text of each block.\n\n" +
			"Examples:\n" +
			"  fimgen inspect -f src/lib/Card.svelte\n" +
			"  fimgen inspect -f Card.svelte --no-text --compact\n" +
			"  fimgen inspect -f Card.svelte --tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "component to analyze",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "print JSON on one line",
			},
			&cli.BoolFlag{
				Name:  "no-text",
				Usage: "omit block text",
			},
			&cli.BoolFlag{
				Name:  "tree",
				Usage: "include the converted markup tree with branch roles",
			},
			&cli.BoolFlag{
				Name:  "flush-trailing-run",
				Usage: "emit an import/export run still open at the end of a script",
			},
			&cli.BoolFlag{
				Name:  "allow-parse-errors",
				Usage: "inspect files whose syntax trees contain errors",
			},
		},
		Action: runInspect,
	}
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	result, err := fimgen.Inspect(ctx, fimgen.InspectOptions{
		File:             cmd.String("file"),
		IncludeText:      !cmd.Bool("no-text"),
		IncludeTemplate:  cmd.Bool("tree"),
		FlushTrailingRun: cmd.Bool("flush-trailing-run"),
		AllowParseErrors: cmd.Bool("allow-parse-errors"),
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd, result, cmd.Bool("compact"))
}
