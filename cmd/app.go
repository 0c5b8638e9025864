// Package cmd implements the fimgen command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/fimgen/output"
)

// NewApp returns the root command.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "fimgen",
		Usage: "build fill-in-the-middle datasets from Svelte components",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug messages, including skipped files",
			},
			&cli.StringFlag{
				Name:  "color",
				Value: "auto",
				Usage: "colorize summaries: auto, always, never",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			GenerateCommand(),
			InspectCommand(),
			MetricsCommand(),
			CompareCommand(),
			ExampleConfigCommand(),
		},
	}
}

// setup installs the default logger and the color mode.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr(cmd), &slog.HandlerOptions{Level: level})))

	switch mode := cmd.String("color"); mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		// fatih/color already checks for a terminal and NO_COLOR.
	default:
		return ctx, fmt.Errorf("invalid --color %q: use auto, always or never", mode)
	}
	return ctx, nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// writeJSON prints v on the command's stdout.
func writeJSON(cmd *cli.Command, v any, compact bool) error {
	return output.New(output.Config{Compact: compact, Output: stdout(cmd)}).Write(v)
}
