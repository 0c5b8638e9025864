package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/fimgen/fimgen"
)

// MetricsCommand returns the metrics subcommand.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "score a generation file with exact match and BLEU",
		Description: "Read a JSONL file of {prompt, generation, label} records and report\n" +
			"exact-match accuracy and corpus BLEU-4.\n\n" +
			"Examples:\n" +
			"  fimgen metrics -f generations.jsonl\n" +
			"  fimgen metrics -f generations.jsonl --json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "generation JSONL file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result as JSON",
			},
		},
		Action: runMetrics,
	}
}

func runMetrics(_ context.Context, cmd *cli.Command) error {
	result, err := fimgen.Metrics(fimgen.MetricsOptions{File: cmd.String("file")})
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(cmd, result, true)
	}
	_, err = fmt.Fprint(stdout(cmd), result.String())
	return err
}

// CompareCommand returns the compare subcommand.
func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "show a baseline and a fine-tuned generation side by side",
		Description: "Pick one baseline record, find the fine-tuned record with the same\n" +
			"prompt and print the context with the expected, baseline and fine-tuned\n" +
			"middles marked up.\n\n" +
			"Examples:\n" +
			"  fimgen compare --baseline base.jsonl --finetuned ft.jsonl\n" +
			"  fimgen compare --baseline base.jsonl --finetuned ft.jsonl -i 12 --context-lines 5",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "baseline",
				Usage:    "baseline generation JSONL file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "finetuned",
				Usage:    "fine-tuned generation JSONL file",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Value:   -1,
				Usage:   "baseline record to show (negative picks one at random)",
			},
			&cli.IntFlag{
				Name:  "context-lines",
				Usage: "lines of prefix and suffix to keep (0 keeps all)",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for the random pick (0 picks a random seed)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the comparison as JSON",
			},
		},
		Action: runCompare,
	}
}

func runCompare(_ context.Context, cmd *cli.Command) error {
	if cmd.Int("context-lines") < 0 {
		return fmt.Errorf("--context-lines must not be negative, got %d", cmd.Int("context-lines"))
	}

	c, err := fimgen.Compare(fimgen.CompareOptions{
		Baseline:     cmd.String("baseline"),
		Finetuned:    cmd.String("finetuned"),
		Index:        cmd.Int("index"),
		ContextLines: cmd.Int("context-lines"),
		Rand:         fimgen.NewRand(cmd.Uint64("seed")),
	})
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(cmd, c, false)
	}
	_, err = fmt.Fprint(stdout(cmd), c.String())
	return err
}
