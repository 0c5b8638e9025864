package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/fimgen/fimgen"
	"github.com/arjunmahishi/fimgen/telemetry"
)

// GenerateCommand returns the generate subcommand.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "extract FIM samples into train and test JSONL files",
		Description: "Scan a directory for .svelte files, select the critical blocks of each\n" +
			"component and write one prefix/middle/suffix sample per block.\n\n" +
			"Flags override values from --config.\n\n" +
			"Examples:\n" +
			"  fimgen generate --path ./src\n" +
			"  fimgen generate --path ./src --seed 7 --truncate\n" +
			"  fimgen generate --config fimgen.yaml -j 4",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: ".",
				Usage: "root path to scan",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "single component to process",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   runtime.NumCPU(),
				Usage:   "number of parallel workers",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Value: fimgen.DefaultMaxBytes,
				Usage: "skip files larger than this",
			},
			&cli.IntFlag{
				Name:  "max-chunk-len",
				Value: fimgen.DefaultMaxChunkLen,
				Usage: "byte budget of prefix, middle and suffix together",
			},
			&cli.Float64Flag{
				Name:  "test-ratio",
				Value: fimgen.DefaultTestRatio,
				Usage: "probability that a file goes to the test split",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for split decisions (0 picks a random seed)",
			},
			&cli.StringFlag{
				Name:  "train-out",
				Value: fimgen.DefaultTrainOut,
				Usage: "train split output file",
			},
			&cli.StringFlag{
				Name:  "test-out",
				Value: fimgen.DefaultTestOut,
				Usage: "test split output file",
			},
			&cli.BoolFlag{
				Name:  "truncate",
				Usage: "empty the output files instead of appending",
			},
			&cli.BoolFlag{
				Name:  "flush-trailing-run",
				Usage: "emit an import/export run still open at the end of a script",
			},
			&cli.BoolFlag{
				Name:  "allow-parse-errors",
				Usage: "keep files whose syntax trees contain errors",
			},
			&cli.BoolFlag{
				Name:  "no-gitignore",
				Usage: "do not skip paths matched by .gitignore",
			},
			&cli.StringSliceFlag{
				Name:  "ignore-dir",
				Usage: "directory name to skip (repeatable, replaces the defaults)",
			},
			&cli.StringFlag{
				Name:  "metrics",
				Value: telemetry.ExporterNone,
				Usage: "metric exporter: none, stdout",
			},
			&cli.StringFlag{
				Name:  "traces",
				Value: telemetry.ExporterNone,
				Usage: "trace exporter: none, stdout",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print run stats as JSON",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) (err error) {
	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}

	tcfg := telemetry.DefaultConfig()
	tcfg.MetricExporter = cmd.String("metrics")
	tcfg.TraceExporter = cmd.String("traces")
	tcfg.Output = stderr(cmd)
	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return err
	}
	defer func() {
		if serr := shutdown(context.WithoutCancel(ctx)); serr != nil {
			err = errors.Join(err, fmt.Errorf("telemetry shutdown: %w", serr))
		}
	}()

	stats, err := fimgen.Generate(ctx, opts)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(cmd, stats, true)
	}
	printSummary(stdout(cmd), stats, opts)
	return nil
}

// generateOptions merges the config file, if any, with the flags set on the
// command line.
func generateOptions(cmd *cli.Command) (fimgen.GenerateOptions, error) {
	var opts fimgen.GenerateOptions
	if path := cmd.String("config"); path != "" {
		cfg, err := fimgen.LoadConfig(path)
		if err != nil {
			return opts, err
		}
		opts = cfg.GenerateOptions()
	}

	if cmd.IsSet("path") || opts.Path == "" {
		opts.Path = cmd.String("path")
	}
	if cmd.IsSet("file") {
		opts.File = cmd.String("file")
	}
	if cmd.IsSet("jobs") {
		opts.Jobs = cmd.Int("jobs")
	}
	if cmd.IsSet("max-bytes") {
		opts.MaxBytes = cmd.Int64("max-bytes")
	}
	if cmd.IsSet("max-chunk-len") {
		opts.MaxChunkLen = cmd.Int("max-chunk-len")
	}
	if cmd.IsSet("test-ratio") {
		opts.TestRatio = cmd.Float64("test-ratio")
		if opts.TestRatio == 0 {
			// Zero means "default" in the options; no file goes to test.
			opts.TestRatio = -1
		}
	}
	if cmd.IsSet("seed") {
		opts.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("train-out") {
		opts.TrainOut = cmd.String("train-out")
	}
	if cmd.IsSet("test-out") {
		opts.TestOut = cmd.String("test-out")
	}
	if cmd.IsSet("truncate") {
		opts.Truncate = cmd.Bool("truncate")
	}
	if cmd.IsSet("flush-trailing-run") {
		opts.FlushTrailingRun = cmd.Bool("flush-trailing-run")
	}
	if cmd.IsSet("allow-parse-errors") {
		opts.AllowParseErrors = cmd.Bool("allow-parse-errors")
	}
	if cmd.IsSet("no-gitignore") {
		opts.SkipGitignore = cmd.Bool("no-gitignore")
	}
	if cmd.IsSet("ignore-dir") {
		opts.IgnoreDirs = cmd.StringSlice("ignore-dir")
	}

	if opts.MaxChunkLen < 0 {
		return opts, fmt.Errorf("--max-chunk-len must not be negative, got %d", opts.MaxChunkLen)
	}
	if opts.TestRatio > 1 {
		return opts, fmt.Errorf("--test-ratio must be at most 1, got %g", opts.TestRatio)
	}
	return opts, nil
}
