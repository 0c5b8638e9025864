// Package fimgen builds fill-in-the-middle datasets from Svelte components
// and scores model generations against them.
package fimgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arjunmahishi/fimgen/blocks"
	"github.com/arjunmahishi/fimgen/lang"
	"github.com/arjunmahishi/fimgen/output"
	"github.com/arjunmahishi/fimgen/parser"
	"github.com/arjunmahishi/fimgen/scanner"
	"github.com/arjunmahishi/fimgen/types"
)

// Generate extracts samples from every component under opts.Path (or from
// opts.File) and writes them to the train and test outputs. Files that fail
// to read or parse are counted and skipped. The returned stats cover the
// files handled before any run-level error.
func Generate(ctx context.Context, opts GenerateOptions) (stats types.Stats, err error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	ctx, span := tracer.Start(ctx, "fimgen.Generate")
	defer func() {
		setGenerateSpanResult(span, stats)
		span.End()
	}()

	files, err := collectFiles(opts)
	if err != nil {
		return stats, err
	}
	logger.Info("collected files", "count", len(files), "path", opts.Path)

	sink := opts.Sink
	if sink == nil {
		w, err := output.OpenSplitFiles(opts.TrainOut, opts.TestOut, !opts.Truncate)
		if err != nil {
			return stats, err
		}
		defer func() {
			if cerr := w.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
			}
		}()
		sink = w
	}

	splitter := NewSeededSplitter(opts.TestRatio, opts.Seed)
	if opts.Rand != nil {
		splitter = NewSplitter(opts.TestRatio, opts.Rand)
	}

	tasks := make([]fileTask, len(files))
	for i, f := range files {
		tasks[i] = fileTask{index: i, job: f, split: splitter.Decide()}
	}

	extractOpts := blocks.Options{FlushTrailingRun: opts.FlushTrailingRun}
	newWorker := func() (*parser.Parser, error) {
		return parser.New(parser.Options{AllowErrors: opts.AllowParseErrors})
	}
	process := func(ctx context.Context, p *parser.Parser, t fileTask) ([]types.Sample, error) {
		ctx, span := startFileSpan(ctx, t.job, t.split)
		defer span.End()

		start := time.Now()
		samples, err := extractSamples(ctx, p, t.job, extractOpts, opts.MaxChunkLen)
		recordFileMetrics(ctx, time.Since(start), len(samples), err)
		if err != nil {
			span.RecordError(err)
		}
		return samples, err
	}
	consume := func(t fileTask, samples []types.Sample, ferr error) error {
		stats.Files++
		if ferr != nil {
			stats.Failed++
			logger.Debug("skipping file", "file", t.job.DisplayPath, "error", ferr)
			return nil
		}
		stats.Succeeded++

		for _, s := range samples {
			if err := sink.Write(t.split, s); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
		}
		stats.Samples += len(samples)
		if t.split == types.SplitTest {
			stats.TestSamples += len(samples)
		} else {
			stats.TrainSamples += len(samples)
		}
		recordSampleMetrics(ctx, t.split, len(samples))
		return nil
	}

	if err := runWorkers(ctx, tasks, opts.Jobs, newWorker, process, consume); err != nil {
		return stats, err
	}

	logger.Info("generation finished",
		"files", stats.Files,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"samples", stats.Samples,
	)
	return stats, nil
}

// extractSamples parses one file and materializes a sample per selected
// block.
func extractSamples(
	ctx context.Context, p *parser.Parser, job types.FileJob, extractOpts blocks.Options, maxChunkLen int,
) ([]types.Sample, error) {
	doc, source, err := p.ParseFile(ctx, job.AbsPath)
	if err != nil {
		return nil, &FileError{Path: job.DisplayPath, Err: err}
	}

	text := string(source)
	nodes := blocks.Extract(doc, extractOpts)
	samples := make([]types.Sample, 0, len(nodes))
	for _, n := range nodes {
		samples = append(samples, blocks.Materialize(job.DisplayPath, text, n, maxChunkLen))
	}
	return samples, nil
}

func collectFiles(opts GenerateOptions) ([]types.FileJob, error) {
	component := lang.Get("svelte")
	if component == nil {
		return nil, fmt.Errorf("svelte: %w", parser.ErrNoGrammar)
	}

	if opts.File != "" {
		sc := scanner.New(scanner.Config{Language: component})
		job, err := sc.CollectSingle(opts.File)
		if err != nil {
			return nil, err
		}
		return []types.FileJob{job}, nil
	}

	cfg := scanner.Config{
		Root:         opts.Path,
		Language:     component,
		UseGitignore: !opts.SkipGitignore,
	}
	if opts.MaxBytes > 0 {
		cfg.MaxBytes = opts.MaxBytes
	}
	if opts.IgnoreDirs != nil {
		cfg.IgnoreDirs = make(map[string]struct{}, len(opts.IgnoreDirs))
		for _, d := range opts.IgnoreDirs {
			cfg.IgnoreDirs[d] = struct{}{}
		}
	}

	files, err := scanner.New(cfg).Collect()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.Path, err)
	}
	return files, nil
}

