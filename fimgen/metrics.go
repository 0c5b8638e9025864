package fimgen

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/arjunmahishi/fimgen/types"
)

var (
	tracer = otel.Tracer("fimgen")
	meter  = otel.Meter("fimgen")
)

// File outcomes recorded on the files counter.
const (
	statusOK     = "ok"
	statusFailed = "failed"
)

var (
	filesTotal    metric.Int64Counter
	samplesTotal  metric.Int64Counter
	fileDuration  metric.Float64Histogram
	samplesByFile metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		filesTotal, err = meter.Int64Counter(
			"fimgen_files_total",
			metric.WithDescription("Files processed, by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		samplesTotal, err = meter.Int64Counter(
			"fimgen_samples_total",
			metric.WithDescription("Samples written, by split"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		fileDuration, err = meter.Float64Histogram(
			"fimgen_file_duration_seconds",
			metric.WithDescription("Time to parse a file and select its blocks"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		samplesByFile, err = meter.Int64Histogram(
			"fimgen_file_samples",
			metric.WithDescription("Samples produced per file"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordFileMetrics(ctx context.Context, duration time.Duration, samples int, err error) {
	if initMetrics() != nil {
		return
	}

	status := statusOK
	if err != nil {
		status = statusFailed
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	filesTotal.Add(ctx, 1, attrs)
	fileDuration.Record(ctx, duration.Seconds(), attrs)
	if err == nil {
		samplesByFile.Record(ctx, int64(samples))
	}
}

func recordSampleMetrics(ctx context.Context, split types.Split, count int) {
	if initMetrics() != nil || count == 0 {
		return
	}
	samplesTotal.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("split", string(split))),
	)
}

func startFileSpan(ctx context.Context, job types.FileJob, split types.Split) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fimgen.File",
		trace.WithAttributes(
			attribute.String("file.path", job.DisplayPath),
			attribute.String("file.split", string(split)),
		),
	)
}

func setGenerateSpanResult(span trace.Span, stats types.Stats) {
	span.SetAttributes(
		attribute.Int("fimgen.files", stats.Files),
		attribute.Int("fimgen.failed", stats.Failed),
		attribute.Int("fimgen.samples", stats.Samples),
	)
}
