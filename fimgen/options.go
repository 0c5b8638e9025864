package fimgen

import (
	"log/slog"
	"math/rand/v2"
	"runtime"

	"github.com/arjunmahishi/fimgen/types"
)

// Defaults applied to zero-valued options.
const (
	DefaultMaxChunkLen = 8000
	DefaultTestRatio   = 0.02
	DefaultMaxBytes    = 2 * 1024 * 1024
	DefaultTrainOut    = "dataset.train.jsonl"
	DefaultTestOut     = "dataset.test.jsonl"
)

// SampleSink receives generated samples.
type SampleSink interface {
	Write(split types.Split, sample types.Sample) error
}

// GenerateOptions configures the Generate function.
type GenerateOptions struct {
	// Path is the root directory to scan for components.
	// If empty, current directory is used.
	Path string

	// File is a single component to process.
	// If set, Path is ignored.
	File string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB. Negative values disable the limit.
	MaxBytes int64

	// MaxChunkLen is the byte budget of prefix, middle and suffix together.
	// If 0, defaults to 8000.
	MaxChunkLen int

	// TestRatio is the probability that a file goes to the test split.
	// If 0, defaults to 0.02. Negative values send every file to train.
	TestRatio float64

	// Seed makes split decisions reproducible.
	// If 0, a random seed is used. Ignored when Rand is set.
	Seed uint64

	// Rand draws split decisions.
	Rand *rand.Rand

	// TrainOut and TestOut are the JSONL files samples are written to.
	// If empty, default to dataset.train.jsonl and dataset.test.jsonl.
	TrainOut string
	TestOut  string

	// Truncate empties the output files first instead of appending.
	Truncate bool

	// Sink receives the samples instead of the output files.
	Sink SampleSink

	// FlushTrailingRun emits an import or export run that is still open
	// at the end of a script.
	FlushTrailingRun bool

	// AllowParseErrors keeps files whose syntax trees contain errors.
	AllowParseErrors bool

	// SkipGitignore disables .gitignore matching during the scan.
	SkipGitignore bool

	// IgnoreDirs replaces the default set of skipped directory names.
	IgnoreDirs []string

	// Logger receives progress and per-file failures.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.Path == "" {
		o.Path = "."
	}
	if o.Jobs == 0 {
		o.Jobs = runtime.NumCPU()
	}
	if o.MaxBytes == 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.MaxChunkLen == 0 {
		o.MaxChunkLen = DefaultMaxChunkLen
	}
	if o.TestRatio == 0 {
		o.TestRatio = DefaultTestRatio
	}
	if o.TrainOut == "" {
		o.TrainOut = DefaultTrainOut
	}
	if o.TestOut == "" {
		o.TestOut = DefaultTestOut
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// InspectOptions configures the Inspect function.
type InspectOptions struct {
	// File is the component to analyze (required).
	File string

	// IncludeText includes the text of each candidate.
	IncludeText bool

	// IncludeTemplate adds the converted markup tree, with the role of
	// every edge.
	IncludeTemplate bool

	FlushTrailingRun bool
	AllowParseErrors bool
}

// MetricsOptions configures the Metrics function.
type MetricsOptions struct {
	// File is a generation JSONL file (required).
	File string
}

// CompareOptions configures the Compare function.
type CompareOptions struct {
	// Baseline and Finetuned are generation JSONL files (required).
	Baseline  string
	Finetuned string

	// Index selects the baseline record.
	// If negative, a record is picked at random.
	Index int

	// ContextLines trims the prefix and suffix to this many lines.
	// If 0, the full context is kept.
	ContextLines int

	// Rand picks the record when Index is negative.
	Rand *rand.Rand
}
