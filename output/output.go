// Package output provides output formatting for fimgen.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arjunmahishi/fimgen/types"
)

// Writer handles structured output.
type Writer struct {
	encoder *json.Encoder
	compact bool
}

// Config holds output configuration.
type Config struct {
	Compact bool
	Output  io.Writer
}

// New creates a new output Writer.
func New(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	enc := newEncoder(cfg.Output)
	if !cfg.Compact {
		enc.SetIndent("", "  ")
	}

	return &Writer{
		encoder: enc,
		compact: cfg.Compact,
	}
}

// Write outputs a value as JSON.
func (w *Writer) Write(v any) error {
	return w.encoder.Encode(v)
}

// WriteError writes an error object to w.
func WriteError(w io.Writer, err error) {
	_ = newEncoder(w).Encode(map[string]any{
		"error": err.Error(),
	})
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// SplitWriter writes samples as JSON lines, routing each one to the train
// or test stream.
type SplitWriter struct {
	train   *json.Encoder
	test    *json.Encoder
	closers []io.Closer
}

// NewSplitWriter creates a SplitWriter over two streams.
func NewSplitWriter(train, test io.Writer) *SplitWriter {
	return &SplitWriter{
		train: newEncoder(train),
		test:  newEncoder(test),
	}
}

// OpenSplitFiles opens the train and test files for writing, creating them
// and their parent directories as needed. With appendMode set, existing
// content is kept; otherwise the files are truncated.
func OpenSplitFiles(trainPath, testPath string, appendMode bool) (*SplitWriter, error) {
	if filepath.Clean(trainPath) == filepath.Clean(testPath) {
		return nil, fmt.Errorf("train and test output are the same file: %s", trainPath)
	}

	train, err := openOutput(trainPath, appendMode)
	if err != nil {
		return nil, err
	}
	test, err := openOutput(testPath, appendMode)
	if err != nil {
		train.Close()
		return nil, err
	}

	w := NewSplitWriter(train, test)
	w.closers = []io.Closer{train, test}
	return w, nil
}

func openOutput(path string, appendMode bool) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return f, nil
}

// Write appends one sample to the stream of its split.
func (w *SplitWriter) Write(split types.Split, sample types.Sample) error {
	switch split {
	case types.SplitTrain:
		return w.train.Encode(sample)
	case types.SplitTest:
		return w.test.Encode(sample)
	default:
		return fmt.Errorf("unknown split %q", split)
	}
}

// Close closes the files opened by OpenSplitFiles. It is a no-op for
// writers created with NewSplitWriter.
func (w *SplitWriter) Close() error {
	var errs []error
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
