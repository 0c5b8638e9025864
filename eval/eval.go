// Package eval scores model generations against the expected middles of a
// fill-in-the-middle dataset.
package eval

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arjunmahishi/fimgen/types"
)

// Special tokens a model may emit around its answer.
const (
	tokenFileSep = "<|file_sep|>"
	tokenFimPad  = "<|fim_pad|>"
)

// maxLineBytes bounds a single JSONL record.
const maxLineBytes = 64 * 1024 * 1024

var (
	// ErrNoRecords is returned when a generation file holds no records.
	ErrNoRecords = errors.New("no generation records")
)

// Clean strips special tokens from generated text.
func Clean(generated string) string {
	generated = strings.ReplaceAll(generated, tokenFileSep, "")
	return strings.ReplaceAll(generated, tokenFimPad, "")
}

// ReadGenerations decodes one Generation per non-empty line of r.
func ReadGenerations(r io.Reader) ([]types.Generation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []types.Generation
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var g types.Generation
		if err := json.Unmarshal([]byte(text), &g); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read generations: %w", err)
	}
	return records, nil
}

// ReadGenerationsFile reads a generation JSONL file.
func ReadGenerationsFile(path string) ([]types.Generation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open generations: %w", err)
	}
	defer f.Close()

	records, err := ReadGenerations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Result holds the scores of a generation file.
type Result struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
	BLEU     float64 `json:"bleu"`
}

// Metrics computes exact-match accuracy and corpus BLEU over records. A
// generation matches when it equals the expected middle once special
// tokens are removed.
func Metrics(records []types.Generation) (Result, error) {
	if len(records) == 0 {
		return Result{}, ErrNoRecords
	}

	var res Result
	hypotheses := make([][]string, 0, len(records))
	references := make([][]string, 0, len(records))
	for _, r := range records {
		generated := Clean(r.Generated)
		if generated == r.Expected {
			res.Correct++
		}
		res.Total++

		hypotheses = append(hypotheses, Tokenize(generated))
		references = append(references, Tokenize(r.Expected))
	}

	res.Accuracy = float64(res.Correct) / float64(res.Total)
	res.BLEU = CorpusBLEU(references, hypotheses)
	return res, nil
}

// String renders the result as the metrics report.
func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total: %d\n", r.Total)
	fmt.Fprintf(&sb, "[Exact Match] Correct: %d\n", r.Correct)
	fmt.Fprintf(&sb, "[Exact Match] Accuracy: %.2f\n", r.Accuracy)
	fmt.Fprintf(&sb, "BLEU Score: %.4f\n", r.BLEU)
	return sb.String()
}
