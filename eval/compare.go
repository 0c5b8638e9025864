package eval

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/arjunmahishi/fimgen/types"
)

var (
	// ErrIndexOutOfRange is returned for a baseline index past the records.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoMatch is returned when the fine-tuned records hold no record
	// with the chosen baseline prefix.
	ErrNoMatch = errors.New("no fine-tuned record with matching prefix")
)

// CompareOptions configures Compare.
type CompareOptions struct {
	// Index selects the baseline record.
	// If negative, a record is picked with Rand.
	Index int

	// ContextLines keeps only the last lines of the prefix and the first
	// lines of the suffix. If 0, the full context is kept.
	ContextLines int

	// Rand picks the record when Index is negative.
	// If nil, a randomly seeded source is used.
	Rand *rand.Rand
}

// Comparison pairs a baseline generation with the fine-tuned generation
// for the same prompt.
type Comparison struct {
	Index     int    `json:"index"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Expected  string `json:"expected"`
	Baseline  string `json:"baseline"`
	Finetuned string `json:"post_finetune"`
}

// PromptKey identifies a prompt by the md5 of its prefix.
func PromptKey(prefix string) string {
	sum := md5.Sum([]byte(prefix))
	return hex.EncodeToString(sum[:])
}

// Compare picks one baseline record and finds the fine-tuned record that
// was generated from the same prefix.
func Compare(baseline, finetuned []types.Generation, opts CompareOptions) (Comparison, error) {
	if len(baseline) == 0 {
		return Comparison{}, fmt.Errorf("baseline: %w", ErrNoRecords)
	}

	idx := opts.Index
	if idx < 0 {
		r := opts.Rand
		if r == nil {
			r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		idx = r.IntN(len(baseline))
	}
	if idx >= len(baseline) {
		return Comparison{}, fmt.Errorf("%d of %d records: %w", idx, len(baseline), ErrIndexOutOfRange)
	}

	base := baseline[idx]
	key := PromptKey(base.Prefix)

	for _, ft := range finetuned {
		if PromptKey(ft.Prefix) != key {
			continue
		}
		c := Comparison{
			Index:     idx,
			Prefix:    base.Prefix,
			Suffix:    base.Suffix,
			Expected:  base.Expected,
			Baseline:  Clean(base.Generated),
			Finetuned: Clean(ft.Generated),
		}
		if opts.ContextLines > 0 {
			c.Prefix = lastLines(c.Prefix, opts.ContextLines)
			c.Suffix = firstLines(c.Suffix, opts.ContextLines)
		}
		return c, nil
	}

	return Comparison{}, fmt.Errorf("baseline record %d: %w", idx, ErrNoMatch)
}

// String renders the comparison with the three answers tagged in place of
// the middle.
func (c Comparison) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Example #%d\n", c.Index)
	sb.WriteString(c.Prefix)
	sb.WriteString("<expected>" + c.Expected + "</expected>")
	sb.WriteString("<baseline>" + c.Baseline + "</baseline>")
	sb.WriteString("<post_finetune>" + c.Finetuned + "</post_finetune>")
	sb.WriteString(c.Suffix)
	sb.WriteString("\n")
	return sb.String()
}

func lastLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func firstLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
