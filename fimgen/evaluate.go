package fimgen

import "github.com/arjunmahishi/fimgen/eval"

// Metrics scores a generation file.
func Metrics(opts MetricsOptions) (eval.Result, error) {
	if opts.File == "" {
		return eval.Result{}, ErrFileRequired
	}
	records, err := eval.ReadGenerationsFile(opts.File)
	if err != nil {
		return eval.Result{}, err
	}
	return eval.Metrics(records)
}

// Compare pairs one baseline generation with the fine-tuned generation for
// the same prompt.
func Compare(opts CompareOptions) (eval.Comparison, error) {
	if opts.Baseline == "" || opts.Finetuned == "" {
		return eval.Comparison{}, ErrFileRequired
	}

	baseline, err := eval.ReadGenerationsFile(opts.Baseline)
	if err != nil {
		return eval.Comparison{}, err
	}
	finetuned, err := eval.ReadGenerationsFile(opts.Finetuned)
	if err != nil {
		return eval.Comparison{}, err
	}

	return eval.Compare(baseline, finetuned, eval.CompareOptions{
		Index:        opts.Index,
		ContextLines: opts.ContextLines,
		Rand:         opts.Rand,
	})
}
