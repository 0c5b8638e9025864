package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/arjunmahishi/fimgen/fimgen"
	"github.com/arjunmahishi/fimgen/types"
)

// styles holds the color formatters of the run summary.
type styles struct {
	heading *color.Color
	ok      *color.Color
	failed  *color.Color
	path    *color.Color
}

func newStyles() *styles {
	return &styles{
		heading: color.New(color.Bold),
		ok:      color.New(color.FgHiGreen),
		failed:  color.New(color.FgHiRed),
		path:    color.New(color.FgHiBlue),
	}
}

// printSummary writes the human readable result of a generate run.
func printSummary(w io.Writer, stats types.Stats, opts fimgen.GenerateOptions) {
	s := newStyles()

	failed := s.ok
	if stats.Failed > 0 {
		failed = s.failed
	}

	s.heading.Fprint(w, "Files:   ")
	fmt.Fprintf(w, "%d (%s, %s)\n",
		stats.Files,
		s.ok.Sprintf("%d ok", stats.Succeeded),
		failed.Sprintf("%d failed", stats.Failed),
	)

	s.heading.Fprint(w, "Samples: ")
	fmt.Fprintf(w, "%d (%d train, %d test)\n", stats.Samples, stats.TrainSamples, stats.TestSamples)

	if opts.Sink != nil {
		return
	}
	trainOut, testOut := opts.TrainOut, opts.TestOut
	if trainOut == "" {
		trainOut = fimgen.DefaultTrainOut
	}
	if testOut == "" {
		testOut = fimgen.DefaultTestOut
	}
	s.heading.Fprint(w, "Train:   ")
	s.path.Fprintln(w, trainOut)
	s.heading.Fprint(w, "Test:    ")
	s.path.Fprintln(w, testOut)
}
