// Package types defines shared data types for fimgen.
package types

// Position represents a location in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range represents a span in a source file.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Sample is one fill-in-the-middle training example.
type Sample struct {
	FilePath string `json:"filePath"`
	Prefix   string `json:"prefix"`
	Middle   string `json:"middle"`
	Suffix   string `json:"suffix"`
}

// Candidate describes a selected span of a file, as reported by inspect.
type Candidate struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"` // byte offset, inclusive
	End   int    `json:"end"`   // byte offset, exclusive
	Range Range  `json:"range"`
	Text  string `json:"text,omitempty"`
}

// TemplateNode is one node of the converted markup tree. Role tells how
// it hangs off its parent: child, else, elseif, pending, then or catch.
type TemplateNode struct {
	Kind     string         `json:"kind"`
	Role     string         `json:"role"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Children []TemplateNode `json:"children,omitempty"`
}

// FileCandidates groups the candidates of one file.
type FileCandidates struct {
	File       string        `json:"file"`
	Length     int           `json:"length"`
	MinSpan    int           `json:"min_span"`
	MaxSpan    int           `json:"max_span"`
	Candidates []Candidate   `json:"candidates"`
	Template   *TemplateNode `json:"template,omitempty"`
}

// Split names a dataset partition.
type Split string

const (
	SplitTrain Split = "train"
	SplitTest  Split = "test"
)

// Stats aggregates the outcome of a generation run.
type Stats struct {
	Files        int `json:"files"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`
	Samples      int `json:"samples"`
	TrainSamples int `json:"train_samples"`
	TestSamples  int `json:"test_samples"`
}

// Generation is one line of a model generation file: a sample with the
// expected middle and what the model produced for it.
type Generation struct {
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Expected  string `json:"expected"`
	Generated string `json:"generated"`
}

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
}
