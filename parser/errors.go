package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for parse failures. Check them with errors.Is.
var (
	// ErrParseFailed indicates the source has syntax errors or the grammar
	// could not produce a tree.
	ErrParseFailed = errors.New("parse failed")

	// ErrInvalidContent indicates the source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrNoGrammar indicates a grammar needed for the file is not registered.
	ErrNoGrammar = errors.New("grammar not registered")
)

// RegionTemplate is the SyntaxError region of errors in the component
// markup.
const RegionTemplate = "template"

// SyntaxError locates the first syntax error of a tree.
type SyntaxError struct {
	// Region is RegionTemplate or the script dialect.
	Region string

	// Line is 1-indexed, Column is 1-indexed.
	Line   int
	Column int

	// NodeType is the tree-sitter type of the offending node.
	NodeType string

	// Missing is set when the grammar inserted a node that is absent from
	// the source rather than skipping unparseable input.
	Missing bool
}

func (e *SyntaxError) Error() string {
	what := "unexpected input"
	if e.Missing {
		what = "missing " + e.NodeType
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Region, e.Line, e.Column, what)
}

// Is makes a SyntaxError match ErrParseFailed.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrParseFailed
}
