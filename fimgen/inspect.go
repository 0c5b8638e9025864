package fimgen

import (
	"context"
	"sort"

	"github.com/arjunmahishi/fimgen/blocks"
	"github.com/arjunmahishi/fimgen/parser"
	"github.com/arjunmahishi/fimgen/types"
)

// Inspect returns the blocks selected in one component, in selection
// order, with their byte offsets and line/column ranges.
func Inspect(ctx context.Context, opts InspectOptions) (types.FileCandidates, error) {
	if opts.File == "" {
		return types.FileCandidates{}, ErrFileRequired
	}

	p, err := parser.New(parser.Options{AllowErrors: opts.AllowParseErrors})
	if err != nil {
		return types.FileCandidates{}, err
	}

	doc, source, err := p.ParseFile(ctx, opts.File)
	if err != nil {
		return types.FileCandidates{}, &FileError{Path: opts.File, Err: err}
	}

	window := blocks.NewWindow(doc.Length)
	lines := newLineIndex(source)
	result := types.FileCandidates{
		File:       opts.File,
		Length:     doc.Length,
		MinSpan:    window.Min,
		MaxSpan:    window.Max,
		Candidates: []types.Candidate{},
	}

	for _, n := range blocks.Extract(doc, blocks.Options{FlushTrailingRun: opts.FlushTrailingRun}) {
		c := types.Candidate{
			Kind:  string(n.Kind),
			Start: n.Start,
			End:   n.End,
			Range: types.Range{
				Start: lines.position(n.Start),
				End:   lines.position(n.End),
			},
		}
		if opts.IncludeText {
			c.Text = string(source[n.Start:n.End])
		}
		result.Candidates = append(result.Candidates, c)
	}

	if opts.IncludeTemplate && doc.Template != nil {
		tree := templateTree(doc.Template, blocks.RoleChild)
		result.Template = &tree
	}

	return result, nil
}

// templateTree renders n and its structural edges. Text nodes are kept so
// that the tree shows everything the walker sees.
func templateTree(n *blocks.Node, role blocks.Role) types.TemplateNode {
	out := types.TemplateNode{
		Kind:  string(n.Kind),
		Role:  role.String(),
		Start: n.Start,
		End:   n.End,
	}
	for _, e := range n.StructuralChildren() {
		out.Children = append(out.Children, templateTree(e.Node, e.Role))
	}
	return out
}

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex []int

func newLineIndex(source []byte) lineIndex {
	starts := lineIndex{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (l lineIndex) position(offset int) types.Position {
	line := sort.Search(len(l), func(i int) bool { return l[i] > offset }) - 1
	return types.Position{Line: line + 1, Column: offset - l[line] + 1}
}
