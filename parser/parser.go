// Package parser turns Svelte component source into the node model of
// package blocks, using tree-sitter grammars.
package parser

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/fimgen/blocks"
	"github.com/arjunmahishi/fimgen/lang"
)

// Options configures a Parser.
type Options struct {
	// AllowErrors keeps files whose trees contain syntax errors. Error
	// nodes are then converted like any other node.
	AllowErrors bool
}

// Parser parses component files. A Parser holds tree-sitter parser state
// and must not be used from more than one goroutine at a time; create one
// per worker.
type Parser struct {
	opts      Options
	component lang.Language
	parsers   map[string]*sitter.Parser
}

// New creates a Parser for Svelte components.
func New(opts Options) (*Parser, error) {
	component := lang.Get("svelte")
	if component == nil {
		return nil, fmt.Errorf("svelte: %w", ErrNoGrammar)
	}
	return &Parser{
		opts:      opts,
		component: component,
		parsers:   make(map[string]*sitter.Parser),
	}, nil
}

// parserFor returns the cached tree-sitter parser of a language.
func (p *Parser) parserFor(language lang.Language) *sitter.Parser {
	if sp, ok := p.parsers[language.Name()]; ok {
		return sp
	}
	sp := sitter.NewParser()
	sp.SetLanguage(language.TreeSitterLang())
	p.parsers[language.Name()] = sp
	return sp
}

// ParseFile reads and parses a file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*blocks.Document, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := p.Parse(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	return doc, source, nil
}

// Parse parses a component. The template root excludes script and style
// elements; the script root is the Program of the instance script (the
// first <script> without a module context), or nil when there is none.
func (p *Parser) Parse(ctx context.Context, source []byte) (*blocks.Document, error) {
	if !utf8.Valid(source) {
		return nil, ErrInvalidContent
	}

	tree, err := p.parserFor(p.component).ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := p.checkTree(root, RegionTemplate); err != nil {
		return nil, err
	}

	doc := &blocks.Document{
		Length:   len(source),
		Template: convertTemplate(root, source),
	}

	script := findInstanceScript(root, source)
	if script == nil {
		return doc, nil
	}

	doc.Script, err = p.ParseScript(ctx, source[script.start:script.end], script.start, script.dialect)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseScript parses script source that starts at offset in the enclosing
// file and returns its Program with offsets in file coordinates.
func (p *Parser) ParseScript(ctx context.Context, source []byte, offset int, dialect string) (*blocks.Node, error) {
	language := lang.Get(dialect)
	if language == nil {
		return nil, fmt.Errorf("%s: %w", dialect, ErrNoGrammar)
	}

	tree, err := p.parserFor(language).ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", dialect, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := p.checkTree(root, dialect); err != nil {
		return nil, err
	}

	c := scriptConverter{offset: offset}
	return c.program(root), nil
}

// checkTree fails with a SyntaxError when the tree has errors and errors
// are not allowed.
func (p *Parser) checkTree(root *sitter.Node, region string) error {
	if root == nil {
		return fmt.Errorf("%s: empty tree: %w", region, ErrParseFailed)
	}
	if p.opts.AllowErrors || !root.HasError() {
		return nil
	}

	bad := firstError(root)
	if bad == nil {
		return &SyntaxError{Region: region, Line: 1, Column: 1, NodeType: root.Type()}
	}
	pos := bad.StartPoint()
	return &SyntaxError{
		Region:   region,
		Line:     int(pos.Row) + 1,
		Column:   int(pos.Column) + 1,
		NodeType: bad.Type(),
		Missing:  bad.IsMissing(),
	}
}

// firstError returns the first error or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// nodeSpan converts a tree-sitter node's byte range, shifted by offset.
// Nodes the grammar inserted without source text get no span.
func nodeSpan(kind blocks.Kind, n *sitter.Node, offset int) *blocks.Node {
	if n.IsMissing() {
		return blocks.Span(kind, blocks.NoPos, blocks.NoPos)
	}
	return blocks.Span(kind, int(n.StartByte())+offset, int(n.EndByte())+offset)
}

// namedChildren returns the named children of n, comments excluded.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == jsNodeComment {
			continue
		}
		children = append(children, child)
	}
	return children
}
