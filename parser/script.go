package parser

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/fimgen/blocks"
)

// scriptRegion locates the content of a <script> element in the file.
type scriptRegion struct {
	start   int
	end     int
	dialect string
}

var scriptAttrRe = regexp.MustCompile(`([A-Za-z_:][\w:.-]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>/]+)))?`)

// scriptAttrs reads the attributes of a script start tag.
func scriptAttrs(tag string) map[string]string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "<")
	tag = strings.TrimSuffix(tag, ">")
	tag = strings.TrimPrefix(tag, "script")

	attrs := make(map[string]string)
	for _, m := range scriptAttrRe.FindAllStringSubmatch(tag, -1) {
		attrs[strings.ToLower(m[1])] = m[2] + m[3] + m[4]
	}
	return attrs
}

// isModuleScript reports whether the tag declares module-level script,
// either as context="module" or as a bare module attribute.
func isModuleScript(attrs map[string]string) bool {
	if attrs["context"] == "module" {
		return true
	}
	_, ok := attrs["module"]
	return ok
}

func scriptDialect(attrs map[string]string) string {
	switch strings.ToLower(attrs["lang"]) {
	case "ts", "typescript":
		return "typescript"
	default:
		return "javascript"
	}
}

// findInstanceScript returns the region of the first top-level script
// element that is not module-level, or nil.
func findInstanceScript(root *sitter.Node, source []byte) *scriptRegion {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		el := root.NamedChild(i)
		if el == nil || el.Type() != svelteScriptElement {
			continue
		}

		var startTag, endTag *sitter.Node
		for j := 0; j < int(el.NamedChildCount()); j++ {
			child := el.NamedChild(j)
			switch {
			case child.Type() == svelteEndTag:
				endTag = child
			case startTag == nil && strings.HasSuffix(child.Type(), svelteStartTag):
				startTag = child
			}
		}
		if startTag == nil {
			continue
		}

		attrs := scriptAttrs(startTag.Content(source))
		if isModuleScript(attrs) {
			continue
		}

		region := &scriptRegion{
			start:   int(startTag.EndByte()),
			end:     int(el.EndByte()),
			dialect: scriptDialect(attrs),
		}
		if endTag != nil {
			region.end = int(endTag.StartByte())
		}
		if region.end < region.start {
			region.end = region.start
		}
		return region
	}
	return nil
}

// scriptConverter converts script trees, shifting offsets into file
// coordinates.
type scriptConverter struct {
	offset int
}

func (c scriptConverter) span(kind blocks.Kind, n *sitter.Node) *blocks.Node {
	return nodeSpan(kind, n, c.offset)
}

func (c scriptConverter) program(n *sitter.Node) *blocks.Node {
	prog := c.span(blocks.KindProgram, n)
	for _, child := range namedChildren(n) {
		if child.Type() == jsNodeHashBang {
			continue
		}
		prog.Statements = append(prog.Statements, c.statement(child))
	}
	return prog
}

func (c scriptConverter) statement(n *sitter.Node) *blocks.Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case jsNodeExportStatement:
		return c.span(exportKind(n), n)
	case jsNodeFunctionDeclaration, jsNodeGeneratorFunctionDcl:
		return c.function(n)
	case jsNodeIfStatement:
		return c.ifStatement(n)
	case jsNodeStatementBlock:
		return c.block(n)
	}

	if k, ok := statementKinds[n.Type()]; ok {
		return c.span(k, n)
	}
	return c.span(blocks.Kind(n.Type()), n)
}

// exportKind tells default, star and named exports apart.
func exportKind(n *sitter.Node) blocks.Kind {
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case jsNodeDefault:
			return blocks.KindExportDefaultDeclaration
		case jsNodeStar:
			return blocks.KindExportAllDeclaration
		}
	}
	return blocks.KindExportNamedDeclaration
}

func (c scriptConverter) function(n *sitter.Node) *blocks.Node {
	fn := c.span(blocks.KindFunctionDeclaration, n)

	if params := n.ChildByFieldName(jsFieldParameters); params != nil {
		for _, p := range namedChildren(params) {
			fn.Params = append(fn.Params, c.span(blocks.Kind(p.Type()), p))
		}
	}

	if body := n.ChildByFieldName(jsFieldBody); body != nil {
		fn.Body = c.block(body)
	}
	return fn
}

func (c scriptConverter) block(n *sitter.Node) *blocks.Node {
	block := c.span(blocks.KindBlockStatement, n)
	for _, child := range namedChildren(n) {
		block.Statements = append(block.Statements, c.statement(child))
	}
	return block
}

func (c scriptConverter) ifStatement(n *sitter.Node) *blocks.Node {
	st := c.span(blocks.KindIfStatement, n)

	if cond := n.ChildByFieldName(jsFieldCondition); cond != nil {
		st.Test = c.expression(unwrapParens(cond))
	}
	st.Consequent = c.statement(n.ChildByFieldName(jsFieldConsequence))

	if alt := n.ChildByFieldName(jsFieldAlternative); alt != nil {
		if alt.Type() == jsNodeElseClause {
			inner := namedChildren(alt)
			if len(inner) == 0 {
				return st
			}
			alt = inner[0]
		}
		st.Alternate = c.statement(alt)
	}
	return st
}

func (c scriptConverter) expression(n *sitter.Node) *blocks.Node {
	return c.span(blocks.Kind(n.Type()), n)
}

// unwrapParens returns the expression inside a parenthesized condition.
func unwrapParens(n *sitter.Node) *sitter.Node {
	if n.Type() != jsNodeParenthesized {
		return n
	}
	inner := namedChildren(n)
	if len(inner) == 0 {
		return n
	}
	return inner[0]
}
