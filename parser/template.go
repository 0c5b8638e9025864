package parser

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/fimgen/blocks"
)

// convertTemplate converts the document root into the markup tree. Script
// and style elements are not part of the markup.
func convertTemplate(root *sitter.Node, source []byte) *blocks.Node {
	doc := nodeSpan(templateKind(root), root, 0)
	for _, child := range markupChildren(root) {
		switch child.Type() {
		case svelteScriptElement, svelteStyleElement:
			continue
		}
		doc.Children = append(doc.Children, convertMarkup(child, source))
	}
	return doc
}

func templateKind(n *sitter.Node) blocks.Kind {
	if k, ok := templateKinds[n.Type()]; ok {
		return k
	}
	return blocks.Kind(n.Type())
}

// markupChildren returns the named children of n that hold content; tags
// carry attributes, which are not part of the markup tree.
func markupChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case svelteStartTag, svelteEndTag, svelteSelfClosingTag:
			continue
		}
		children = append(children, child)
	}
	return children
}

func convertMarkup(n *sitter.Node, source []byte) *blocks.Node {
	kind := templateKind(n)
	switch kind {
	case blocks.KindText, blocks.KindMustacheTag, blocks.KindRawMustacheTag, blocks.KindConstTag:
		return nodeSpan(kind, n, 0)
	case blocks.KindIfBlock, blocks.KindEachBlock, blocks.KindAwaitBlock, blocks.KindKeyBlock:
		return convertBlock(kind, n, source)
	}

	node := nodeSpan(kind, n, 0)
	for _, child := range markupChildren(n) {
		if isBlockTag(child.Type()) {
			continue
		}
		node.Children = append(node.Children, convertMarkup(child, source))
	}
	return node
}

// segment is one branch of a block: the nodes between two block tags.
type segment struct {
	role  blocks.Role
	start int
	end   int
	nodes []*blocks.Node
}

func (s *segment) node(kind blocks.Kind) *blocks.Node {
	start, end := s.start, s.end
	if start == blocks.NoPos && len(s.nodes) > 0 {
		start = s.nodes[0].Start
	}
	if end == blocks.NoPos && len(s.nodes) > 0 {
		end = s.nodes[len(s.nodes)-1].End
	}
	return &blocks.Node{Kind: kind, Start: start, End: end, Children: s.nodes}
}

// splitSegments cuts the children of a block into branches, in source
// order. The grammar nests every later branch inside the container of the
// branch before it ({:else} inside {:else if}, {:catch} inside {:then}) and
// puts the closing tag inside the last container, so containers are walked
// recursively and each one opens a new segment.
func splitSegments(n *sitter.Node, source []byte, mainRole blocks.Role) []*segment {
	cur := &segment{role: mainRole, start: blocks.NoPos, end: blocks.NoPos}
	segments := []*segment{cur}

	closeAt := func(pos int) {
		if cur.end == blocks.NoPos {
			cur.end = pos
		}
	}
	open := func(role blocks.Role, start int) {
		cur = &segment{role: role, start: start, end: blocks.NoPos}
		segments = append(segments, cur)
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for _, child := range markupChildren(n) {
			typ := child.Type()
			start, end := int(child.StartByte()), int(child.EndByte())

			if role, ok := branchContainers[typ]; ok {
				closeAt(start)
				open(role, start)
				walk(child)
				closeAt(end)
				continue
			}

			if role, ok := branchMarkers[typ]; ok {
				// The tag opening a container belongs to the segment the
				// container already opened.
				if cur.role == role && cur.start == start && len(cur.nodes) == 0 {
					cur.start = end
					continue
				}
				closeAt(start)
				open(role, end)
				continue
			}

			switch {
			case strings.HasSuffix(typ, "_start_expr"):
				cur.start = end
			case strings.HasSuffix(typ, "_end_expr"):
				closeAt(start)
			case isBlockTag(typ):
				// Block tag pieces carry no markup.
			default:
				cur.nodes = append(cur.nodes, convertMarkup(child, source))
			}
		}
	}
	walk(n)

	return segments
}

// isBlockTag reports whether typ is a tag that opens, continues or closes a
// block.
func isBlockTag(typ string) bool {
	if _, ok := branchMarkers[typ]; ok {
		return true
	}
	return strings.HasSuffix(typ, "_start_expr") || strings.HasSuffix(typ, "_end_expr")
}

// convertBlock converts an if, each, await or key block, moving alternate
// branches out of the child list into the branch fields.
func convertBlock(kind blocks.Kind, n *sitter.Node, source []byte) *blocks.Node {
	mainRole := blocks.RoleChild
	if kind == blocks.KindAwaitBlock {
		mainRole = awaitMainRole(n, source)
	}

	segments := splitSegments(n, source, mainRole)
	block := nodeSpan(kind, n, 0)

	// Else-if branches chain: each one hangs off the previous branch, and a
	// final else hangs off the last of them.
	tail := block
	for _, seg := range segments {
		switch seg.role {
		case blocks.RoleChild:
			block.Children = append(block.Children, seg.nodes...)
		case blocks.RoleElseIf:
			next := seg.node(blocks.KindIfBlock)
			tail.ElseIf = next
			tail = next
		case blocks.RoleElse:
			tail.Else = seg.node(blocks.KindElseBlock)
		case blocks.RolePending:
			block.Pending = seg.node(blocks.KindPendingBlock)
		case blocks.RoleThen:
			block.Then = seg.node(blocks.KindThenBlock)
		case blocks.RoleCatch:
			block.Catch = seg.node(blocks.KindCatchBlock)
		}
	}

	return block
}

var (
	awaitThenRe  = regexp.MustCompile(`\bthen\b`)
	awaitCatchRe = regexp.MustCompile(`\bcatch\b`)
)

// awaitMainRole decides which branch the content right after the opening
// tag belongs to: {#await p} opens the pending branch, while the shorthand
// {#await p then v} and {#await p catch e} skip it.
func awaitMainRole(n *sitter.Node, source []byte) blocks.Role {
	for _, child := range markupChildren(n) {
		if !strings.HasSuffix(child.Type(), "_start_expr") {
			continue
		}
		opener := child.Content(source)
		if awaitThenRe.MatchString(opener) {
			return blocks.RoleThen
		}
		if awaitCatchRe.MatchString(opener) {
			return blocks.RoleCatch
		}
		return blocks.RolePending
	}
	return blocks.RolePending
}
