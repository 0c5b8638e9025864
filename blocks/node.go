// Package blocks selects critical blocks from a parsed component file: the
// subtrees worth masking out as fill-in-the-middle targets.
package blocks

// NoPos marks a missing offset.
const NoPos = -1

// Kind identifies the grammar production of a node. Template kinds follow
// the Svelte compiler vocabulary, script kinds follow ESTree.
type Kind string

// Template kinds.
const (
	KindFragment       Kind = "Fragment"
	KindText           Kind = "Text"
	KindElement        Kind = "Element"
	KindComment        Kind = "Comment"
	KindMustacheTag    Kind = "MustacheTag"
	KindRawMustacheTag Kind = "RawMustacheTag"
	KindConstTag       Kind = "ConstTag"
	KindIfBlock        Kind = "IfBlock"
	KindElseBlock      Kind = "ElseBlock"
	KindEachBlock      Kind = "EachBlock"
	KindAwaitBlock     Kind = "AwaitBlock"
	KindPendingBlock   Kind = "PendingBlock"
	KindThenBlock      Kind = "ThenBlock"
	KindCatchBlock     Kind = "CatchBlock"
	KindKeyBlock       Kind = "KeyBlock"
)

// Script kinds.
const (
	KindProgram                  Kind = "Program"
	KindImportDeclaration        Kind = "ImportDeclaration"
	KindExportNamedDeclaration   Kind = "ExportNamedDeclaration"
	KindExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	KindExportAllDeclaration     Kind = "ExportAllDeclaration"
	KindFunctionDeclaration      Kind = "FunctionDeclaration"
	KindBlockStatement           Kind = "BlockStatement"
	KindIfStatement              Kind = "IfStatement"
	KindIdentifier               Kind = "Identifier"
)

// Node is a syntax tree node reduced to what block selection needs.
//
// Offsets are byte offsets into the file, half-open. The walkers only read
// nodes; a Node produced by Merge or by the parameter span carries nothing
// but Kind, Start and End.
type Node struct {
	Kind  Kind
	Start int
	End   int

	Children []*Node

	// Branches stored outside Children by block constructs.
	Else    *Node
	ElseIf  *Node
	Pending *Node
	Then    *Node
	Catch   *Node

	// Script structure.
	Statements []*Node // Program and BlockStatement bodies
	Body       *Node   // function body
	Params     []*Node
	Test       *Node
	Consequent *Node
	Alternate  *Node
}

// Span returns a node that covers [start, end) and nothing else.
func Span(kind Kind, start, end int) *Node {
	return &Node{Kind: kind, Start: start, End: end}
}

// HasSpan reports whether both offsets are present and ordered.
func (n *Node) HasSpan() bool {
	return n != nil && n.Start != NoPos && n.End != NoPos && n.Start <= n.End
}

// Len returns End-Start, or 0 when the span is missing.
func (n *Node) Len() int {
	if !n.HasSpan() {
		return 0
	}
	return n.End - n.Start
}

// Role tells how a structural child hangs off its parent.
type Role int

const (
	RoleChild Role = iota
	RoleElse
	RoleElseIf
	RolePending
	RoleThen
	RoleCatch
)

func (r Role) String() string {
	switch r {
	case RoleChild:
		return "child"
	case RoleElse:
		return "else"
	case RoleElseIf:
		return "elseif"
	case RolePending:
		return "pending"
	case RoleThen:
		return "then"
	case RoleCatch:
		return "catch"
	default:
		return "unknown"
	}
}

// Edge is a structural child together with its role.
type Edge struct {
	Role Role
	Node *Node
}

// StructuralChildren returns the template edges of n in traversal order:
// generic children first, then the branches of the block construct n is.
// Absent branches are left out.
func (n *Node) StructuralChildren() []Edge {
	if n == nil {
		return nil
	}

	edges := make([]Edge, 0, len(n.Children)+3)
	for _, c := range n.Children {
		edges = append(edges, Edge{Role: RoleChild, Node: c})
	}

	switch n.Kind {
	case KindIfBlock:
		edges = appendBranch(edges, RoleElse, n.Else)
		edges = appendBranch(edges, RoleElseIf, n.ElseIf)
	case KindAwaitBlock:
		edges = appendBranch(edges, RolePending, n.Pending)
		edges = appendBranch(edges, RoleThen, n.Then)
		edges = appendBranch(edges, RoleCatch, n.Catch)
	case KindEachBlock:
		edges = appendBranch(edges, RoleElse, n.Else)
	}

	return edges
}

func appendBranch(edges []Edge, role Role, n *Node) []Edge {
	if n == nil {
		return edges
	}
	return append(edges, Edge{Role: role, Node: n})
}

// Document is a parsed component file.
type Document struct {
	// Length is the byte length of the whole file.
	Length int

	// Template is the markup root. May be nil.
	Template *Node

	// Script is the Program of the instance script. May be nil.
	Script *Node
}
