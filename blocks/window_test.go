package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   Window
	}{
		{"empty_file", 0, Window{Min: 10, Max: 30}},
		{"small_file_uses_floor", 120, Window{Min: 10, Max: 30}},
		{"tenth_of_length", 500, Window{Min: 10, Max: 50}},
		{"truncates_fraction", 505, Window{Min: 10, Max: 50}},
		{"large_file", 80000, Window{Min: 10, Max: 8000}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NewWindow(tc.length))
		})
	}
}

func TestWindowAccepts(t *testing.T) {
	w := NewWindow(500)

	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"nil_node", nil, false},
		{"missing_start", Span(KindElement, NoPos, 40), false},
		{"missing_end", Span(KindElement, 10, NoPos), false},
		{"inverted_span", Span(KindElement, 40, 10), false},
		{"inside_window", Span(KindElement, 100, 140), true},
		{"at_min", Span(KindElement, 0, 10), true},
		{"below_min", Span(KindElement, 0, 9), false},
		{"at_max", Span(KindElement, 0, 50), true},
		{"above_max", Span(KindElement, 100, 200), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, w.Accepts(tc.node))
		})
	}
}

func TestMerge(t *testing.T) {
	a := Span(KindImportDeclaration, 0, 20)
	b := Span(KindImportDeclaration, 21, 35)
	c := Span(KindImportDeclaration, 36, 50)

	t.Run("empty", func(t *testing.T) {
		require.Nil(t, Merge(nil))
		require.Nil(t, Merge([]*Node{}))
	})

	t.Run("single", func(t *testing.T) {
		got := Merge([]*Node{a})
		require.Equal(t, KindImportDeclaration, got.Kind)
		require.Equal(t, a.Start, got.Start)
		require.Equal(t, a.End, got.End)
	})

	t.Run("run_of_three", func(t *testing.T) {
		got := Merge([]*Node{a, b, c})
		require.Equal(t, Span(KindImportDeclaration, 0, 50), got)
	})

	t.Run("does_not_filter", func(t *testing.T) {
		huge := Span(KindImportDeclaration, 0, 10000)
		require.Equal(t, huge, Merge([]*Node{huge}))
	})
}

func TestStructuralChildren(t *testing.T) {
	child := Span(KindElement, 1, 2)
	elseBranch := Span(KindElseBlock, 3, 4)
	elseIf := Span(KindIfBlock, 5, 6)

	t.Run("if_block_children_then_branches", func(t *testing.T) {
		n := &Node{Kind: KindIfBlock, Children: []*Node{child}, Else: elseBranch, ElseIf: elseIf}
		require.Equal(t, []Edge{
			{Role: RoleChild, Node: child},
			{Role: RoleElse, Node: elseBranch},
			{Role: RoleElseIf, Node: elseIf},
		}, n.StructuralChildren())
	})

	t.Run("await_block_branches", func(t *testing.T) {
		pending := Span(KindPendingBlock, 1, 2)
		catch := Span(KindCatchBlock, 5, 6)
		n := &Node{Kind: KindAwaitBlock, Pending: pending, Catch: catch}
		require.Equal(t, []Edge{
			{Role: RolePending, Node: pending},
			{Role: RoleCatch, Node: catch},
		}, n.StructuralChildren())
	})

	t.Run("branches_ignored_on_other_kinds", func(t *testing.T) {
		n := &Node{Kind: KindElement, Children: []*Node{child}, Else: elseBranch}
		require.Equal(t, []Edge{{Role: RoleChild, Node: child}}, n.StructuralChildren())
	})

	t.Run("nil_node", func(t *testing.T) {
		var n *Node
		require.Empty(t, n.StructuralChildren())
	})
}
