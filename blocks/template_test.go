package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// spans flattens selected nodes to [start, end) pairs for comparison.
func spans(nodes []*Node) [][2]int {
	out := make([][2]int, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, [2]int{n.Start, n.End})
	}
	return out
}

func runTemplate(length int, root *Node) []*Node {
	s := &selector{window: NewWindow(length)}
	s.walkTemplate(root)
	return s.selected
}

func TestWalkTemplate(t *testing.T) {
	t.Run("accepts_in_window_and_descends_rejected", func(t *testing.T) {
		inner := Span(KindElement, 150, 180)
		big := &Node{Kind: KindElement, Start: 100, End: 200, Children: []*Node{inner}}
		small := Span(KindElement, 300, 340)
		root := &Node{Kind: KindFragment, Start: 0, End: 500, Children: []*Node{big, small}}

		got := runTemplate(500, root)
		require.Equal(t, [][2]int{{150, 180}, {300, 340}}, spans(got))
	})

	t.Run("text_never_selected", func(t *testing.T) {
		text := &Node{
			Kind: KindText, Start: 10, End: 40,
			Children: []*Node{Span(KindElement, 12, 30)},
		}
		root := &Node{Kind: KindFragment, Start: 0, End: 500, Children: []*Node{text}}

		require.Empty(t, runTemplate(500, root))
	})

	t.Run("missing_span_skips_subtree", func(t *testing.T) {
		broken := &Node{
			Kind: KindElement, Start: NoPos, End: NoPos,
			Children: []*Node{Span(KindElement, 20, 40)},
		}
		ok := Span(KindMustacheTag, 60, 75)
		root := &Node{Kind: KindFragment, Start: 0, End: 500, Children: []*Node{broken, ok}}

		require.Equal(t, [][2]int{{60, 75}}, spans(runTemplate(500, root)))
	})

	t.Run("if_block_branches_after_children", func(t *testing.T) {
		ifBlock := &Node{
			Kind: KindIfBlock, Start: 0, End: 300,
			Children: []*Node{Span(KindElement, 10, 30)},
			Else: &Node{
				Kind: KindElseBlock, Start: 200, End: 280,
				Children: []*Node{Span(KindElement, 210, 240)},
			},
			ElseIf: &Node{
				Kind: KindIfBlock, Start: 100, End: 140,
				Children: []*Node{Span(KindElement, 110, 130)},
			},
		}

		got := runTemplate(500, ifBlock)
		require.Equal(t, [][2]int{{10, 30}, {210, 240}, {100, 140}, {110, 130}}, spans(got))
	})

	t.Run("await_block_branches", func(t *testing.T) {
		await := &Node{
			Kind: KindAwaitBlock, Start: 0, End: 400,
			Pending: Span(KindPendingBlock, 20, 45),
			Then: &Node{
				Kind: KindThenBlock, Start: 50, End: 150,
				Children: []*Node{Span(KindElement, 60, 90)},
			},
			Catch: Span(KindCatchBlock, 160, 190),
		}

		got := runTemplate(500, await)
		require.Equal(t, [][2]int{{20, 45}, {60, 90}, {160, 190}}, spans(got))
	})

	t.Run("each_block_else", func(t *testing.T) {
		each := &Node{
			Kind: KindEachBlock, Start: 0, End: 120,
			Children: []*Node{Span(KindElement, 10, 30)},
			Else:     Span(KindElseBlock, 80, 110),
		}

		got := runTemplate(500, each)
		require.Equal(t, [][2]int{{10, 30}, {80, 110}}, spans(got))
	})

	t.Run("nil_root", func(t *testing.T) {
		require.Empty(t, runTemplate(500, nil))
	})
}
