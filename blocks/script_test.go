package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func program(statements ...*Node) *Node {
	return &Node{Kind: KindProgram, Start: 0, End: 1000, Statements: statements}
}

func runScript(length int, root *Node, flushTrailing bool) []*Node {
	s := &selector{window: NewWindow(length)}
	s.walkScript(root, flushTrailing)
	return s.selected
}

func TestWalkScriptImportRuns(t *testing.T) {
	imp := func(start, end int) *Node { return Span(KindImportDeclaration, start, end) }
	exp := func(start, end int) *Node { return Span(KindExportNamedDeclaration, start, end) }
	stmt := func(start, end int) *Node { return Span("ExpressionStatement", start, end) }

	tests := []struct {
		name          string
		statements    []*Node
		flushTrailing bool
		want          [][2]int
	}{
		{
			name:       "adjacent_imports_merge_then_split",
			statements: []*Node{imp(0, 20), imp(20, 35), imp(35, 60), stmt(60, 75)},
			want:       [][2]int{{0, 35}, {35, 60}, {60, 75}},
		},
		{
			name:       "trailing_run_dropped",
			statements: []*Node{imp(0, 20), imp(20, 35)},
			want:       [][2]int{},
		},
		{
			name:          "trailing_run_flushed_when_enabled",
			statements:    []*Node{imp(0, 20), imp(20, 35)},
			flushTrailing: true,
			want:          [][2]int{{0, 35}},
		},
		{
			name:       "kind_change_starts_new_run",
			statements: []*Node{imp(0, 15), exp(15, 30), stmt(30, 45)},
			want:       [][2]int{{0, 15}, {15, 30}, {30, 45}},
		},
		{
			name:       "merged_run_outside_window_is_rejected",
			statements: []*Node{imp(0, 5), imp(5, 8), stmt(8, 30)},
			want:       [][2]int{{8, 30}},
		},
		{
			name:       "oversized_single_import_rejected",
			statements: []*Node{imp(0, 80), stmt(80, 100)},
			want:       [][2]int{{80, 100}},
		},
		{
			name:       "nil_statements_skipped",
			statements: []*Node{nil, imp(0, 20), nil, stmt(25, 40)},
			want:       [][2]int{{0, 20}, {25, 40}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := runScript(500, program(tc.statements...), tc.flushTrailing)
			require.Equal(t, tc.want, spans(got))
		})
	}
}

func TestWalkScriptMergedKind(t *testing.T) {
	got := runScript(500, program(
		Span(KindExportNamedDeclaration, 0, 20),
		Span(KindExportNamedDeclaration, 21, 40),
		Span("VariableDeclaration", 41, 60),
	), false)

	require.Len(t, got, 2)
	require.Equal(t, KindExportNamedDeclaration, got[0].Kind)
	require.Equal(t, [2]int{0, 40}, [2]int{got[0].Start, got[0].End})
}

func TestWalkScriptFunction(t *testing.T) {
	ifStmt := &Node{
		Kind: KindIfStatement, Start: 48, End: 88,
		Test:       Span("BinaryExpression", 52, 64),
		Consequent: Span(KindBlockStatement, 66, 76),
		Alternate:  Span(KindBlockStatement, 82, 88),
	}
	fn := &Node{
		Kind: KindFunctionDeclaration, Start: 0, End: 90,
		Params: []*Node{Span(KindIdentifier, 15, 20), Span("AssignmentPattern", 22, 30)},
		Body: &Node{
			Kind: KindBlockStatement, Start: 32, End: 90,
			Statements: []*Node{Span("ExpressionStatement", 34, 46), ifStmt},
		},
	}

	got := runScript(1000, program(fn), false)
	require.Equal(t, [][2]int{
		{0, 90},  // function
		{32, 90}, // body
		{15, 30}, // parameter list
		{34, 46}, // first statement
		{48, 88}, // conditional
		{52, 64}, // test
		{66, 76}, // consequent
	}, spans(got))
	require.Equal(t, KindIdentifier, got[2].Kind)
}

func TestWalkScriptFunctionIndependentOfBody(t *testing.T) {
	fn := &Node{
		Kind: KindFunctionDeclaration, Start: 0, End: 40,
		Body: &Node{Kind: KindBlockStatement, Start: 33, End: 40},
	}

	got := runScript(1000, program(fn), false)
	require.Equal(t, [][2]int{{0, 40}}, spans(got))
}

func TestWalkScriptLargeFunctionStatements(t *testing.T) {
	fn := &Node{
		Kind: KindFunctionDeclaration, Start: 0, End: 200,
		Params: []*Node{Span(KindIdentifier, 14, 15)},
		Body: &Node{
			Kind: KindBlockStatement, Start: 20, End: 200,
			Statements: []*Node{
				Span("ReturnStatement", 30, 50),
				{Kind: KindIfStatement, Start: 60, End: 190, Test: Span("Identifier", 64, 80)},
			},
		},
	}

	got := runScript(1000, program(fn), false)
	require.Equal(t, [][2]int{{30, 50}, {64, 80}}, spans(got))
}

func TestWalkScriptFunctionFlushesRun(t *testing.T) {
	got := runScript(500, program(
		Span(KindImportDeclaration, 0, 20),
		&Node{Kind: KindFunctionDeclaration, Start: 22, End: 45},
	), false)

	require.Equal(t, [][2]int{{0, 20}, {22, 45}}, spans(got))
}

func TestWalkScriptNilProgram(t *testing.T) {
	require.Empty(t, runScript(500, nil, true))
	require.Empty(t, runScript(500, &Node{Kind: KindProgram}, true))
}

func TestExtract(t *testing.T) {
	doc := &Document{
		Length: 500,
		Template: &Node{
			Kind: KindFragment, Start: 200, End: 500,
			Children: []*Node{Span(KindText, 200, 240), Span(KindElement, 240, 280)},
		},
		Script: program(Span(KindImportDeclaration, 8, 30), Span("ExpressionStatement", 31, 60)),
	}

	got := Extract(doc, Options{})
	require.Equal(t, [][2]int{{240, 280}, {8, 30}, {31, 60}}, spans(got))

	for _, n := range got {
		require.GreaterOrEqual(t, n.Len(), MinSpan)
		require.LessOrEqual(t, n.Len(), NewWindow(doc.Length).Max)
	}

	require.Nil(t, Extract(nil, Options{}))
}
