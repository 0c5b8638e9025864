package parser

import "github.com/arjunmahishi/fimgen/blocks"

// Svelte grammar node types.
const (
	svelteDocument       = "document"
	svelteText           = "text"
	svelteElement        = "element"
	svelteComment        = "comment"
	svelteExpression     = "expression"
	svelteHTMLExpr       = "html_expr"
	svelteConstExpr      = "const_expr"
	svelteScriptElement  = "script_element"
	svelteStyleElement   = "style_element"
	svelteStartTag       = "start_tag"
	svelteEndTag         = "end_tag"
	svelteSelfClosingTag = "self_closing_tag"

	svelteIfStatement    = "if_statement"
	svelteEachStatement  = "each_statement"
	svelteAwaitStatement = "await_statement"
	svelteKeyStatement   = "key_statement"

	svelteElseIfStatement   = "else_if_statement"
	svelteElseStatement     = "else_statement"
	svelteElseEachStatement = "else_each_statement"
	svelteThenStatement     = "then_statement"
	svelteCatchStatement    = "catch_statement"

	svelteElseIfExpr = "else_if_expr"
	svelteElseExpr   = "else_expr"
	svelteThenExpr   = "then_expr"
	svelteCatchExpr  = "catch_expr"
)

// JavaScript and TypeScript grammar node types.
const (
	jsNodeProgram              = "program"
	jsNodeComment              = "comment"
	jsNodeHashBang             = "hash_bang_line"
	jsNodeImportStatement      = "import_statement"
	jsNodeExportStatement      = "export_statement"
	jsNodeFunctionDeclaration  = "function_declaration"
	jsNodeGeneratorFunctionDcl = "generator_function_declaration"
	jsNodeStatementBlock       = "statement_block"
	jsNodeIfStatement          = "if_statement"
	jsNodeElseClause           = "else_clause"
	jsNodeParenthesized        = "parenthesized_expression"

	jsNodeDefault = "default"
	jsNodeStar    = "*"
)

// JavaScript grammar field names.
const (
	jsFieldParameters  = "parameters"
	jsFieldBody        = "body"
	jsFieldCondition   = "condition"
	jsFieldConsequence = "consequence"
	jsFieldAlternative = "alternative"
)

// templateKinds maps Svelte grammar types to template kinds. Types not
// listed keep their grammar name.
var templateKinds = map[string]blocks.Kind{
	svelteDocument:       blocks.KindFragment,
	svelteText:           blocks.KindText,
	svelteElement:        blocks.KindElement,
	svelteComment:        blocks.KindComment,
	svelteExpression:     blocks.KindMustacheTag,
	svelteHTMLExpr:       blocks.KindRawMustacheTag,
	svelteConstExpr:      blocks.KindConstTag,
	svelteIfStatement:    blocks.KindIfBlock,
	svelteEachStatement:  blocks.KindEachBlock,
	svelteAwaitStatement: blocks.KindAwaitBlock,
	svelteKeyStatement:   blocks.KindKeyBlock,
}

// branchContainers are block branches the grammar wraps in their own node.
// Each container holds its opening tag, its content and any later branch.
var branchContainers = map[string]blocks.Role{
	svelteElseIfStatement:   blocks.RoleElseIf,
	svelteElseStatement:     blocks.RoleElse,
	svelteElseEachStatement: blocks.RoleElse,
	svelteThenStatement:     blocks.RoleThen,
	svelteCatchStatement:    blocks.RoleCatch,
}

// branchMarkers are block branch tags that open a branch of sibling nodes.
var branchMarkers = map[string]blocks.Role{
	svelteElseIfExpr: blocks.RoleElseIf,
	svelteElseExpr:   blocks.RoleElse,
	svelteThenExpr:   blocks.RoleThen,
	svelteCatchExpr:  blocks.RoleCatch,
}

// statementKinds maps script grammar types to ESTree statement kinds.
// Types not listed keep their grammar name.
var statementKinds = map[string]blocks.Kind{
	jsNodeImportStatement:        blocks.KindImportDeclaration,
	jsNodeFunctionDeclaration:    blocks.KindFunctionDeclaration,
	jsNodeGeneratorFunctionDcl:   blocks.KindFunctionDeclaration,
	jsNodeStatementBlock:         blocks.KindBlockStatement,
	jsNodeIfStatement:            blocks.KindIfStatement,
	"lexical_declaration":        "VariableDeclaration",
	"variable_declaration":       "VariableDeclaration",
	"expression_statement":       "ExpressionStatement",
	"class_declaration":          "ClassDeclaration",
	"return_statement":           "ReturnStatement",
	"for_statement":              "ForStatement",
	"for_in_statement":           "ForInStatement",
	"while_statement":            "WhileStatement",
	"do_statement":               "DoWhileStatement",
	"try_statement":              "TryStatement",
	"throw_statement":            "ThrowStatement",
	"switch_statement":           "SwitchStatement",
	"labeled_statement":          "LabeledStatement",
	"empty_statement":            "EmptyStatement",
	"break_statement":            "BreakStatement",
	"continue_statement":         "ContinueStatement",
	"debugger_statement":         "DebuggerStatement",
	"type_alias_declaration":     "TSTypeAliasDeclaration",
	"interface_declaration":      "TSInterfaceDeclaration",
	"enum_declaration":           "TSEnumDeclaration",
	"ambient_declaration":        "TSDeclareFunction",
	"function_signature":         "TSDeclareFunction",
	"abstract_class_declaration": "ClassDeclaration",
	"internal_module":            "TSModuleDeclaration",
	"import_alias":               "TSImportEqualsDeclaration",
}
