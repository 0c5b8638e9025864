package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// JavaScript implements the Language interface for JavaScript, the default
// dialect of component scripts.
type JavaScript struct{}

// TypeScript implements the Language interface for TypeScript, used for
// scripts declared with lang="ts".
type TypeScript struct{}

func init() {
	Register(&JavaScript{})
	Register(&TypeScript{})
}

func (j *JavaScript) Name() string {
	return "javascript"
}

func (j *JavaScript) Extensions() []string {
	return []string{".js", ".mjs"}
}

func (j *JavaScript) TreeSitterLang() *sitter.Language {
	return javascript.GetLanguage()
}

func (t *TypeScript) Name() string {
	return "typescript"
}

func (t *TypeScript) Extensions() []string {
	return []string{".ts"}
}

func (t *TypeScript) TreeSitterLang() *sitter.Language {
	return typescript.GetLanguage()
}
