package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/svelte"
)

// Svelte implements the Language interface for Svelte components.
type Svelte struct{}

func init() {
	Register(&Svelte{})
}

func (s *Svelte) Name() string {
	return "svelte"
}

func (s *Svelte) Extensions() []string {
	return []string{".svelte"}
}

func (s *Svelte) TreeSitterLang() *sitter.Language {
	return svelte.GetLanguage()
}
