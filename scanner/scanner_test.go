package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/fimgen/lang"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func displayPaths(t *testing.T, s *Scanner) []string {
	t.Helper()
	jobs, err := s.Collect()
	require.NoError(t, err)
	paths := make([]string, 0, len(jobs))
	for _, j := range jobs {
		require.True(t, filepath.IsAbs(j.AbsPath))
		paths = append(paths, j.DisplayPath)
	}
	return paths
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"App.svelte":                       "<h1>app</h1>",
		"lib/Button.svelte":                "<button>ok</button>",
		"lib/util.js":                      "export const x = 1;",
		"routes/+page.SVELTE":              "<p>page</p>",
		"node_modules/pkg/Thing.svelte":    "<p>dep</p>",
		".svelte-kit/generated/Gen.svelte": "<p>gen</p>",
		"README.md":                        "# readme",
	})

	s := New(Config{Root: root, Language: lang.Get("svelte")})
	require.Equal(t, []string{
		"App.svelte",
		"lib/Button.svelte",
		"routes/+page.SVELTE",
	}, displayPaths(t, s))
}

func TestCollectMaxBytes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Small.svelte": "<p>s</p>",
		"Large.svelte": "<p>" + string(make([]byte, 256)) + "</p>",
	})

	s := New(Config{Root: root, Language: lang.Get("svelte"), MaxBytes: 64})
	require.Equal(t, []string{"Small.svelte"}, displayPaths(t, s))
}

func TestCollectGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":              "generated/\n*.draft.svelte\n",
		"Keep.svelte":             "<p>keep</p>",
		"Note.draft.svelte":       "<p>draft</p>",
		"generated/Auto.svelte":   "<p>auto</p>",
		"nested/Inner.svelte":     "<p>inner</p>",
		"nested/Old.draft.svelte": "<p>old</p>",
	})

	t.Run("enabled", func(t *testing.T) {
		s := New(Config{Root: root, Language: lang.Get("svelte"), UseGitignore: true})
		require.Equal(t, []string{"Keep.svelte", "nested/Inner.svelte"}, displayPaths(t, s))
	})

	t.Run("disabled", func(t *testing.T) {
		s := New(Config{Root: root, Language: lang.Get("svelte")})
		require.Len(t, displayPaths(t, s), 5)
	})
}

func TestCollectCustomIgnoreDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/A.svelte":     "<p>a</p>",
		"stories/B.svelte": "<p>b</p>",
	})

	s := New(Config{
		Root:       root,
		Language:   lang.Get("svelte"),
		IgnoreDirs: map[string]struct{}{"stories": {}},
	})
	require.Equal(t, []string{"src/A.svelte"}, displayPaths(t, s))
}

func TestCollectMissingRoot(t *testing.T) {
	s := New(Config{Root: filepath.Join(t.TempDir(), "missing"), Language: lang.Get("svelte")})
	_, err := s.Collect()
	require.Error(t, err)
}

func TestCollectSingle(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"deep/Card.svelte": "<p>card</p>"})

	s := New(Config{Language: lang.Get("svelte")})
	job, err := s.CollectSingle(filepath.Join(root, "deep", "Card.svelte"))
	require.NoError(t, err)
	require.Equal(t, "Card.svelte", job.DisplayPath)
	require.Equal(t, filepath.Join(root, "deep", "Card.svelte"), job.AbsPath)
}
