// Package scanner provides file discovery for fimgen.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/arjunmahishi/fimgen/lang"
	"github.com/arjunmahishi/fimgen/types"
)

// DefaultIgnoreDirs returns the default list of directories to ignore.
func DefaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":         {},
		".hg":          {},
		".svn":         {},
		".jj":          {},
		"node_modules": {},
		"vendor":       {},
		"dist":         {},
		"build":        {},
		"target":       {},
		".venv":        {},
		"__pycache__":  {},
		".next":        {},
		".cache":       {},
		".turbo":       {},
		".svelte-kit":  {},
		".vercel":      {},
		".netlify":     {},
		"coverage":     {},
	}
}

// Config holds scanner configuration.
type Config struct {
	Root       string
	Language   lang.Language
	IgnoreDirs map[string]struct{}
	MaxBytes   int64

	// UseGitignore skips paths matched by the .gitignore at Root.
	UseGitignore bool
}

// Scanner discovers files for processing.
type Scanner struct {
	cfg Config
}

// New creates a new Scanner with the given configuration.
func New(cfg Config) *Scanner {
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = DefaultIgnoreDirs()
	}
	return &Scanner{cfg: cfg}
}

// Collect finds all matching files and returns them as FileJobs, in
// lexical walk order.
func (s *Scanner) Collect() ([]types.FileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	ignore, err := s.loadGitignore(absRoot)
	if err != nil {
		return nil, err
	}

	var jobs []types.FileJob
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.shouldIgnoreDir(d.Name()) || (ignore != nil && ignore.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isSupportedFile(d.Name()) {
			return nil
		}

		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		if s.cfg.MaxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.MaxBytes {
				return nil
			}
		}

		jobs = append(jobs, types.FileJob{
			AbsPath:     path,
			DisplayPath: rel,
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// CollectSingle returns a single file as a FileJob.
func (s *Scanner) CollectSingle(filePath string) (types.FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return types.FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	return types.FileJob{
		AbsPath:     absPath,
		DisplayPath: filepath.Base(absPath),
	}, nil
}

func (s *Scanner) loadGitignore(absRoot string) (*gitignore.GitIgnore, error) {
	if !s.cfg.UseGitignore {
		return nil, nil
	}
	path := filepath.Join(absRoot, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	ignore, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("load .gitignore: %w", err)
	}
	return ignore, nil
}

func (s *Scanner) shouldIgnoreDir(name string) bool {
	_, ok := s.cfg.IgnoreDirs[name]
	return ok
}

func (s *Scanner) isSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range s.cfg.Language.Extensions() {
		if ext == e {
			return true
		}
	}
	return false
}
