// Package discovery finds IVR export files under a root directory using
// glob patterns with ignore rules.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// compiledPattern keeps the source pattern next to its compiled form for
// error messages.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a root directory for export files.
type Discovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// New compiles the include and ignore patterns for rootDir. Patterns use
// '/'-separated glob syntax matched against root-relative paths.
func New(rootDir string, include, ignore []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		d.includePatterns = append(d.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Discover walks the tree and returns matching files in sorted order, so a
// directory audit always processes exports deterministically.
func (d *Discovery) Discover() ([]string, error) {
	var files []string
	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if matchesAny(relPath, d.ignorePatterns) {
			return nil
		}
		if matchesAny(relPath, d.includePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", d.rootDir, err)
	}
	sort.Strings(files)
	return files, nil
}

func matchesAny(relPath string, patterns []compiledPattern) bool {
	for _, p := range patterns {
		if p.glob.Match(relPath) {
			return true
		}
	}
	return false
}
