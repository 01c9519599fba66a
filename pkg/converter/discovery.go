package converter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/react2ts/pkg/parser"
)

// DefaultExclude lists directories never descended into.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
}

// Discover resolves patterns to the legacy source files they name.
//
// A pattern may be a file, a directory (walked recursively) or a doublestar
// glob. Only .js and .jsx files are returned, except that a plain file path
// is always returned so the caller can report an unsupported extension.
// Paths matching any exclude glob are dropped. The result is sorted and free
// of duplicates.
func Discover(patterns, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if Excluded(path, exclude) {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		switch {
		case err == nil && info.IsDir():
			if err := walkDir(pattern, exclude, add); err != nil {
				return nil, err
			}
			continue
		case err == nil:
			add(pattern)
			continue
		}

		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
		}
		for _, match := range matches {
			if parser.IsConvertible(match) {
				add(match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func walkDir(root string, exclude []string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if rel != "." && Excluded(rel, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && parser.IsConvertible(path) {
			add(path)
		}
		return nil
	})
}

// Excluded matches path against the exclude globs. Directory globs ending
// in "/**" also match the directory itself.
func Excluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range exclude {
		if m, _ := doublestar.Match(pattern, slashed); m {
			return true
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			if m, _ := doublestar.Match(dir, slashed); m {
				return true
			}
		}
	}
	return false
}
