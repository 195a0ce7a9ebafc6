// Package harness implements the Project Harness (C8): file discovery
// honoring include/exclude globs and a .skelforgeignore file, and the
// worker pool that fans extraction out across files and folds every
// result into a shared pkg/engine.State.
package harness

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanConfig holds include/exclude doublestar glob patterns evaluated
// against a file's root-relative, slash-separated path.
type ScanConfig struct {
	Include []string
	Exclude []string
}

// DefaultScanConfig matches source files for every adapter this module
// ships (TypeScript, JavaScript, Go) and excludes the usual test/story
// noise.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Include: []string{
			"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mjs", "**/*.go",
		},
		Exclude: []string{
			"**/*.test.ts", "**/*.test.tsx", "**/*.test.js", "**/*.test.jsx",
			"**/*.spec.ts", "**/*.spec.tsx", "**/*.spec.js", "**/*.spec.jsx",
			"**/*.stories.ts", "**/*.stories.tsx", "**/*.story.ts", "**/*.story.tsx",
			"**/*_test.go",
			"**/node_modules/**", "**/.git/**", "**/dist/**", "**/build/**", "**/vendor/**",
		},
	}
}

// DiscoverFiles walks rootDir applying cfg's include/exclude globs and a
// .skelforgeignore file at rootDir's root (if present), returning a
// sorted slice of absolute file paths for deterministic scan output.
func DiscoverFiles(rootDir string, cfg ScanConfig) ([]string, error) {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	ignoreMatcher := loadIgnoreFile(filepath.Join(absRoot, ".skelforgeignore"))

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if ignoreMatcher != nil && relPath != "." && ignoreMatcher.MatchesPath(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		for _, pattern := range cfg.Exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(cfg.Include) > 0 {
			matched := false
			for _, pattern := range cfg.Include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// loadIgnoreFile compiles path as a gitignore-style pattern file, returning
// nil when the file doesn't exist — .skelforgeignore is optional.
func loadIgnoreFile(path string) *ignore.GitIgnore {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return matcher
}
