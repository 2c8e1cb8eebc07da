// Package scan enumerates files the crawl never touched.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// defaultIgnores are always skipped during enumeration.
var defaultIgnores = []string{".git", "**/.git/**", "**/node_modules/.bin/**"}

// Options controls unused-file enumeration.
type Options struct {
	// Ignore holds glob patterns (gobwas/glob syntax, '/' separated) matched
	// against paths relative to the scan root.
	Ignore []string
}

// Unused walks every regular file under root and returns, sorted, the ones
// whose canonical path is absent from the reachable set.
func Unused(root string, reachable map[string]bool, opts Options) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	ignores, err := compileIgnores(opts.Ignore)
	if err != nil {
		return nil, err
	}

	var unused []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if matchesAny(ignores, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if matchesAny(ignores, rel) {
			return nil
		}

		canonical := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			canonical = resolved
		}
		if !reachable[path] && !reachable[canonical] {
			unused = append(unused, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(unused)
	return unused, nil
}

// Delete removes the given files, continuing past individual failures.
func Delete(paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func compileIgnores(patterns []string) ([]glob.Glob, error) {
	all := append(append([]string{}, defaultIgnores...), patterns...)

	globs := make([]glob.Glob, 0, len(all))
	for _, pattern := range all {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, compiled)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
