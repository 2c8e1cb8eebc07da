// Package project locates the filesystem anchors a crawl is seeded from.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindPackageJSON walks upward from startDir and returns the absolute path of
// the nearest package.json. Entrypoint specifiers are resolved against this
// path, as if the project manifest itself had imported them.
func FindPackageJSON(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "package.json")
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no package.json found in %s or any parent directory", startDir)
		}
		dir = parent
	}
}

// FindNodeModules returns the node_modules directory next to the nearest
// package.json, the default root for unused-file scans.
func FindNodeModules(startDir string) (string, error) {
	packageJSON, err := FindPackageJSON(startDir)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(filepath.Dir(packageJSON), "node_modules")
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("no node_modules directory next to %s", packageJSON)
	}
	return dir, nil
}
