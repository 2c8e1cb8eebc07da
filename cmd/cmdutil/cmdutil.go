// Package cmdutil carries the plumbing shared by the sweep subcommands.
package cmdutil

import (
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/LegacyCodeHQ/sweep/depgraph"
	"github.com/LegacyCodeHQ/sweep/fsys"
	"github.com/LegacyCodeHQ/sweep/project"
)

// RunTrace locates the project manifest under dir, rebases relative
// entrypoints against it, and runs the crawl.
func RunTrace(entrypoints []string, dir string) (*depgraph.TraceResult, string, error) {
	packageJSON, err := project.FindPackageJSON(dir)
	if err != nil {
		return nil, "", err
	}

	rebased := RebaseEntrypoints(entrypoints, filepath.Dir(packageJSON))

	tracer := depgraph.NewTracer(fsys.OS())
	result, err := tracer.Trace(rebased, packageJSON)
	if err != nil {
		return nil, "", err
	}
	return result, packageJSON, nil
}

// RebaseEntrypoints rewrites relative entrypoint specifiers so they stay valid
// when resolved against the package.json directory instead of the cwd.
func RebaseEntrypoints(entrypoints []string, packageDir string) []string {
	rebased := make([]string, 0, len(entrypoints))
	for _, entrypoint := range entrypoints {
		if len(entrypoint) > 0 && entrypoint[0] == '.' {
			abs, err := filepath.Abs(entrypoint)
			if err == nil {
				if rel, err := filepath.Rel(packageDir, abs); err == nil {
					rebased = append(rebased, "./"+filepath.ToSlash(rel))
					continue
				}
			}
		}
		rebased = append(rebased, entrypoint)
	}
	return rebased
}

// PrintDiagnostics writes crawl diagnostics as non-fatal warnings.
func PrintDiagnostics(w io.Writer, diagnostics []depgraph.Diagnostic) {
	warn := color.New(color.FgYellow)
	for _, diagnostic := range diagnostics {
		warn.Fprintf(w, "warning: %s: %s\n", diagnostic.File, diagnostic.Message)
	}
}
