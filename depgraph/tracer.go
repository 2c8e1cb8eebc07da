package depgraph

import (
	"fmt"

	"github.com/LegacyCodeHQ/sweep/fsys"
	"github.com/LegacyCodeHQ/sweep/jsparse"
	"github.com/LegacyCodeHQ/sweep/resolve"
)

// TraceResult is the fixpoint of a crawl: every file reachable from the
// entrypoints, the dependency edges discovered on the way, and the
// non-fatal diagnostics collected per file.
type TraceResult struct {
	Files       []resolve.File // insertion (discovery) order
	Graph       DependencyGraph
	Diagnostics []Diagnostic
}

// Tracer seeds a crawl from entrypoint specifiers and runs the
// resolver-crawler loop until no undiscovered files remain.
type Tracer struct {
	fs       fsys.FS
	resolver *resolve.Resolver
}

// NewTracer creates a tracer over the given filesystem.
func NewTracer(fs fsys.FS) *Tracer {
	return &Tracer{fs: fs, resolver: resolve.New(fs)}
}

// Trace resolves every entrypoint specifier against the project's own
// package.json path and follows import edges breadth-first. Each canonical
// path is scanned at most once, so diamond-shaped and cyclic graphs terminate
// without extra bookkeeping. A hard resolution failure aborts the whole trace.
func (t *Tracer) Trace(entrypoints []string, projectPackageJSON string) (*TraceResult, error) {
	crawler := NewCrawler(t.resolver)

	visited := make(map[string]resolve.File)
	var order []string
	diagnostics := make(map[string]Diagnostic)
	var diagnosticOrder []string
	graph := make(DependencyGraph)

	var queue []resolve.File
	for _, entrypoint := range entrypoints {
		files, err := t.resolver.Resolve(entrypoint, projectPackageJSON)
		if err != nil {
			return nil, err
		}
		queue = append(queue, files...)
	}

	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]

		if _, ok := visited[file.Path]; ok {
			continue
		}
		visited[file.Path] = file
		order = append(order, file.Path)

		if !file.IsFile || !jsparse.Supports(file.Path) {
			continue
		}

		source, err := t.fs.ReadFile(file.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Path, err)
		}

		tree, err := jsparse.Parse(source, file.Path)
		if err != nil {
			return nil, err
		}
		result, err := crawler.Scan(tree, file.Path)
		tree.Close()
		if err != nil {
			return nil, err
		}

		for _, diagnostic := range result.Diagnostics {
			if _, ok := diagnostics[diagnostic.File]; !ok {
				diagnosticOrder = append(diagnosticOrder, diagnostic.File)
			}
			diagnostics[diagnostic.File] = diagnostic
		}

		for _, discovered := range result.Files {
			graph.addEdge(file.Path, discovered.Path)
			queue = append(queue, discovered)
		}
	}

	result := &TraceResult{Graph: graph}
	for _, path := range order {
		result.Files = append(result.Files, visited[path])
	}
	for _, path := range diagnosticOrder {
		result.Diagnostics = append(result.Diagnostics, diagnostics[path])
	}
	return result, nil
}

// Reachable returns the set of canonical paths in the result, including
// non-file bookkeeping entries.
func (r *TraceResult) Reachable() map[string]bool {
	set := make(map[string]bool, len(r.Files))
	for _, file := range r.Files {
		set[file.Path] = true
	}
	return set
}
