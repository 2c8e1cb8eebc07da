package depgraph

import (
	"errors"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// DependencyGraph represents a mapping from file paths to the paths they were
// resolved to depend on during the crawl.
type DependencyGraph map[string][]string

// addEdge appends a dependency, keeping each adjacency list duplicate-free.
func (g DependencyGraph) addEdge(from, to string) {
	for _, existing := range g[from] {
		if existing == to {
			return
		}
	}
	g[from] = append(g[from], to)
}

// Directed converts the crawl graph into a directed graph suitable for DOT
// export and further analysis.
func (g DependencyGraph) Directed() (graphlib.Graph[string, string], error) {
	directed := graphlib.New(graphlib.StringHash, graphlib.Directed())

	nodes := make([]string, 0, len(g))
	for node := range g {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		if err := directed.AddVertex(node); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, err
		}
		for _, dep := range g[node] {
			if err := directed.AddVertex(dep); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
				return nil, err
			}
			if err := directed.AddEdge(node, dep); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}

	return directed, nil
}
