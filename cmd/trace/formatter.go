package trace

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dominikbraun/graph/draw"

	"github.com/LegacyCodeHQ/sweep/depgraph"
)

type fileEntry struct {
	Path   string `json:"path"`
	IsFile bool   `json:"isFile"`
}

// formatResult renders a trace result in the requested format. Text and JSON
// follow discovery order; DOT renders the crawl edges.
func formatResult(result *depgraph.TraceResult, format string, markers bool) (string, error) {
	switch format {
	case "text":
		return formatText(result, markers), nil
	case "json":
		return formatJSON(result, markers)
	case "dot":
		return formatDOT(result.Graph)
	default:
		return "", fmt.Errorf("unknown output format: %s (expected text, json, or dot)", format)
	}
}

func formatText(result *depgraph.TraceResult, markers bool) string {
	var sb strings.Builder
	for _, file := range result.Files {
		if !file.IsFile && !markers {
			continue
		}
		sb.WriteString(file.Path)
		if !file.IsFile {
			sb.WriteString(" (marker)")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatJSON(result *depgraph.TraceResult, markers bool) (string, error) {
	entries := make([]fileEntry, 0, len(result.Files))
	for _, file := range result.Files {
		if !file.IsFile && !markers {
			continue
		}
		entries = append(entries, fileEntry{Path: file.Path, IsFile: file.IsFile})
	}

	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode trace result: %w", err)
	}
	return string(encoded) + "\n", nil
}

func formatDOT(g depgraph.DependencyGraph) (string, error) {
	directed, err := g.Directed()
	if err != nil {
		return "", fmt.Errorf("failed to build graph: %w", err)
	}

	var sb strings.Builder
	if err := draw.DOT(directed, &sb); err != nil {
		return "", fmt.Errorf("failed to render DOT: %w", err)
	}
	return sb.String(), nil
}
