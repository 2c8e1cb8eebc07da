// Package depgraph crawls source files through the module resolver and drives
// the breadth-first traversal that computes the reachable-file set.
package depgraph

import (
	"fmt"

	"github.com/LegacyCodeHQ/sweep/jsparse"
	"github.com/LegacyCodeHQ/sweep/resolve"
)

// Diagnostic is a non-fatal problem observed while scanning a file. At most
// one diagnostic is retained per referencing file; a later one overwrites an
// earlier one.
type Diagnostic struct {
	File    string
	Message string
}

// ScanResult is the outcome of scanning one source file.
type ScanResult struct {
	Files       []resolve.File
	Diagnostics []Diagnostic
}

// Crawler extracts reference sites from parsed sources and feeds them to the
// resolver, classifying failures as fatal or diagnostic.
type Crawler struct {
	resolver *resolve.Resolver
}

// NewCrawler creates a crawler over the given resolver.
func NewCrawler(resolver *resolve.Resolver) *Crawler {
	return &Crawler{resolver: resolver}
}

// Scan walks one parsed source file and resolves every reference site.
//
// Type-only imports and builtin modules are skipped. A non-literal specifier
// becomes a diagnostic (unless one is already recorded for this file). A
// resolution failure becomes a diagnostic when the site is optional (dynamic
// import, require inside try) or the error is the optional kind; any other
// failure aborts the crawl.
func (c *Crawler) Scan(tree *jsparse.Tree, sourcePath string) (ScanResult, error) {
	var result ScanResult
	var diagnostic *Diagnostic
	seen := make(map[string]bool)

	for _, site := range tree.Sites() {
		if site.TypeOnly {
			continue
		}

		if !site.IsLiteral {
			if diagnostic == nil {
				diagnostic = &Diagnostic{
					File:    sourcePath,
					Message: fmt.Sprintf("unsupported non-literal specifier in %q", site.Source),
				}
			}
			continue
		}

		if jsparse.IsBuiltin(site.Specifier) {
			continue
		}

		files, err := c.resolver.Resolve(site.Specifier, sourcePath)
		if err != nil {
			if site.Optional() || resolve.IsOptional(err) {
				diagnostic = &Diagnostic{
					File:    sourcePath,
					Message: fmt.Sprintf("ignoring unresolved optional dependency: %v", err),
				}
				continue
			}
			return ScanResult{}, err
		}

		for _, file := range files {
			if seen[file.Path] {
				continue
			}
			seen[file.Path] = true
			result.Files = append(result.Files, file)
		}
	}

	if diagnostic != nil {
		result.Diagnostics = append(result.Diagnostics, *diagnostic)
	}
	return result, nil
}
