// Package jsparse parses JavaScript and TypeScript sources with tree-sitter
// and extracts the reference sites the dependency crawl cares about: import
// declarations, export-from declarations, dynamic import() calls, and
// require() calls.
package jsparse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SiteKind identifies the syntactic form of a reference site.
type SiteKind int

const (
	SiteImport SiteKind = iota
	SiteExportFrom
	SiteDynamicImport
	SiteRequire
)

// ReferenceSite is one place in a source file that references another module.
type ReferenceSite struct {
	Kind      SiteKind
	Specifier string // literal value with quotes stripped; empty unless IsLiteral
	IsLiteral bool
	TypeOnly  bool   // import declarations only
	InTry     bool   // require calls lexically inside a try statement
	Source    string // raw source text of the site, for diagnostics
}

// Optional reports whether a resolution failure at this site should be
// tolerated: dynamic import() calls and require() calls guarded by a try
// block fail at runtime in a recoverable way.
func (s ReferenceSite) Optional() bool {
	return s.Kind == SiteDynamicImport || (s.Kind == SiteRequire && s.InTry)
}

var supportedExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
}

// Supports reports whether path names a file this package can parse.
func Supports(path string) bool {
	return supportedExtensions[filepath.Ext(path)]
}

// Tree is a parsed source file.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Parse parses source code; the path selects the grammar (TypeScript, TSX, or
// JavaScript).
func Parse(source []byte, path string) (*Tree, error) {
	var lang *sitter.Language
	switch filepath.Ext(path) {
	case ".ts":
		lang = typescript.GetLanguage()
	case ".tsx":
		lang = tsx.GetLanguage()
	default:
		lang = javascript.GetLanguage()
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Tree{tree: tree, source: source}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Sites walks the tree in pre-order and returns every reference site. A node
// recognized as a site is not recursed into; every other node recurses into
// all of its children.
func (t *Tree) Sites() []ReferenceSite {
	var sites []ReferenceSite

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		if site, ok := t.siteFor(n); ok {
			sites = append(sites, site)
			return
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(t.tree.RootNode())
	return sites
}

// siteFor classifies a node as a reference site.
func (t *Tree) siteFor(n *sitter.Node) (ReferenceSite, bool) {
	switch n.Type() {
	case "import_statement":
		source := n.ChildByFieldName("source")
		if source == nil {
			return ReferenceSite{}, false
		}
		site := t.siteFromArgument(SiteImport, n, source)
		site.TypeOnly = t.isTypeOnly(n)
		return site, true

	case "export_statement":
		source := n.ChildByFieldName("source")
		if source == nil {
			// A plain export declares no dependency.
			return ReferenceSite{}, false
		}
		return t.siteFromArgument(SiteExportFrom, n, source), true

	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return ReferenceSite{}, false
		}

		var kind SiteKind
		switch {
		case fn.Type() == "import":
			kind = SiteDynamicImport
		case fn.Type() == "identifier" && fn.Content(t.source) == "require":
			kind = SiteRequire
		default:
			return ReferenceSite{}, false
		}

		var arg *sitter.Node
		if args := n.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
			arg = args.NamedChild(0)
		}
		site := t.siteFromArgument(kind, n, arg)
		if kind == SiteRequire {
			site.InTry = enclosedInTry(n)
		}
		return site, true
	}

	return ReferenceSite{}, false
}

// siteFromArgument builds a site from the specifier expression. Only plain
// string literals count as literal specifiers; template strings, identifiers
// and anything computed are left for the crawler to diagnose.
func (t *Tree) siteFromArgument(kind SiteKind, site, arg *sitter.Node) ReferenceSite {
	result := ReferenceSite{Kind: kind, Source: site.Content(t.source)}

	if arg != nil && arg.Type() == "string" {
		result.IsLiteral = true
		result.Specifier = strings.Trim(arg.Content(t.source), `'"`)
	}
	return result
}

// isTypeOnly reports whether an import statement imports types only
// ("import type { A } from ..."). TypeScript grammars expose the type keyword
// as an anonymous child token.
func (t *Tree) isTypeOnly(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && child.Type() == "type" && child.Content(t.source) == "type" {
			return true
		}
	}
	return false
}

// enclosedInTry reports whether a node sits lexically inside a try statement.
func enclosedInTry(n *sitter.Node) bool {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Type() == "try_statement" {
			return true
		}
	}
	return false
}
