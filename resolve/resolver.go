// Package resolve reproduces the package-manager filesystem resolution
// algorithm: relative and absolute specifiers with extension and index
// probing, bare package specifiers located through the node_modules ancestor
// chain, package.json entry-point fields, conditional export maps, and the
// required-versus-optional dependency distinction.
package resolve

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LegacyCodeHQ/sweep/fsys"
)

// File is a filesystem entry discovered during resolution. IsFile=true means
// actual source content to be parsed further; IsFile=false marks a node that
// participates in resolution bookkeeping (a package-root symlink or a located
// package.json) but is never parsed. IsFile=true paths are always
// realpath-canonicalized so one physical file never appears under two paths.
type File struct {
	Path   string
	IsFile bool
}

// bareSpecifierRe splits a bare specifier into package name (either
// "@scope/name" or a single segment) and an optional subpath.
var bareSpecifierRe = regexp.MustCompile(`^(@[^/]+/[^/]+|[^/]+)(?:/(.*))?$`)

const descriptorCacheSize = 512

// Resolver maps module specifiers to filesystem entries. It only reads the
// filesystem; each call is independent of every other, and the descriptor
// cache merely avoids re-parsing the same package.json.
type Resolver struct {
	fs       fsys.FS
	pkgCache *lru.Cache[string, *PackageJSON]
}

// New creates a Resolver over the given filesystem.
func New(fs fsys.FS) *Resolver {
	cache, err := lru.New[string, *PackageJSON](descriptorCacheSize)
	if err != nil {
		panic(err) // only possible with a non-positive size
	}
	return &Resolver{fs: fs, pkgCache: cache}
}

// Resolve maps a module specifier written in fromFile to the filesystem
// entries it denotes. Failures are always *ResolutionError; the Optional flag
// distinguishes soft failures (see errors.go).
func (r *Resolver) Resolve(specifier, fromFile string) ([]File, error) {
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") {
		file, ok := r.resolveFile(specifier, fromFile)
		if !ok {
			return nil, &ResolutionError{Specifier: specifier, From: fromFile}
		}
		return []File{file}, nil
	}

	return r.resolvePackage(specifier, fromFile)
}

// resolveFile handles relative and absolute specifiers. Absolute specifiers
// are probed verbatim; relative ones are joined to the referencing file's
// directory. When the referencing file is TypeScript, a trailing ".js" in the
// specifier is retried as ".ts" so compiled-style specifiers resolve back to
// their source.
func (r *Resolver) resolveFile(specifier, fromFile string) (File, bool) {
	if file, ok := r.probe(r.candidatePath(specifier, fromFile)); ok {
		return file, true
	}

	if strings.HasSuffix(fromFile, ".ts") && strings.HasSuffix(specifier, ".js") {
		retry := strings.TrimSuffix(specifier, ".js") + ".ts"
		if file, ok := r.probe(r.candidatePath(retry, fromFile)); ok {
			return file, true
		}
	}

	return File{}, false
}

func (r *Resolver) candidatePath(specifier, fromFile string) string {
	if filepath.IsAbs(specifier) {
		return filepath.Clean(specifier)
	}
	return filepath.Join(filepath.Dir(fromFile), specifier)
}

// probe tests a candidate path the way the module loader does: the literal
// path, then the path with ".js" appended; a directory hit is retried as its
// "index.js".
func (r *Resolver) probe(base string) (File, bool) {
	for _, candidate := range []string{base, base + ".js"} {
		info, err := r.fs.Stat(candidate)
		if err != nil {
			continue
		}

		if info.Mode().IsRegular() {
			return r.canonical(candidate), true
		}
		if info.IsDir() {
			index := filepath.Join(candidate, "index.js")
			if indexInfo, err := r.fs.Stat(index); err == nil && indexInfo.Mode().IsRegular() {
				return r.canonical(index), true
			}
		}
	}
	return File{}, false
}

// canonical records a resolved source file under its symlink-free path.
func (r *Resolver) canonical(path string) File {
	if real, err := r.fs.RealPath(path); err == nil {
		path = real
	}
	return File{Path: path, IsFile: true}
}

// resolvePackage handles bare specifiers: locate the package root through the
// node_modules ancestor walk, then pick an entry point from the package's
// descriptor.
func (r *Resolver) resolvePackage(specifier, fromFile string) ([]File, error) {
	match := bareSpecifierRe.FindStringSubmatch(specifier)
	if match == nil {
		return nil, &ResolutionError{Specifier: specifier, From: fromFile}
	}
	name, subpath := match[1], match[2]

	found, packageRoot := r.findPackageRoot(name, fromFile)
	if packageRoot == "" {
		return nil, r.packageFailure(name, specifier, fromFile)
	}

	pkg, hasPkg := r.nearestPackageJSON(packageRoot)
	if hasPkg {
		// The descriptor is part of the reachable set whether or not an entry
		// point resolves through it.
		found = append(found, File{Path: pkg.Path})

		if pkg.Exports != nil {
			// An exports field is authoritative: no fallback to main/module/index.
			target, ok := pkg.Exports.selectTarget(subpath)
			if ok {
				if file, ok := r.probe(filepath.Join(packageRoot, target)); ok {
					return append(found, file), nil
				}
			}
			return nil, r.packageFailure(name, specifier, fromFile)
		}
	}

	var candidate string
	switch {
	case subpath != "":
		candidate = filepath.Join(packageRoot, subpath)
	case hasPkg && pkg.Module != "":
		candidate = filepath.Join(packageRoot, string(pkg.Module))
	case hasPkg && pkg.Main != "":
		candidate = filepath.Join(packageRoot, string(pkg.Main))
	default:
		candidate = filepath.Join(packageRoot, "index.js")
	}

	if file, ok := r.probe(candidate); ok {
		return append(found, file), nil
	}
	return nil, r.packageFailure(name, specifier, fromFile)
}

// findPackageRoot walks the ancestor chain of the referencing file testing
// <dir>/node_modules/<name>. A symlinked package records a non-file entry for
// the link itself and resolution continues at the link target; a dangling link
// is treated as not found.
func (r *Resolver) findPackageRoot(name, fromFile string) ([]File, string) {
	var found []File

	dir := filepath.Dir(fromFile)
	for {
		candidate := filepath.Join(dir, "node_modules", name)
		info, err := r.fs.Lstat(candidate)
		if err == nil {
			if info.Mode()&fs.ModeSymlink != 0 {
				found = append(found, File{Path: candidate})
				if real, err := r.fs.RealPath(candidate); err == nil {
					if _, err := r.fs.Stat(real); err == nil {
						return found, real
					}
				}
			} else {
				return found, candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return found, ""
		}
		dir = parent
	}
}

// packageFailure builds the error for an unresolvable bare specifier. When the
// referencing package declares the target in neither dependencies nor
// peerDependencies, the failure is the optional kind.
func (r *Resolver) packageFailure(name, specifier, fromFile string) error {
	if pkg, ok := r.nearestPackageJSON(filepath.Dir(fromFile)); ok && !pkg.DeclaresDependency(name) {
		return &ResolutionError{Specifier: specifier, From: fromFile, Optional: true}
	}
	return &ResolutionError{Specifier: specifier, From: fromFile}
}
