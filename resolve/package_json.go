package resolve

import (
	"encoding/json"
	"path/filepath"

	"github.com/LegacyCodeHQ/sweep/fsys"
)

// PackageJSON is a parsed package.json, reduced to the fields resolution
// consults. Path is the location the descriptor was read from.
type PackageJSON struct {
	Path             string            `json:"-"`
	Type             string            `json:"type"`
	Main             lenientString     `json:"main"`
	Module           lenientString     `json:"module"`
	Exports          *ExportsValue     `json:"exports"`
	Dependencies     map[string]string `json:"dependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// DeclaresDependency reports whether name appears in dependencies or
// peerDependencies.
func (p *PackageJSON) DeclaresDependency(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.PeerDependencies[name]
	return ok
}

// lenientString decodes a JSON string and silently ignores any other value, so
// a package.json with e.g. an object-valued "main" doesn't abort resolution.
type lenientString string

func (s *lenientString) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}
	*s = lenientString(value)
	return nil
}

// loadPackageJSON reads and parses the descriptor at path. Results are cached;
// descriptors are read-only for the lifetime of a resolver. Unreadable or
// malformed files are treated as absent.
func (r *Resolver) loadPackageJSON(path string) (*PackageJSON, bool) {
	if cached, ok := r.pkgCache.Get(path); ok {
		return cached, cached != nil
	}

	pkg := parsePackageJSON(r.fs, path)
	r.pkgCache.Add(path, pkg)
	return pkg, pkg != nil
}

func parsePackageJSON(fs fsys.FS, path string) *PackageJSON {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil
	}

	pkg := &PackageJSON{Path: path}
	if err := json.Unmarshal(content, pkg); err != nil {
		return nil
	}
	return pkg
}

// nearestPackageJSON walks upward from dir (dir itself first) looking for a
// package.json, stopping at the filesystem root.
func (r *Resolver) nearestPackageJSON(dir string) (*PackageJSON, bool) {
	for {
		if pkg, ok := r.loadPackageJSON(filepath.Join(dir, "package.json")); ok {
			return pkg, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}
