package fsys

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// MemFS is an in-memory FS with symlink support, used as a test fixture.
// Paths must be absolute and slash-separated.
type MemFS struct {
	files map[string][]byte
	dirs  map[string]bool
	links map[string]string
}

// NewMemFS creates an empty in-memory filesystem containing only the root directory.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
		links: make(map[string]string),
	}
}

// WriteFile stores content at path, creating parent directories as needed.
func (m *MemFS) WriteFile(path string, content []byte) {
	path = filepath.Clean(path)
	m.MkdirAll(filepath.Dir(path))
	m.files[path] = content
}

// WriteString is a convenience wrapper around WriteFile.
func (m *MemFS) WriteString(path, content string) {
	m.WriteFile(path, []byte(content))
}

// MkdirAll creates a directory and all missing parents.
func (m *MemFS) MkdirAll(path string) {
	path = filepath.Clean(path)
	for path != "/" && path != "." {
		m.dirs[path] = true
		path = filepath.Dir(path)
	}
}

// Symlink records a symlink at linkPath pointing at target. The target may be
// absolute or relative to the link's directory, and does not have to exist.
func (m *MemFS) Symlink(target, linkPath string) {
	linkPath = filepath.Clean(linkPath)
	m.MkdirAll(filepath.Dir(linkPath))
	m.links[linkPath] = target
}

func (m *MemFS) Lstat(path string) (fs.FileInfo, error) {
	path, err := m.resolveParent(path)
	if err != nil {
		return nil, err
	}

	if target, ok := m.links[path]; ok {
		return memInfo{name: filepath.Base(path), mode: fs.ModeSymlink, size: int64(len(target))}, nil
	}
	return m.statResolved(path)
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	resolved, err := m.RealPath(path)
	if err != nil {
		return nil, err
	}
	return m.statResolved(resolved)
}

func (m *MemFS) RealPath(path string) (string, error) {
	resolved, err := m.resolvePath(path, 0)
	if err != nil {
		return "", err
	}

	if _, ok := m.files[resolved]; !ok && !m.dirs[resolved] {
		return "", &fs.PathError{Op: "realpath", Path: path, Err: fs.ErrNotExist}
	}
	return resolved, nil
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	resolved, err := m.RealPath(path)
	if err != nil {
		return nil, err
	}

	content, ok := m.files[resolved]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *MemFS) statResolved(path string) (fs.FileInfo, error) {
	if content, ok := m.files[path]; ok {
		return memInfo{name: filepath.Base(path), size: int64(len(content))}, nil
	}
	if m.dirs[path] {
		return memInfo{name: filepath.Base(path), mode: fs.ModeDir}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// resolveParent canonicalizes every component except the last, so Lstat can
// observe a trailing symlink without following it.
func (m *MemFS) resolveParent(path string) (string, error) {
	path = filepath.Clean(path)
	if path == "/" {
		return path, nil
	}

	dir, err := m.resolvePath(filepath.Dir(path), 0)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(path)), nil
}

// resolvePath canonicalizes a path component by component, following symlinks.
// The final path is returned even if nothing exists there; callers decide
// whether absence is an error.
func (m *MemFS) resolvePath(path string, depth int) (string, error) {
	if depth > 40 {
		return "", &fs.PathError{Op: "realpath", Path: path, Err: errors.New("too many levels of symbolic links")}
	}

	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		return "", &fs.PathError{Op: "realpath", Path: path, Err: errors.New("path is not absolute")}
	}

	current := "/"
	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if segment == "" {
			continue
		}
		current = filepath.Join(current, segment)

		target, ok := m.links[current]
		if !ok {
			continue
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}

		resolved, err := m.resolvePath(target, depth+1)
		if err != nil {
			return "", err
		}
		current = resolved
	}

	return current, nil
}

type memInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return i.mode }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.mode.IsDir() }
func (i memInfo) Sys() any           { return nil }
