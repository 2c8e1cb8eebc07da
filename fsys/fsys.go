package fsys

import "io/fs"

// FS is the filesystem surface the resolver and crawler depend on.
// Implementations must be safe for read-only concurrent use.
// This allows the caller to control how the project tree is read
// (real filesystem, in-memory fixture, etc.)
type FS interface {
	// Lstat reports on the path itself without following a trailing symlink.
	Lstat(path string) (fs.FileInfo, error)
	// Stat follows symlinks.
	Stat(path string) (fs.FileInfo, error)
	// RealPath returns the canonical path with all symlinks resolved.
	RealPath(path string) (string, error)
	ReadFile(path string) ([]byte, error)
}
