package fsys

import (
	"io/fs"
	"os"
	"path/filepath"
)

type osFS struct{}

// OS returns an FS backed by the real filesystem.
func OS() FS {
	return osFS{}
}

func (osFS) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (osFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (osFS) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
