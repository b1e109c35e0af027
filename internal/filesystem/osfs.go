// Package filesystem provides a runtime.FileSystem implementation rooted
// at an explicit working directory, so CLI tests can exercise jpath
// resolution without chdir-ing the whole test process.
package filesystem

import (
	"os"
	"path/filepath"
)

// OSFS reads from the real filesystem, resolving relative paths against
// CWD rather than the process's actual working directory.
type OSFS struct {
	CWD string
}

func (fsys *OSFS) abs(path string) string {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		path = filepath.Clean(filepath.Join(fsys.CWD, path))
	}
	return path
}

// ReadFile implements runtime.FileSystem.
func (fsys *OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fsys.abs(path))
}

// Abs implements runtime.FileSystem.
func (fsys *OSFS) Abs(path string) (string, error) {
	return fsys.abs(path), nil
}
