package fs

import (
	"os"
	"path/filepath"
)

// Filesystem is the read/write filesystem abstraction shared by the git
// facade and the sync orchestrator. Paths are slash separated and relative
// to the filesystem root.
type Filesystem interface {
	Create(name string) (File, error)
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	ReadFile(name string) ([]byte, error)
	// WriteFile writes data to name, creating missing parent directories
	// and truncating any previous content.
	WriteFile(name string, data []byte, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
	// Exists reports whether name exists. A missing file is not an error.
	Exists(name string) (bool, error)
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(name string) ([]os.FileInfo, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Walk(root string, fn filepath.WalkFunc) error
	TempDir(dir, prefix string) (string, error)
	// Glob returns the names of all files matching pattern, in lexical
	// order. The pattern syntax is that of path/filepath.Match.
	Glob(pattern string) ([]string, error)
}
