// Package fs abstracts the files vitrine reads and writes: the watched
// preview file and the bundled examples.
package fs

import (
	iofs "io/fs"
)

// FileSystem is the file access used by the save service and the gallery.
// Writers must replace files atomically.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]iofs.DirEntry, error)
	FileExists(path string) bool
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
	Remove(path string) error
}
