package fs

import (
	"embed"
	"errors"
	iofs "io/fs"
)

var ErrReadOnly = errors.New("filesystem is read-only")

// EmbedFileSystem serves files compiled into the binary, such as the
// example gallery.
type EmbedFileSystem struct {
	files embed.FS
}

func NewEmbedFileSystem(files embed.FS) *EmbedFileSystem {
	return &EmbedFileSystem{files: files}
}

func (e *EmbedFileSystem) ReadFile(path string) ([]byte, error) {
	return e.files.ReadFile(path)
}

func (e *EmbedFileSystem) ReadDir(path string) ([]iofs.DirEntry, error) {
	return e.files.ReadDir(path)
}

func (e *EmbedFileSystem) FileExists(path string) bool {
	_, err := iofs.Stat(e.files, path)
	return err == nil
}

func (e *EmbedFileSystem) WriteFile(string, []byte, iofs.FileMode) error { return ErrReadOnly }
func (e *EmbedFileSystem) MkdirAll(string, iofs.FileMode) error          { return ErrReadOnly }
func (e *EmbedFileSystem) Remove(string) error                           { return ErrReadOnly }
