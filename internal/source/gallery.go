package source

import (
	"embed"
	"errors"
	"path"
	"strings"

	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
)

//go:embed gallery/*.txt
var galleryFiles embed.FS

const galleryDir = "gallery"

var ErrExampleNotFound = errors.New("example not found")

// Gallery serves the bundled example components.
type Gallery struct {
	fs fs.FileSystem
}

func NewGallery() *Gallery {
	return &Gallery{fs: fs.NewEmbedFileSystem(galleryFiles)}
}

func (g *Gallery) List() ([]string, error) {
	entries, err := g.fs.ReadDir(galleryDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".txt"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	return names, nil
}

func (g *Gallery) Get(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", ErrExampleNotFound
	}

	data, err := g.fs.ReadFile(path.Join(galleryDir, name+".txt"))
	if err != nil {
		return "", ErrExampleNotFound
	}
	return string(data), nil
}
