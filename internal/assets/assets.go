// Package assets embeds the playground's browser script and stylesheet.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed playground.js playground.css
var files embed.FS

// SourceDir is where the assets live in the source tree. Dev mode serves
// them from disk so they can be edited without rebuilding.
const SourceDir = "internal/assets"

func FS() embed.FS {
	return files
}

func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
