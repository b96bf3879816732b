package editor

import (
	"path"
	"sort"
	"strings"

	"github.com/3-lines-studio/vitrine/internal/ui"
)

const VirtualRoot = "/node_modules/"

// Library maps virtual file paths under VirtualRoot to declaration-only Go
// sources. The import path of a file is its directory relative to the root.
type Library map[string]string

func DefaultLibrary() Library {
	dir := VirtualRoot + ui.ImportPath
	return Library{
		dir + "/node.d.go":    ui.NodeDeclarations,
		dir + "/widgets.d.go": ui.WidgetDeclarations,
	}
}

func ImportPathOf(virtualPath string) string {
	rest, ok := strings.CutPrefix(virtualPath, VirtualRoot)
	if !ok {
		return ""
	}
	dir := path.Dir(rest)
	if dir == "." {
		return ""
	}
	return dir
}

// Packages groups the library's files by import path. File lists are sorted.
func (l Library) Packages() map[string][]string {
	pkgs := make(map[string][]string)
	for p := range l {
		importPath := ImportPathOf(p)
		if importPath == "" {
			continue
		}
		pkgs[importPath] = append(pkgs[importPath], p)
	}
	for _, files := range pkgs {
		sort.Strings(files)
	}
	return pkgs
}

func (l Library) clone() Library {
	out := make(Library, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
