package http

import (
	"net/http"
	"path"
	"strings"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

// AssetHandler serves the playground script and stylesheet. In dev mode
// they are read from disk on every request.
type AssetHandler struct {
	embedded usecase.FileSystem
	disk     usecase.FileSystem
	dir      string
	isDev    bool
}

func NewAssetHandler(embedded, disk usecase.FileSystem, dir string, isDev bool) http.Handler {
	return &AssetHandler{
		embedded: embedded,
		disk:     disk,
		dir:      dir,
		isDev:    isDev,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := req.PathValue("file")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		http.NotFound(w, req)
		return
	}

	var data []byte
	var err error
	if h.isDev && h.disk != nil && h.disk.FileExists(path.Join(h.dir, name)) {
		data, err = h.disk.ReadFile(path.Join(h.dir, name))
	} else {
		data, err = h.embedded.ReadFile(name)
	}
	if err != nil {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", core.GetContentType(name))
	if !h.isDev {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}
	_, _ = w.Write(data)
}
