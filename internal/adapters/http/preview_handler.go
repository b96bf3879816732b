package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/source"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

const maxSourceBytes = 1 << 20

// PreviewHandler exposes the editing session: edits, frames, source
// import/export and remounting.
type PreviewHandler struct {
	session *usecase.Session
	gallery *source.Gallery
	logger  *zap.Logger
}

func NewPreviewHandler(session *usecase.Session, gallery *source.Gallery, logger *zap.Logger) *PreviewHandler {
	return &PreviewHandler{
		session: session,
		gallery: gallery,
		logger:  logger,
	}
}

type editRequest struct {
	Code *string `json:"code"`
}

func (h *PreviewHandler) ServeEdit(w http.ResponseWriter, req *http.Request) {
	var body editRequest
	if err := json.NewDecoder(io.LimitReader(req.Body, maxSourceBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Code == nil {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	rev := h.session.Edit(*body.Code)
	writeJSON(w, http.StatusAccepted, map[string]uint64{"revision": rev})
}

func (h *PreviewHandler) ServeFrame(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, toFrameJSON(h.session.Frame()))
}

func (h *PreviewHandler) ServeRemount(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, toFrameJSON(h.session.Remount()))
}

func (h *PreviewHandler) ServeSource(w http.ResponseWriter, req *http.Request) {
	buf := h.session.Source()

	w.Header().Set("Content-Type", core.GetContentType("preview.go"))
	if req.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="preview.go"`)
	}
	_, _ = io.WriteString(w, buf.Text)
}

func (h *PreviewHandler) ServeImport(w http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxSourceBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if len(data) > maxSourceBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "source too large")
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		writeError(w, http.StatusBadRequest, "source is empty")
		return
	}

	buf := h.session.Replace(string(data))
	h.logger.Debug("source imported", zap.Uint64("revision", buf.Revision))
	writeJSON(w, http.StatusOK, map[string]uint64{"revision": buf.Revision})
}

func (h *PreviewHandler) ServeReset(w http.ResponseWriter, req *http.Request) {
	buf := h.session.Restore()
	writeJSON(w, http.StatusOK, map[string]uint64{"revision": buf.Revision})
}

func (h *PreviewHandler) ServeExamples(w http.ResponseWriter, req *http.Request) {
	names, err := h.gallery.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *PreviewHandler) ServeExample(w http.ResponseWriter, req *http.Request) {
	src, err := h.gallery.Get(req.PathValue("name"))
	if errors.Is(err, source.ErrExampleNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", core.GetContentType("example.go"))
	_, _ = io.WriteString(w, src)
}
