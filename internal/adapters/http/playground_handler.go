package http

import (
	"bytes"
	"html"
	"net/http"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/source"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

type PlaygroundHandler struct {
	session *usecase.Session
	gallery *source.Gallery
	title   string
	isDev   bool
	logger  *zap.Logger
}

func NewPlaygroundHandler(session *usecase.Session, gallery *source.Gallery, title string, isDev bool, logger *zap.Logger) http.Handler {
	return &PlaygroundHandler{
		session: session,
		gallery: gallery,
		title:   title,
		isDev:   isDev,
		logger:  logger,
	}
}

func (h *PlaygroundHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}

	var examples []string
	if h.gallery != nil {
		names, err := h.gallery.List()
		if err != nil {
			h.logger.Warn("failed to list examples", zap.Error(err))
		}
		examples = names
	}

	out, err := core.RenderPlaygroundShell(core.ShellData{
		Title:     h.title,
		Source:    h.session.Source().Text,
		FrameHTML: FrameHTML(h.session.Frame()),
		Strategy:  h.session.Strategy(),
		Examples:  examples,
		IsDev:     h.isDev,
	})
	if err != nil {
		h.serveError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (h *PlaygroundHandler) serveError(w http.ResponseWriter, err error) {
	h.logger.Error("failed to render playground", zap.Error(err))

	data := core.ErrorData{
		Message: err.Error(),
		IsDev:   h.isDev,
	}

	var buf bytes.Buffer
	if err := core.ErrorTemplate.Execute(&buf, data); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(buf.Bytes())
}
