package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
	"github.com/3-lines-studio/vitrine/internal/assets"
	"github.com/3-lines-studio/vitrine/internal/source"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

type RouterInput struct {
	Session *usecase.Session
	Gallery *source.Gallery
	// Save mounts the collaborator endpoint when set.
	Save   *usecase.SaveService
	Title  string
	IsDev  bool
	Logger *zap.Logger
}

func NewRouter(input RouterInput) http.Handler {
	logger := input.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gallery := input.Gallery
	if gallery == nil {
		gallery = source.NewGallery()
	}

	preview := NewPreviewHandler(input.Session, gallery, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", NewPlaygroundHandler(input.Session, gallery, input.Title, input.IsDev, logger))
	mux.HandleFunc("POST /_preview/edit", preview.ServeEdit)
	mux.HandleFunc("GET /_preview/frame", preview.ServeFrame)
	mux.HandleFunc("POST /_preview/remount", preview.ServeRemount)
	mux.HandleFunc("GET /_preview/source", preview.ServeSource)
	mux.HandleFunc("PUT /_preview/source", preview.ServeImport)
	mux.HandleFunc("DELETE /_preview/source", preview.ServeReset)
	mux.HandleFunc("GET /_preview/examples", preview.ServeExamples)
	mux.HandleFunc("GET /_preview/examples/{name}", preview.ServeExample)
	mux.Handle("GET /_preview/assets/{file}", NewAssetHandler(
		fs.NewEmbedFileSystem(assets.FS()), fs.NewOSFileSystem(), assets.SourceDir, input.IsDev))
	mux.Handle("GET /_preview/events", NewEventsHandler(input.Session, logger))
	if input.Save != nil {
		mux.Handle("/_preview/save", NewSaveHandler(input.Save, logger))
	}
	return mux
}
