package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

// SaveHandler is the collaborator endpoint of the save round-trip: it
// writes the posted code to the watched preview file.
type SaveHandler struct {
	service *usecase.SaveService
	logger  *zap.Logger
}

func NewSaveHandler(service *usecase.SaveService, logger *zap.Logger) http.Handler {
	return &SaveHandler{
		service: service,
		logger:  logger,
	}
}

type saveRequest struct {
	Code    *string `json:"code"`
	Seq     uint64  `json:"seq"`
	Session string  `json:"session"`
}

func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body saveRequest
	if err := json.NewDecoder(io.LimitReader(req.Body, maxSourceBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Code == nil {
		writeError(w, http.StatusBadRequest, usecase.ErrEmptySource.Error())
		return
	}

	err := h.service.Save(usecase.SaveInput{Code: *body.Code, Seq: body.Seq, Session: body.Session})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, core.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded")
	case errors.Is(err, usecase.ErrEmptySource):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("failed to save preview", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
