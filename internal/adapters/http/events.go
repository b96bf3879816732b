package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

// EventsHandler streams frames to the browser as server-sent events.
type EventsHandler struct {
	session *usecase.Session
	logger  *zap.Logger
}

func NewEventsHandler(session *usecase.Session, logger *zap.Logger) http.Handler {
	return &EventsHandler{
		session: session,
		logger:  logger,
	}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id := uuid.NewString()
	_, _ = w.Write([]byte("event: ready\ndata: " + id + "\n\n"))
	flusher.Flush()

	ch := h.session.Subscribe()
	defer h.session.Unsubscribe(ch)

	h.logger.Debug("events subscriber connected", zap.String("id", id))
	defer h.logger.Debug("events subscriber gone", zap.String("id", id))

	if err := writeFrameEvent(w, h.session.Frame()); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-req.Context().Done():
			return
		case frame, ok := <-ch:
			if !ok {
				return
			}
			if err := writeFrameEvent(w, frame); err != nil {
				h.logger.Debug("failed to write frame", zap.String("id", id), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeFrameEvent(w io.Writer, frame core.Frame) error {
	data, err := json.Marshal(toFrameJSON(frame))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: frame\ndata: %s\n\n", data)
	return err
}
