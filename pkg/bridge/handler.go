package bridge

import (
	"fmt"
	"net/http"

	"github.com/opsdesk/opsdesk/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	relay *Relay
}

func NewHandler(relay *Relay) *Handler {
	return &Handler{relay: relay}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.relay.State())
}

func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	if err := h.relay.Connect(r.Context()); err != nil {
		rest.WriteError(w, http.StatusConflict, err.Error(), "")
		return
	}
	rest.WriteJSON(w, http.StatusAccepted, h.relay.State())
}

func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.relay.Disconnect(); err != nil {
		log.Errorf("bridge disconnect failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "bridge disconnect failed", "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.relay.State())
}

// Channel streams relay events as server-sent events until the client goes
// away.
func (h *Handler) Channel(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		rest.WriteError(w, http.StatusInternalServerError, "streaming not supported", "")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, unsubscribe := h.relay.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			flusher.Flush()
		}
	}
}
