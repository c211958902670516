package notification

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/opsdesk/opsdesk/internal/rest"
	"github.com/opsdesk/opsdesk/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	viewed, err := h.service.MarkViewed(r.Context(), mux.Vars(r)["notificationId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, viewed)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNoUser) {
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
		return
	}
	log.Errorf("notification request failed: %v", err)
	rest.WriteError(w, http.StatusInternalServerError, "notification request failed", "")
}
