package prefs

import (
	"encoding/json"
	"errors"
	"net/http"

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

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.GetPreferences(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, prefs)
}

func (h *Handler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var dto Preferences
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	prefs, err := h.service.SetTheme(r.Context(), dto.Theme)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, prefs)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
	case errors.Is(err, ErrInvalidTheme):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	default:
		log.Errorf("preferences request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "preferences request failed", "")
	}
}
