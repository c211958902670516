package chat

import (
	"encoding/json"
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

func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.service.GetConversations(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, conversations)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.GetMessages(r.Context(), mux.Vars(r)["conversationId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, messages)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if dto.Text == "" {
		rest.WriteError(w, http.StatusBadRequest, "message text is required", "")
		return
	}

	message, err := h.service.SendMessage(r.Context(), mux.Vars(r)["conversationId"], dto.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, message)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
	case errors.Is(err, ErrConversationNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	default:
		log.Errorf("chat request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "chat request failed", "")
	}
}
