package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/opsdesk/opsdesk/internal/rest"
	"github.com/opsdesk/opsdesk/pkg/finance"
	"github.com/opsdesk/opsdesk/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	finance *finance.Service
}

func NewHandler(service *Service, financeService *finance.Service) *Handler {
	return &Handler{service: service, finance: financeService}
}

func (h *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.GetClients(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, clients)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.GetClient(r.Context(), mux.Vars(r)["clientId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, client)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.AddClient(r.Context(), client)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var client Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	client.ID = mux.Vars(r)["clientId"]

	updated, err := h.service.ModifyClient(r.Context(), client)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClient(r.Context(), mux.Vars(r)["clientId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetClientStats serves the client's financial totals from the ledger.
func (h *Handler) GetClientStats(w http.ResponseWriter, r *http.Request) {
	clientId := mux.Vars(r)["clientId"]
	if _, err := h.service.GetClient(r.Context(), clientId); err != nil {
		writeServiceError(w, err)
		return
	}

	summary, err := h.finance.GetSummary(r.Context(), "", clientId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, summary)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
	case errors.Is(err, ErrValidation):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrClientNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	default:
		log.Errorf("client request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "client request failed", "")
	}
}
