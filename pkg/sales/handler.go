package sales

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/opsdesk/opsdesk/internal/rest"
	"github.com/opsdesk/opsdesk/pkg/client"
	"github.com/opsdesk/opsdesk/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.GetServices(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, services)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var catalogService CatalogService
	if err := json.NewDecoder(r.Body).Decode(&catalogService); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.AddService(r.Context(), catalogService)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.GetQuotes(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, quotes)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.GetDraft(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) AddDraftItem(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		ServiceID string `json:"serviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	draft, err := h.service.AddServiceToDraft(r.Context(), dto.ServiceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) RemoveDraftItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item index", err.Error())
		return
	}

	draft, err := h.service.RemoveDraftItem(r.Context(), index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) SetDraftDiscount(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		Percent float64 `json:"percent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	draft, err := h.service.SetDraftDiscount(r.Context(), dto.Percent)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) SetDraftClient(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		ClientID string `json:"clientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	draft, err := h.service.SetDraftClient(r.Context(), dto.ClientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		Status QuoteStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	quote, err := h.service.SetQuoteStatus(r.Context(), mux.Vars(r)["quoteId"], dto.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, quote)
}

func (h *Handler) SaveQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.SaveQuote(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, quote)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
	case errors.Is(err, ErrValidation), errors.Is(err, ErrIncompleteDraft), errors.Is(err, ErrItemOutOfRange):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrQuoteNotFound), errors.Is(err, client.ErrClientNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	default:
		log.Errorf("sales request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "sales request failed", "")
	}
}
