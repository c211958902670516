package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opsdesk/opsdesk/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type credentialsDTO struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type userDTO struct {
	Uid         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type sessionDTO struct {
	User  userDTO `json:"user"`
	Token string  `json:"token,omitempty"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.SignUp(r.Context(), dto.Email, dto.Password, dto.DisplayName)
	if errors.Is(err, ErrValidation) {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if errors.Is(err, ErrEmailTaken) {
		rest.WriteError(w, http.StatusConflict, err.Error(), "")
		return
	}
	if err != nil {
		log.Errorf("sign-up failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "sign-up failed", "")
		return
	}

	rest.WriteJSON(w, http.StatusCreated, sessionDTO{User: toDTO(created)})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var dto credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	account, token, err := h.service.SignIn(r.Context(), dto.Email, dto.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		rest.WriteError(w, http.StatusUnauthorized, err.Error(), "")
		return
	}
	if err != nil {
		log.Errorf("sign-in failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "sign-in failed", "")
		return
	}

	rest.WriteJSON(w, http.StatusOK, sessionDTO{User: toDTO(account), Token: token})
}

// SignOut exists for frontend symmetry; sessions are stateless tokens, so
// there is nothing to revoke server-side.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.GetCurrentUser(r.Context())
	if errors.Is(err, ErrNoUser) || errors.Is(err, ErrUserNotFound) {
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
		return
	}
	if err != nil {
		log.Errorf("session lookup failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "session lookup failed", "")
		return
	}

	rest.WriteJSON(w, http.StatusOK, sessionDTO{User: toDTO(current)})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var dto userDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.service.UpdateDisplayName(r.Context(), dto.DisplayName)
	if errors.Is(err, ErrNoUser) {
		rest.WriteError(w, http.StatusUnauthorized, "no active session", "")
		return
	}
	if err != nil {
		log.Errorf("profile update failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "profile update failed", "")
		return
	}

	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func toDTO(u User) userDTO {
	return userDTO{
		Uid:         u.Uid,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
	}
}
