// Package handlers provides HTTP handlers for authentication.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/auth"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *auth.Service
	log     zerolog.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *auth.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "auth").Logger(),
	}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// HandleRegister creates a new account and returns a session token
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Registration failed")
		h.writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.writeJSON(w, http.StatusCreated, session)
}

// HandleLogin verifies credentials and returns a session token
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("Login failed")
		h.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

// HandleMe returns the authenticated user's account
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.GetUser(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
