// Package handlers provides the combined dashboard endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/auth"
	"github.com/foliotracker/folio/internal/modules/dashboard"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *dashboard.Service
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *dashboard.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// RegisterRoutes registers the dashboard route
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.HandleGetDashboard)
}

// HandleGetDashboard returns the combined dashboard payload
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := h.service.GetDashboard(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.log.Error().Err(err).Msg("Dashboard load failed")
		h.writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	h.writeJSON(w, http.StatusOK, payload)
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
