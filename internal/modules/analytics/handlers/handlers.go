// Package handlers provides HTTP handlers for portfolio analytics.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/analytics"
	"github.com/foliotracker/folio/internal/modules/auth"
)

// Handler handles analytics HTTP requests
type Handler struct {
	service *analytics.Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *analytics.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// HandleGetAnalytics returns the full analytics result incl. the timeline
func (h *Handler) HandleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.service.ComputePortfolioAnalytics(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetSummary returns the lightweight snapshot totals
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.service.ComputePortfolioSummary(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleGetHoldings returns per-investment holding state and valuations
func (h *Handler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	holdings, err := h.service.ComputeHoldingsWithValue(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, holdings)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.log.Error().Err(err).Msg("Analytics computation failed")
	h.writeError(w, http.StatusInternalServerError, "failed to load analytics")
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
