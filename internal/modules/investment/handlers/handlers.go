// Package handlers provides HTTP handlers for investment management.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/auth"
	"github.com/foliotracker/folio/internal/modules/investment"
)

// Handler handles investment HTTP requests
type Handler struct {
	service *investment.Service
	log     zerolog.Logger
}

// NewHandler creates a new investment handler
func NewHandler(service *investment.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "investment").Logger(),
	}
}

// HandleList returns the user's investments with type info
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	investments, err := h.service.ListInvestments(userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if investments == nil {
		investments = []domain.Investment{}
	}

	h.writeJSON(w, http.StatusOK, investments)
}

// HandleCreate records a new investment plus its initial buy transaction
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in investment.CreateInvestmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.service.RecordInvestment(userID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, inv)
}

// HandleDelete removes an investment and all its child records
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	investmentID := chi.URLParam(r, "id")
	if err := h.service.DeleteInvestment(userID, investmentID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleListTypes returns the investment type catalog
func (h *Handler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, types)
}

// HandleListTransactions returns an investment's transaction history
func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	investmentID := chi.URLParam(r, "id")
	txs, err := h.service.ListTransactions(userID, investmentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}

	h.writeJSON(w, http.StatusOK, txs)
}

// HandleCreateTransaction appends a buy/sell event to an investment
func (h *Handler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	investmentID := chi.URLParam(r, "id")

	var in investment.CreateTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.service.RecordTransaction(userID, investmentID, in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "investment not found")
	case errors.Is(err, domain.ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("Investment operation failed")
		h.writeError(w, http.StatusInternalServerError, "operation failed")
	}
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
