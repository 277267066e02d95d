package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/analytics"
	"github.com/foliotracker/folio/internal/modules/auth"
)

// stubStore serves all three reader interfaces the analytics service needs.
type stubStore struct {
	investments []domain.Investment
	listErr     error
}

func (s *stubStore) ListByUser(userID string) ([]domain.Investment, error) {
	return s.investments, s.listErr
}

func (s *stubStore) ListTransactions(investmentIDs []string) ([]domain.Transaction, error) {
	return nil, nil
}

func (s *stubStore) ListByInvestmentIDs(investmentIDs []string) ([]domain.JournalEntry, error) {
	return nil, nil
}

func newTestHandler(store *stubStore) *Handler {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	return NewHandler(analytics.NewService(store, store, store, log), log)
}

func TestHandleGetAnalytics_NoUserInContext(t *testing.T) {
	h := newTestHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	h.HandleGetAnalytics(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "unauthorized", body["error"])
}

func TestHandleGetAnalytics_EmptyPortfolio(t *testing.T) {
	h := newTestHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	h.HandleGetAnalytics(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result analytics.PortfolioAnalytics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Zero(t, result.TotalValue)
	assert.Zero(t, result.TotalInvested)
}

func TestHandleGetAnalytics_StoreFailure(t *testing.T) {
	h := newTestHandler(&stubStore{listErr: errors.New("db locked")})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	h.HandleGetAnalytics(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "failed to load analytics", body["error"])
}

func TestHandleGetSummary_NoUserInContext(t *testing.T) {
	h := newTestHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
	rec := httptest.NewRecorder()
	h.HandleGetSummary(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetHoldings_NoUserInContext(t *testing.T) {
	h := newTestHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/holdings", nil)
	rec := httptest.NewRecorder()
	h.HandleGetHoldings(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
