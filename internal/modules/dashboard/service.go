package dashboard

import (
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/modules/analytics"
)

// Payload is everything the dashboard view needs in one response.
type Payload struct {
	Summary   *analytics.PortfolioSummary     `json:"summary" msgpack:"summary"`
	Holdings  []analytics.InvestmentValuation `json:"holdings" msgpack:"holdings"`
	Analytics *analytics.PortfolioAnalytics   `json:"analytics" msgpack:"analytics"`
	Currency  string                          `json:"currency" msgpack:"currency"`
	FromCache bool                            `json:"from_cache" msgpack:"-"`
}

// CurrencyProvider returns the user's display currency.
// Defined here to avoid importing the settings module.
type CurrencyProvider interface {
	DefaultCurrency(userID string) string
}

// Service composes the dashboard payload from the analytics engine, with a
// cache-first read path. Stale state never outlives a mutation: writes
// invalidate, reads recompute.
type Service struct {
	analytics *analytics.Service
	currency  CurrencyProvider
	cache     *SnapshotCache
	log       zerolog.Logger
}

// NewService creates a new dashboard service
func NewService(
	analyticsService *analytics.Service,
	currency CurrencyProvider,
	cache *SnapshotCache,
	log zerolog.Logger,
) *Service {
	return &Service{
		analytics: analyticsService,
		currency:  currency,
		cache:     cache,
		log:       log.With().Str("service", "dashboard").Logger(),
	}
}

// GetDashboard returns the composed payload, serving a fresh cached
// snapshot when one exists.
func (s *Service) GetDashboard(userID string) (*Payload, error) {
	if cached, err := s.cache.GetIfFresh(userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Snapshot cache read failed")
	} else if cached != nil {
		cached.FromCache = true
		return cached, nil
	}

	result, err := s.analytics.ComputePortfolioAnalytics(userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.analytics.ComputeHoldingsWithValue(userID)
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		Summary: &analytics.PortfolioSummary{
			TotalValue:       result.TotalValue,
			TotalInvested:    result.TotalInvested,
			TotalGain:        result.TotalGain,
			TotalGainPercent: result.TotalGainPercent,
		},
		Holdings:  holdings,
		Analytics: result,
		Currency:  s.currency.DefaultCurrency(userID),
	}

	if err := s.cache.Store(userID, payload); err != nil {
		// Caching is best effort; the payload is already computed
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to cache snapshot")
	}

	return payload, nil
}
