package settings

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Service orchestrates user settings operations
type Service struct {
	repo             *Repository
	fallbackCurrency string
	log              zerolog.Logger
}

// NewService creates a new settings service
func NewService(repo *Repository, fallbackCurrency string, log zerolog.Logger) *Service {
	if fallbackCurrency == "" {
		fallbackCurrency = "USD"
	}
	return &Service{
		repo:             repo,
		fallbackCurrency: fallbackCurrency,
		log:              log.With().Str("service", "settings").Logger(),
	}
}

// EnsureDefaults seeds a settings row for a new user. Safe to call twice.
func (s *Service) EnsureDefaults(userID string) error {
	if _, err := s.repo.Get(userID); err == nil {
		return nil
	}
	return s.repo.Upsert(domain.UserSettings{
		UserID:          userID,
		DefaultCurrency: s.fallbackCurrency,
	})
}

// DefaultCurrency returns the user's display currency, falling back to the
// configured default when no settings row exists. The currency is a label
// only; no conversion happens anywhere.
func (s *Service) DefaultCurrency(userID string) string {
	settings, err := s.repo.Get(userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to read user settings")
		}
		return s.fallbackCurrency
	}
	if settings.DefaultCurrency == "" {
		return s.fallbackCurrency
	}
	return settings.DefaultCurrency
}

// Get returns the user's settings, materializing defaults if absent.
func (s *Service) Get(userID string) (domain.UserSettings, error) {
	if userID == "" {
		return domain.UserSettings{}, domain.ErrUnauthorized
	}
	settings, err := s.repo.Get(userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UserSettings{UserID: userID, DefaultCurrency: s.fallbackCurrency}, nil
	}
	return settings, err
}

// Update writes the user's settings.
func (s *Service) Update(userID string, defaultCurrency string) (domain.UserSettings, error) {
	if userID == "" {
		return domain.UserSettings{}, domain.ErrUnauthorized
	}
	if len(defaultCurrency) != 3 {
		return domain.UserSettings{}, fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrInvalidInput)
	}

	settings := domain.UserSettings{UserID: userID, DefaultCurrency: defaultCurrency}
	if err := s.repo.Upsert(settings); err != nil {
		return domain.UserSettings{}, err
	}
	return settings, nil
}
