package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// InvestmentOwnershipChecker verifies an investment belongs to a user.
// Defined here to avoid importing the investment module.
type InvestmentOwnershipChecker interface {
	GetOwned(investmentID, userID string) (domain.Investment, error)
}

// SnapshotInvalidator drops a user's cached dashboard snapshot after a mutation.
type SnapshotInvalidator interface {
	Invalidate(userID string) error
}

// Service orchestrates journal entry operations
type Service struct {
	repo        *Repository
	investments InvestmentOwnershipChecker
	invalidator SnapshotInvalidator
	log         zerolog.Logger
}

// NewService creates a new journal service
func NewService(repo *Repository, investments InvestmentOwnershipChecker, invalidator SnapshotInvalidator, log zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		investments: investments,
		invalidator: invalidator,
		log:         log.With().Str("service", "journal").Logger(),
	}
}

// CreateEntryInput is the payload for recording a price observation.
type CreateEntryInput struct {
	InvestmentID string  `json:"investment_id"`
	EntryDate    string  `json:"entry_date"`
	CurrentPrice float64 `json:"current_price"`
	Notes        string  `json:"notes"`
}

// RecordEntry stores a manual price observation against an owned investment.
// A zero or negative observed price is stored as-is; the pricing resolver
// and timeline replay ignore non-positive observations.
func (s *Service) RecordEntry(userID string, in CreateEntryInput) (domain.JournalEntry, error) {
	if userID == "" {
		return domain.JournalEntry{}, domain.ErrUnauthorized
	}
	if in.InvestmentID == "" || in.EntryDate == "" {
		return domain.JournalEntry{}, fmt.Errorf("%w: investment and entry date are required", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", in.EntryDate); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	// Ownership check before any write
	if _, err := s.investments.GetOwned(in.InvestmentID, userID); err != nil {
		return domain.JournalEntry{}, err
	}

	entry := domain.JournalEntry{
		ID:           uuid.NewString(),
		InvestmentID: in.InvestmentID,
		EntryDate:    in.EntryDate,
		CurrentPrice: in.CurrentPrice,
		Notes:        in.Notes,
	}

	if err := s.repo.Create(entry); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to record journal entry: %w", err)
	}

	s.invalidateSnapshot(userID)
	s.log.Info().
		Str("investment_id", entry.InvestmentID).
		Float64("price", entry.CurrentPrice).
		Msg("Journal entry recorded")
	return entry, nil
}

// ListEntries returns the user's journal, newest first.
func (s *Service) ListEntries(userID string) ([]domain.JournalEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListByUser(userID)
}

// DeleteEntry removes an owned journal entry.
func (s *Service) DeleteEntry(userID, entryID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	if _, err := s.repo.GetOwned(entryID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(entryID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.invalidateSnapshot(userID)
	s.log.Info().Str("entry_id", entryID).Msg("Journal entry deleted")
	return nil
}

func (s *Service) invalidateSnapshot(userID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to invalidate dashboard snapshot")
	}
}
