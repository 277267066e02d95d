package investment

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/database"
	"github.com/foliotracker/folio/internal/domain"
)

// SnapshotInvalidator drops a user's cached dashboard snapshot after a
// mutation. Defined here to avoid importing the dashboard module.
type SnapshotInvalidator interface {
	Invalidate(userID string) error
}

// Service orchestrates investment mutations. Every write validates
// ownership first; analytics are recomputed on the next read rather than
// patched incrementally, so the only post-write duty is invalidating the
// cached snapshot.
type Service struct {
	repo        *Repository
	invalidator SnapshotInvalidator
	log         zerolog.Logger
}

// NewService creates a new investment service
func NewService(repo *Repository, invalidator SnapshotInvalidator, log zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		log:         log.With().Str("service", "investment").Logger(),
	}
}

// CreateInvestmentInput is the payload for recording a new investment.
type CreateInvestmentInput struct {
	Name             string  `json:"name"`
	Symbol           string  `json:"symbol"`
	InvestmentTypeID int64   `json:"investment_type_id"`
	InitialAmount    float64 `json:"initial_amount"`
	InitialQuantity  float64 `json:"initial_quantity"`
	Currency         string  `json:"currency"`
	PurchaseDate     string  `json:"purchase_date"`
}

// RecordInvestment creates an investment and its initial buy transaction in
// one database transaction. The initial price per unit is derived from
// amount / quantity and recorded on the investment for pricing fallback.
func (s *Service) RecordInvestment(userID string, in CreateInvestmentInput) (domain.Investment, error) {
	if userID == "" {
		return domain.Investment{}, domain.ErrUnauthorized
	}
	if in.Name == "" || in.InvestmentTypeID == 0 || in.PurchaseDate == "" {
		return domain.Investment{}, fmt.Errorf("%w: name, type and purchase date are required", domain.ErrInvalidInput)
	}
	if in.InitialQuantity <= 0 || in.InitialAmount <= 0 {
		return domain.Investment{}, fmt.Errorf("%w: initial amount and quantity must be positive", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", in.PurchaseDate); err != nil {
		return domain.Investment{}, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	inv := domain.Investment{
		ID:                  uuid.NewString(),
		UserID:              userID,
		InvestmentTypeID:    in.InvestmentTypeID,
		Name:                in.Name,
		Symbol:              in.Symbol,
		InitialAmount:       in.InitialAmount,
		InitialQuantity:     in.InitialQuantity,
		InitialPricePerUnit: in.InitialAmount / in.InitialQuantity,
		Currency:            currency,
		PurchaseDate:        in.PurchaseDate,
	}

	err := database.WithTransaction(s.repo.DB(), func(tx *sql.Tx) error {
		if err := s.repo.Create(tx, inv); err != nil {
			return err
		}
		return s.repo.CreateTransaction(tx, domain.Transaction{
			ID:              uuid.NewString(),
			InvestmentID:    inv.ID,
			TransactionType: domain.TransactionBuy,
			Quantity:        inv.InitialQuantity,
			PricePerUnit:    inv.InitialPricePerUnit,
			TotalAmount:     inv.InitialAmount,
			TransactionDate: inv.PurchaseDate,
			Notes:           "Initial purchase",
		})
	})
	if err != nil {
		return domain.Investment{}, fmt.Errorf("failed to record investment: %w", err)
	}

	s.invalidateSnapshot(userID)
	s.log.Info().Str("investment_id", inv.ID).Str("user_id", userID).Msg("Investment recorded")
	return inv, nil
}

// CreateTransactionInput is the payload for recording a buy or sell.
type CreateTransactionInput struct {
	TransactionType string  `json:"transaction_type"`
	Quantity        float64 `json:"quantity"`
	PricePerUnit    float64 `json:"price_per_unit"`
	TransactionDate string  `json:"transaction_date"`
	Notes           string  `json:"notes"`
}

// RecordTransaction appends a buy/sell event to an owned investment. The
// total amount is computed here once and trusted as given from then on.
// Sells are not validated against historical buys; over-selling yields a
// negative running quantity that valuation clamps.
func (s *Service) RecordTransaction(userID, investmentID string, in CreateTransactionInput) (domain.Transaction, error) {
	if userID == "" {
		return domain.Transaction{}, domain.ErrUnauthorized
	}
	if in.TransactionType != domain.TransactionBuy && in.TransactionType != domain.TransactionSell {
		return domain.Transaction{}, fmt.Errorf("%w: transaction type must be buy or sell", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 || in.PricePerUnit < 0 {
		return domain.Transaction{}, fmt.Errorf("%w: quantity must be positive and price per unit must not be negative", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", in.TransactionDate); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: transaction date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	// Ownership check before any write
	if _, err := s.repo.GetOwned(investmentID, userID); err != nil {
		return domain.Transaction{}, err
	}

	t := domain.Transaction{
		ID:              uuid.NewString(),
		InvestmentID:    investmentID,
		TransactionType: in.TransactionType,
		Quantity:        in.Quantity,
		PricePerUnit:    in.PricePerUnit,
		TotalAmount:     in.Quantity * in.PricePerUnit,
		TransactionDate: in.TransactionDate,
		Notes:           in.Notes,
	}

	if err := s.repo.CreateTransaction(nil, t); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.invalidateSnapshot(userID)
	s.log.Info().
		Str("investment_id", investmentID).
		Str("type", t.TransactionType).
		Float64("quantity", t.Quantity).
		Msg("Transaction recorded")
	return t, nil
}

// DeleteInvestment removes an owned investment with its transactions and
// journal entries. The cascade is enforced by this delete path, not by the
// database.
func (s *Service) DeleteInvestment(userID, investmentID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	if _, err := s.repo.GetOwned(investmentID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(investmentID); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	s.invalidateSnapshot(userID)
	s.log.Info().Str("investment_id", investmentID).Str("user_id", userID).Msg("Investment deleted")
	return nil
}

// ListInvestments returns the user's investments with type info.
func (s *Service) ListInvestments(userID string) ([]domain.Investment, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListByUser(userID)
}

// ListTransactions returns an owned investment's transactions, newest first.
func (s *Service) ListTransactions(userID, investmentID string) ([]domain.Transaction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.repo.GetOwned(investmentID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactionsByInvestment(investmentID)
}

// ListTypes returns the investment type catalog.
func (s *Service) ListTypes() ([]domain.InvestmentType, error) {
	return s.repo.ListTypes()
}

func (s *Service) invalidateSnapshot(userID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to invalidate dashboard snapshot")
	}
}
