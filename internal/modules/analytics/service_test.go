package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/foliotracker/folio/internal/domain"
)

type mockInvestmentReader struct {
	mock.Mock
}

func (m *mockInvestmentReader) ListByUser(userID string) ([]domain.Investment, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) ListTransactions(investmentIDs []string) ([]domain.Transaction, error) {
	args := m.Called(investmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type mockJournalReader struct {
	mock.Mock
}

func (m *mockJournalReader) ListByInvestmentIDs(investmentIDs []string) ([]domain.JournalEntry, error) {
	args := m.Called(investmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func newTestService(inv *mockInvestmentReader, tx *mockTransactionReader, j *mockJournalReader) *Service {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	s := NewService(inv, tx, j, log)
	s.SetClock(func() time.Time {
		return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return s
}

func TestComputePortfolioAnalytics_EmptyUserIDUnauthorized(t *testing.T) {
	s := newTestService(&mockInvestmentReader{}, &mockTransactionReader{}, &mockJournalReader{})

	_, err := s.ComputePortfolioAnalytics("")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestComputePortfolioAnalytics_NoInvestmentsZeroResult(t *testing.T) {
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{}, nil)
	s := newTestService(inv, &mockTransactionReader{}, &mockJournalReader{})

	result, err := s.ComputePortfolioAnalytics("user-1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalValue)
	assert.Empty(t, result.AssetAllocation)
	assert.Empty(t, result.PerformanceData)
	assert.Empty(t, result.TopPerformers)
	assert.NotNil(t, result.InvestmentsByCategory)
}

func TestComputePortfolioAnalytics_ListFailureSurfaces(t *testing.T) {
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return(nil, errors.New("db locked"))
	s := newTestService(inv, &mockTransactionReader{}, &mockJournalReader{})

	_, err := s.ComputePortfolioAnalytics("user-1")

	assert.Error(t, err)
}

func TestComputePortfolioAnalytics_SingleHoldingWithJournal(t *testing.T) {
	// 10 units bought at $100, latest journal observation $120:
	// value 1200, gain 200, gain percent 20.
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{
		{ID: "inv-1", Name: "ACME", TypeCategory: "Equity", InitialPricePerUnit: 100},
	}, nil)

	tx := &mockTransactionReader{}
	tx.On("ListTransactions", []string{"inv-1"}).Return([]domain.Transaction{
		{InvestmentID: "inv-1", TransactionType: domain.TransactionBuy, Quantity: 10, TotalAmount: 1000, TransactionDate: "2026-01-10"},
	}, nil)

	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", []string{"inv-1"}).Return([]domain.JournalEntry{
		{InvestmentID: "inv-1", EntryDate: "2026-02-15", CurrentPrice: 120},
	}, nil)

	s := newTestService(inv, tx, j)
	result, err := s.ComputePortfolioAnalytics("user-1")

	require.NoError(t, err)
	assert.Equal(t, 1200.0, result.TotalValue)
	assert.Equal(t, 1000.0, result.TotalInvested)
	assert.Equal(t, 200.0, result.TotalGain)
	assert.InDelta(t, 20.0, result.TotalGainPercent, 1e-9)

	require.Len(t, result.AssetAllocation, 1)
	assert.Equal(t, "Equity", result.AssetAllocation[0].Category)
	assert.InDelta(t, 100.0, result.AssetAllocation[0].Percentage, 1e-9)

	require.Len(t, result.TopPerformers, 1)
	assert.Equal(t, "ACME", result.TopPerformers[0].Name)

	require.Len(t, result.PerformanceData, 13)
	last := result.PerformanceData[len(result.PerformanceData)-1]
	assert.Equal(t, "Jun 2026", last.Date)
	assert.Equal(t, 1200.0, last.Value)
}

func TestComputePortfolioAnalytics_SellAllClampsGain(t *testing.T) {
	// Everything sold: value 0, basis 0, gain 0 rather than negative noise.
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{
		{ID: "inv-1", Name: "ACME", TypeCategory: "Equity", InitialPricePerUnit: 100},
	}, nil)

	tx := &mockTransactionReader{}
	tx.On("ListTransactions", []string{"inv-1"}).Return([]domain.Transaction{
		{InvestmentID: "inv-1", TransactionType: domain.TransactionBuy, Quantity: 10, TotalAmount: 1000, TransactionDate: "2026-01-10"},
		{InvestmentID: "inv-1", TransactionType: domain.TransactionSell, Quantity: 10, TotalAmount: 1100, TransactionDate: "2026-02-10"},
	}, nil)

	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", []string{"inv-1"}).Return([]domain.JournalEntry{}, nil)

	s := newTestService(inv, tx, j)
	result, err := s.ComputePortfolioAnalytics("user-1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalValue)
	assert.Equal(t, -100.0, result.TotalInvested) // raw, unclamped
	assert.Equal(t, 0.0, result.TotalGain)
	assert.Equal(t, 0.0, result.TotalGainPercent)
	assert.Empty(t, result.TopPerformers) // nothing held
}

func TestComputePortfolioAnalytics_AllocationSplit(t *testing.T) {
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{
		{ID: "inv-1", Name: "Stock A", TypeCategory: "Equity", InitialPricePerUnit: 60},
		{ID: "inv-2", Name: "Gold", TypeCategory: "Commodity", InitialPricePerUnit: 40},
	}, nil)

	tx := &mockTransactionReader{}
	tx.On("ListTransactions", []string{"inv-1", "inv-2"}).Return([]domain.Transaction{
		{InvestmentID: "inv-1", TransactionType: domain.TransactionBuy, Quantity: 10, TotalAmount: 600, TransactionDate: "2026-01-10"},
		{InvestmentID: "inv-2", TransactionType: domain.TransactionBuy, Quantity: 10, TotalAmount: 400, TransactionDate: "2026-01-10"},
	}, nil)

	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", []string{"inv-1", "inv-2"}).Return([]domain.JournalEntry{}, nil)

	s := newTestService(inv, tx, j)
	result, err := s.ComputePortfolioAnalytics("user-1")

	require.NoError(t, err)
	require.Len(t, result.AssetAllocation, 2)
	assert.Equal(t, "Equity", result.AssetAllocation[0].Category)
	assert.InDelta(t, 60.0, result.AssetAllocation[0].Percentage, 1e-9)
	assert.Equal(t, "Commodity", result.AssetAllocation[1].Category)
	assert.InDelta(t, 40.0, result.AssetAllocation[1].Percentage, 1e-9)

	assert.Len(t, result.InvestmentsByCategory["Equity"], 1)
	assert.Len(t, result.InvestmentsByCategory["Commodity"], 1)
}

func TestComputePortfolioAnalytics_SubFetchFailureDegrades(t *testing.T) {
	// Transaction and journal fetch failures degrade to empty histories; the
	// valuation falls back to initial-price semantics instead of erroring.
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{
		{ID: "inv-1", Name: "ACME", TypeCategory: "Equity", InitialPricePerUnit: 100},
	}, nil)

	tx := &mockTransactionReader{}
	tx.On("ListTransactions", []string{"inv-1"}).Return(nil, errors.New("timeout"))

	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", []string{"inv-1"}).Return(nil, errors.New("timeout"))

	s := newTestService(inv, tx, j)
	result, err := s.ComputePortfolioAnalytics("user-1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalValue) // no transactions, no quantity
}

func TestComputePortfolioAnalytics_Idempotent(t *testing.T) {
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{
		{ID: "inv-1", Name: "A", TypeCategory: "Equity", InitialPricePerUnit: 10},
		{ID: "inv-2", Name: "B", TypeCategory: "Equity", InitialPricePerUnit: 20},
	}, nil)

	tx := &mockTransactionReader{}
	tx.On("ListTransactions", []string{"inv-1", "inv-2"}).Return([]domain.Transaction{
		{InvestmentID: "inv-1", TransactionType: domain.TransactionBuy, Quantity: 5, TotalAmount: 50, TransactionDate: "2026-01-10"},
		{InvestmentID: "inv-2", TransactionType: domain.TransactionBuy, Quantity: 5, TotalAmount: 100, TransactionDate: "2026-01-12"},
	}, nil)

	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", []string{"inv-1", "inv-2"}).Return([]domain.JournalEntry{}, nil)

	s := newTestService(inv, tx, j)

	first, err := s.ComputePortfolioAnalytics("user-1")
	require.NoError(t, err)
	second, err := s.ComputePortfolioAnalytics("user-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputePortfolioSummary_MatchesAnalyticsTotals(t *testing.T) {
	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return([]domain.Investment{
		{ID: "inv-1", Name: "ACME", TypeCategory: "Equity", InitialPricePerUnit: 100},
	}, nil)

	tx := &mockTransactionReader{}
	tx.On("ListTransactions", []string{"inv-1"}).Return([]domain.Transaction{
		{InvestmentID: "inv-1", TransactionType: domain.TransactionBuy, Quantity: 10, TotalAmount: 1000, TransactionDate: "2026-01-10"},
	}, nil)

	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", []string{"inv-1"}).Return([]domain.JournalEntry{
		{InvestmentID: "inv-1", EntryDate: "2026-02-15", CurrentPrice: 120},
	}, nil)

	s := newTestService(inv, tx, j)

	summary, err := s.ComputePortfolioSummary("user-1")
	require.NoError(t, err)
	full, err := s.ComputePortfolioAnalytics("user-1")
	require.NoError(t, err)

	assert.Equal(t, full.TotalValue, summary.TotalValue)
	assert.Equal(t, full.TotalInvested, summary.TotalInvested)
	assert.Equal(t, full.TotalGain, summary.TotalGain)
	assert.Equal(t, full.TotalGainPercent, summary.TotalGainPercent)
}

func TestTopPerformers_RankedAndCapped(t *testing.T) {
	investments := make([]domain.Investment, 0, 7)
	txs := make([]domain.Transaction, 0, 7)
	entries := make([]domain.JournalEntry, 0, 7)
	ids := make([]string, 0, 7)

	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	// Gain percents 5%, 10%, ..., 35%.
	for i, name := range names {
		id := "inv-" + name
		ids = append(ids, id)
		investments = append(investments, domain.Investment{
			ID: id, Name: name, TypeCategory: "Equity", InitialPricePerUnit: 100,
		})
		txs = append(txs, domain.Transaction{
			InvestmentID: id, TransactionType: domain.TransactionBuy,
			Quantity: 1, TotalAmount: 100, TransactionDate: "2026-01-10",
		})
		entries = append(entries, domain.JournalEntry{
			InvestmentID: id, EntryDate: "2026-02-01",
			CurrentPrice: 100 + float64(5*(i+1)),
		})
	}

	inv := &mockInvestmentReader{}
	inv.On("ListByUser", "user-1").Return(investments, nil)
	tx := &mockTransactionReader{}
	tx.On("ListTransactions", ids).Return(txs, nil)
	j := &mockJournalReader{}
	j.On("ListByInvestmentIDs", ids).Return(entries, nil)

	s := newTestService(inv, tx, j)
	result, err := s.ComputePortfolioAnalytics("user-1")

	require.NoError(t, err)
	require.Len(t, result.TopPerformers, 5)
	assert.Equal(t, "G", result.TopPerformers[0].Name)
	assert.Equal(t, "C", result.TopPerformers[4].Name)
	assert.InDelta(t, 35.0, result.TopPerformers[0].GainPercent, 1e-9)
}
