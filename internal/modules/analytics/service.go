package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/foliotracker/folio/internal/domain"
)

// topPerformerLimit caps the ranked top-performers list.
const topPerformerLimit = 5

// InvestmentReader provides the user's investment records.
// Defined here to decouple the engine from any specific store.
type InvestmentReader interface {
	ListByUser(userID string) ([]domain.Investment, error)
}

// TransactionReader provides transaction events for a set of investments.
type TransactionReader interface {
	ListTransactions(investmentIDs []string) ([]domain.Transaction, error)
}

// JournalReader provides journal entries for a set of investments, ordered
// ascending by entry date.
type JournalReader interface {
	ListByInvestmentIDs(investmentIDs []string) ([]domain.JournalEntry, error)
}

// Service runs the aggregation engine over a user's records. Each call is a
// stateless full recompute: records are fetched once up front and the rest
// is pure computation, so two calls with no intervening writes return
// identical results.
type Service struct {
	investments  InvestmentReader
	transactions TransactionReader
	journal      JournalReader
	now          func() time.Time
	log          zerolog.Logger
}

// NewService creates a new analytics service
func NewService(
	investments InvestmentReader,
	transactions TransactionReader,
	journal JournalReader,
	log zerolog.Logger,
) *Service {
	return &Service{
		investments:  investments,
		transactions: transactions,
		journal:      journal,
		now:          time.Now,
		log:          log.With().Str("service", "analytics").Logger(),
	}
}

// SetClock overrides the time source. Used by tests to pin the timeline
// checkpoints.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ComputePortfolioAnalytics produces the full analytics result for a user:
// totals, allocation, timeline and top performers. A user with no
// investments gets the zero-valued result, not an error.
func (s *Service) ComputePortfolioAnalytics(userID string) (*PortfolioAnalytics, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	investments, err := s.investments.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	if len(investments) == 0 {
		return emptyAnalytics(), nil
	}

	txsByInv, journalByInv := s.fetchEvents(investments)

	valuations := valuate(investments, txsByInv, journalByInv)
	result := summarize(valuations)

	checkpoints := MonthEnds(timelineMonths, s.now())
	result.PerformanceData = ReconstructTimeline(investments, txsByInv, journalByInv, checkpoints)

	return result, nil
}

// ComputePortfolioSummary is the lightweight read model: current totals
// only, no timeline reconstruction.
func (s *Service) ComputePortfolioSummary(userID string) (*PortfolioSummary, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	valuations, err := s.ComputeHoldingsWithValue(userID)
	if err != nil {
		return nil, err
	}

	totalValue, totalInvested := sumTotals(valuations)
	totalGain, totalGainPercent := gainOn(totalValue, totalInvested)

	return &PortfolioSummary{
		TotalValue:       totalValue,
		TotalInvested:    totalInvested,
		TotalGain:        totalGain,
		TotalGainPercent: totalGainPercent,
	}, nil
}

// ComputeHoldingsWithValue returns every investment with its derived holding
// state and valuation, for portfolio list views.
func (s *Service) ComputeHoldingsWithValue(userID string) ([]InvestmentValuation, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	investments, err := s.investments.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	if len(investments) == 0 {
		return []InvestmentValuation{}, nil
	}

	txsByInv, journalByInv := s.fetchEvents(investments)
	return valuate(investments, txsByInv, journalByInv), nil
}

// fetchEvents batch-reads the transaction and journal histories for a set of
// investments and groups them by investment id. A failed sub-fetch degrades
// to empty data for that record family rather than aborting the whole
// computation; the failure is logged and the valuation falls back to
// initial-price semantics.
func (s *Service) fetchEvents(investments []domain.Investment) (
	map[string][]domain.Transaction,
	map[string][]domain.JournalEntry,
) {
	ids := make([]string, len(investments))
	for i, inv := range investments {
		ids[i] = inv.ID
	}

	txs, err := s.transactions.ListTransactions(ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("Transaction fetch failed, computing without transactions")
		txs = nil
	}

	entries, err := s.journal.ListByInvestmentIDs(ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("Journal fetch failed, computing without journal entries")
		entries = nil
	}

	txsByInv := make(map[string][]domain.Transaction)
	for _, tx := range txs {
		txsByInv[tx.InvestmentID] = append(txsByInv[tx.InvestmentID], tx)
	}

	journalByInv := make(map[string][]domain.JournalEntry)
	for _, e := range entries {
		journalByInv[e.InvestmentID] = append(journalByInv[e.InvestmentID], e)
	}

	return txsByInv, journalByInv
}

// valuate runs the aggregate → price → valuation pipeline per investment.
func valuate(
	investments []domain.Investment,
	txsByInv map[string][]domain.Transaction,
	journalByInv map[string][]domain.JournalEntry,
) []InvestmentValuation {
	valuations := make([]InvestmentValuation, 0, len(investments))
	for _, inv := range investments {
		totals := AggregateHoldings(inv, txsByInv[inv.ID])
		price := ResolveCurrentPrice(inv, totals, journalByInv[inv.ID])
		valuations = append(valuations, InvestmentValuation{
			Investment: inv,
			Totals:     totals,
			Valuation:  Valuate(totals, price),
		})
	}
	return valuations
}

// summarize aggregates per-investment valuations into portfolio totals,
// category allocation and the ranked top-performers list.
func summarize(valuations []InvestmentValuation) *PortfolioAnalytics {
	result := emptyAnalytics()

	totalValue, totalInvested := sumTotals(valuations)
	result.TotalValue = totalValue
	// Deliberately unclamped: portfolio-wide net selling beyond net buying
	// reports as a negative invested figure.
	result.TotalInvested = totalInvested
	result.TotalGain, result.TotalGainPercent = gainOn(totalValue, totalInvested)

	// Allocation by category, grouped on the investment type's category.
	type categoryAgg struct {
		value float64
		count int
	}
	categories := make(map[string]*categoryAgg)
	for _, v := range valuations {
		category := v.Investment.TypeCategory
		agg, ok := categories[category]
		if !ok {
			agg = &categoryAgg{}
			categories[category] = agg
		}
		agg.value += v.CurrentValue
		agg.count++

		result.InvestmentsByCategory[category] = append(result.InvestmentsByCategory[category], v)
	}

	for category, agg := range categories {
		percentage := 0.0
		if totalValue > 0 {
			percentage = agg.value / totalValue * 100
		}
		result.AssetAllocation = append(result.AssetAllocation, AllocationSlice{
			Category:   category,
			Value:      agg.value,
			Percentage: percentage,
			Count:      agg.count,
		})
	}
	// Deterministic order: largest slice first, category name breaks ties.
	sort.Slice(result.AssetAllocation, func(i, j int) bool {
		a, b := result.AssetAllocation[i], result.AssetAllocation[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Category < b.Category
	})

	// Top performers: only investments currently held; gain percent on zero
	// holdings is meaningless for a forward-looking ranking.
	held := make([]InvestmentValuation, 0, len(valuations))
	for _, v := range valuations {
		if v.Totals.TotalQuantity > 0 {
			held = append(held, v)
		}
	}
	sort.SliceStable(held, func(i, j int) bool {
		return held[i].GainPercent > held[j].GainPercent
	})
	for i, v := range held {
		if i == topPerformerLimit {
			break
		}
		result.TopPerformers = append(result.TopPerformers, TopPerformer{
			Name:         v.Investment.Name,
			Symbol:       v.Investment.Symbol,
			GainPercent:  v.GainPercent,
			CurrentValue: v.CurrentValue,
		})
	}

	return result
}

// sumTotals sums current values and raw net-invested across valuations.
func sumTotals(valuations []InvestmentValuation) (totalValue, totalInvested float64) {
	if len(valuations) == 0 {
		return 0, 0
	}
	values := make([]float64, len(valuations))
	invested := make([]float64, len(valuations))
	for i, v := range valuations {
		values[i] = v.CurrentValue
		invested[i] = v.Totals.NetInvested
	}
	return floats.Sum(values), floats.Sum(invested)
}

// gainOn applies the clamped-basis gain rule at the portfolio level.
func gainOn(totalValue, totalInvested float64) (gain, gainPercent float64) {
	basis := math.Max(0, totalInvested)
	gain = totalValue - basis
	if basis > 0 {
		gainPercent = gain / basis * 100
	}
	return gain, gainPercent
}
