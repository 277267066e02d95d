// Package analytics is the portfolio aggregation engine. It turns raw
// transaction and price-journal records into current holdings, valuations,
// category allocation and a reconstructed monthly performance timeline.
// Everything here is a pure function of the records fetched at the start of
// a request; the engine never writes.
package analytics

import "github.com/foliotracker/folio/internal/domain"

// HoldingTotals is the derived aggregate state of one investment after
// replaying its transactions. Never persisted; recomputed per request.
type HoldingTotals struct {
	TotalQuantity       float64 `json:"total_quantity"`
	NetInvested         float64 `json:"net_invested"`
	AvgCostPerUnit      float64 `json:"avg_cost_per_unit"`
	LastTransactionDate string  `json:"last_transaction_date,omitempty"`
}

// Valuation is the current worth of one investment at the resolved price.
type Valuation struct {
	CurrentPrice float64 `json:"current_price"`
	CurrentValue float64 `json:"current_value"`
	Gain         float64 `json:"gain"`
	GainPercent  float64 `json:"gain_percent"`
}

// InvestmentValuation pairs an investment with its derived holding state
// and valuation for snapshot views.
type InvestmentValuation struct {
	Investment domain.Investment `json:"investment"`
	Totals     HoldingTotals     `json:"totals"`
	Valuation
}

// AllocationSlice is one category's share of the portfolio by current value.
type AllocationSlice struct {
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// PerformancePoint is one month-end checkpoint of reconstructed portfolio value.
type PerformancePoint struct {
	Date  string  `json:"date"` // "Jan 2006"
	Value float64 `json:"value"`
}

// TopPerformer is a currently-held investment ranked by gain percent.
type TopPerformer struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol,omitempty"`
	GainPercent  float64 `json:"gain_percent"`
	CurrentValue float64 `json:"current_value"`
}

// PortfolioAnalytics is the full analytics result for one user.
type PortfolioAnalytics struct {
	TotalValue            float64                          `json:"total_value"`
	TotalInvested         float64                          `json:"total_invested"`
	TotalGain             float64                          `json:"total_gain"`
	TotalGainPercent      float64                          `json:"total_gain_percent"`
	AssetAllocation       []AllocationSlice                `json:"asset_allocation"`
	PerformanceData       []PerformancePoint               `json:"performance_data"`
	TopPerformers         []TopPerformer                   `json:"top_performers"`
	InvestmentsByCategory map[string][]InvestmentValuation `json:"investments_by_category"`
}

// PortfolioSummary is the lightweight current-snapshot subset, without the
// timeline, for views that don't need history.
type PortfolioSummary struct {
	TotalValue       float64 `json:"total_value"`
	TotalInvested    float64 `json:"total_invested"`
	TotalGain        float64 `json:"total_gain"`
	TotalGainPercent float64 `json:"total_gain_percent"`
}

// emptyAnalytics is the well-defined zero result for a user with no
// investments. Empty data is not an error.
func emptyAnalytics() *PortfolioAnalytics {
	return &PortfolioAnalytics{
		AssetAllocation:       []AllocationSlice{},
		PerformanceData:       []PerformancePoint{},
		TopPerformers:         []TopPerformer{},
		InvestmentsByCategory: map[string][]InvestmentValuation{},
	}
}
