package analytics

import "github.com/foliotracker/folio/internal/domain"

// ResolveCurrentPrice picks the price used for current valuation, in
// priority order:
//
//  1. the latest journal observation, if strictly positive
//  2. the average cost per unit, if strictly positive
//  3. the investment's recorded initial price per unit (0 if absent)
//
// A user may never journal an investment; the valuation must still be
// plausible rather than fail, which is why the fallback chain is total.
// entries must be sorted ascending by entry date (the repository order).
func ResolveCurrentPrice(inv domain.Investment, totals HoldingTotals, entries []domain.JournalEntry) float64 {
	if len(entries) > 0 {
		if latest := entries[len(entries)-1].CurrentPrice; latest > 0 {
			return latest
		}
	}

	if totals.AvgCostPerUnit > 0 {
		return totals.AvgCostPerUnit
	}

	return inv.InitialPricePerUnit
}
