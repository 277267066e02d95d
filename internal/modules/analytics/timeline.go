package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/foliotracker/folio/internal/domain"
)

// timelineMonths is the trailing window reconstructed for the performance
// chart: 12 past months plus the current month, 13 checkpoints total.
const timelineMonths = 12

// MonthEnds returns ascending month-end checkpoints for the trailing n
// months plus the current month. Each checkpoint is the last instant of its
// month (23:59:59.999 UTC), so any event dated within the month sorts at or
// before it.
func MonthEnds(n int, now time.Time) []time.Time {
	now = now.UTC()
	ends := make([]time.Time, 0, n+1)
	for i := n; i >= 0; i-- {
		// Day 0 of the following month normalizes to this month's last day.
		end := time.Date(now.Year(), now.Month()-time.Month(i)+1, 0, 23, 59, 59,
			999_000_000, time.UTC)
		ends = append(ends, end)
	}
	return ends
}

// ReconstructTimeline replays every investment's transaction and journal
// history against the given checkpoints and returns the portfolio-wide value
// series.
//
// Per investment the replay is a single forward pass: one cursor over its
// transactions sorted ascending by date adjusts the running quantity, and
// one cursor over its journal entries sorted ascending by date carries the
// last positive observation forward (LOCF). A zero or negative observation
// never overwrites the carried price. Cursors only advance; no event is
// re-applied or skipped across checkpoints.
//
// The price falls back to the investment's initial price per unit until the
// first positive observation. An investment with no transactions contributes
// nothing at any checkpoint: holdings exist only through transactions, so
// the initial purchase shows up via its recorded initial buy, never as
// phantom quantity.
func ReconstructTimeline(
	investments []domain.Investment,
	txsByInvestment map[string][]domain.Transaction,
	journalByInvestment map[string][]domain.JournalEntry,
	checkpoints []time.Time,
) []PerformancePoint {
	totals := make([]float64, len(checkpoints))

	for _, inv := range investments {
		txs := sortedByDate(txsByInvestment[inv.ID])
		entries := journalByInvestment[inv.ID] // repository order: ascending

		var runningQty float64
		runningPrice := 0.0
		havePrice := false
		txIdx, jIdx := 0, 0

		for ci, checkpoint := range checkpoints {
			// Apply every not-yet-applied transaction dated at or before
			// this checkpoint.
			for txIdx < len(txs) && !parseDate(txs[txIdx].TransactionDate).After(checkpoint) {
				tx := txs[txIdx]
				txIdx++
				if tx.TransactionType == domain.TransactionSell {
					runningQty -= tx.Quantity
				} else {
					runningQty += tx.Quantity
				}
			}

			// Advance the journal cursor; only positive observations update
			// the carried price.
			for jIdx < len(entries) && !parseDate(entries[jIdx].EntryDate).After(checkpoint) {
				if p := entries[jIdx].CurrentPrice; p > 0 {
					runningPrice = p
					havePrice = true
				}
				jIdx++
			}

			price := runningPrice
			if !havePrice {
				price = inv.InitialPricePerUnit
			}
			if price < 0 {
				price = 0
			}

			totals[ci] += math.Max(0, runningQty) * price
		}
	}

	points := make([]PerformancePoint, len(checkpoints))
	for i, checkpoint := range checkpoints {
		points[i] = PerformancePoint{
			Date:  checkpoint.Format("Jan 2006"),
			Value: math.Round(totals[i]),
		}
	}
	return points
}

// sortedByDate returns a copy of txs sorted ascending by transaction date.
// The store guarantees no ordering, so the replay sorts explicitly.
func sortedByDate(txs []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate < sorted[j].TransactionDate
	})
	return sorted
}

// parseDate parses a YYYY-MM-DD record date. An unparseable date reads as
// the zero time, which sorts before every checkpoint and therefore applies
// at the first one rather than aborting the replay.
func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
