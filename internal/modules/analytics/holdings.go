package analytics

import "github.com/foliotracker/folio/internal/domain"

// AggregateHoldings reduces an investment's transaction list into running
// quantity, net invested and the most recent transaction date. The input
// order does not matter: buys and sells are commutative sums and the last
// date is tracked as a running maximum (lexicographic on ISO dates, later
// occurrence wins ties).
//
// A sell is allowed to push the running quantity or net invested negative;
// clamping happens at valuation time, never here. Malformed numeric fields
// have already been coerced to zero at the repository boundary, so a bad
// record degrades to zero contribution instead of failing the computation.
func AggregateHoldings(inv domain.Investment, txs []domain.Transaction) HoldingTotals {
	var qty, amt float64
	var last string

	for _, tx := range txs {
		switch tx.TransactionType {
		case domain.TransactionBuy:
			qty += tx.Quantity
			amt += tx.TotalAmount
		case domain.TransactionSell:
			qty -= tx.Quantity
			amt -= tx.TotalAmount
		}

		if tx.TransactionDate != "" && tx.TransactionDate >= last {
			last = tx.TransactionDate
		}
	}

	avgCost := inv.InitialPricePerUnit
	if qty != 0 {
		avgCost = amt / qty
	}

	return HoldingTotals{
		TotalQuantity:       qty,
		NetInvested:         amt,
		AvgCostPerUnit:      avgCost,
		LastTransactionDate: last,
	}
}
