package analytics

import "math"

// Valuate combines holding totals with the resolved current price.
//
// The running quantity is clamped to non-negative here so an over-sold
// investment never produces a negative valuation, and the cost basis is
// clamped for the gain computation so a negative net-invested (net selling
// exceeded net buying) reads as zero basis instead of a nonsensical
// negative one. Gain percent carries an explicit divide-by-zero guard.
func Valuate(totals HoldingTotals, currentPrice float64) Valuation {
	currentValue := math.Max(0, totals.TotalQuantity) * currentPrice

	costBasis := math.Max(0, totals.NetInvested)
	gain := currentValue - costBasis

	gainPercent := 0.0
	if costBasis > 0 {
		gainPercent = gain / costBasis * 100
	}

	return Valuation{
		CurrentPrice: currentPrice,
		CurrentValue: currentValue,
		Gain:         gain,
		GainPercent:  gainPercent,
	}
}
