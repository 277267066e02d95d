package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuate_GainOnAppreciatedHolding(t *testing.T) {
	// 10 units bought for 1000, journal price 120.
	totals := HoldingTotals{TotalQuantity: 10, NetInvested: 1000}

	v := Valuate(totals, 120)

	assert.Equal(t, 1200.0, v.CurrentValue)
	assert.Equal(t, 200.0, v.Gain)
	assert.InDelta(t, 20.0, v.GainPercent, 1e-9)
}

func TestValuate_NegativeQuantityClampedToZeroValue(t *testing.T) {
	totals := HoldingTotals{TotalQuantity: -3, NetInvested: 100}

	v := Valuate(totals, 50)

	assert.Equal(t, 0.0, v.CurrentValue)
	assert.Equal(t, -100.0, v.Gain)
}

func TestValuate_NegativeBasisClampedForGain(t *testing.T) {
	// Sold for more than ever bought: basis reads as zero, gain percent
	// stays zero under the divide-by-zero guard.
	totals := HoldingTotals{TotalQuantity: 0, NetInvested: -400}

	v := Valuate(totals, 80)

	assert.Equal(t, 0.0, v.CurrentValue)
	assert.Equal(t, 0.0, v.Gain)
	assert.Equal(t, 0.0, v.GainPercent)
}

func TestValuate_ZeroBasisNoGainPercent(t *testing.T) {
	totals := HoldingTotals{TotalQuantity: 5, NetInvested: 0}

	v := Valuate(totals, 10)

	assert.Equal(t, 50.0, v.CurrentValue)
	assert.Equal(t, 50.0, v.Gain)
	assert.Equal(t, 0.0, v.GainPercent)
}
