package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliotracker/folio/internal/domain"
)

func TestResolveCurrentPrice_LatestJournalEntryWins(t *testing.T) {
	inv := domain.Investment{InitialPricePerUnit: 100}
	totals := HoldingTotals{AvgCostPerUnit: 105}
	entries := []domain.JournalEntry{
		{EntryDate: "2026-01-15", CurrentPrice: 110},
		{EntryDate: "2026-02-15", CurrentPrice: 120},
	}

	price := ResolveCurrentPrice(inv, totals, entries)

	assert.Equal(t, 120.0, price)
}

func TestResolveCurrentPrice_NonPositiveLatestFallsBackToAvgCost(t *testing.T) {
	inv := domain.Investment{InitialPricePerUnit: 100}
	totals := HoldingTotals{AvgCostPerUnit: 105}
	entries := []domain.JournalEntry{
		{EntryDate: "2026-01-15", CurrentPrice: 110},
		{EntryDate: "2026-02-15", CurrentPrice: 0},
	}

	price := ResolveCurrentPrice(inv, totals, entries)

	assert.Equal(t, 105.0, price)
}

func TestResolveCurrentPrice_NoJournalUsesAvgCost(t *testing.T) {
	inv := domain.Investment{InitialPricePerUnit: 100}
	totals := HoldingTotals{AvgCostPerUnit: 103.5}

	price := ResolveCurrentPrice(inv, totals, nil)

	assert.Equal(t, 103.5, price)
}

func TestResolveCurrentPrice_FinalFallbackIsInitialPrice(t *testing.T) {
	inv := domain.Investment{InitialPricePerUnit: 99}
	totals := HoldingTotals{AvgCostPerUnit: -10}

	price := ResolveCurrentPrice(inv, totals, nil)

	assert.Equal(t, 99.0, price)
}

func TestResolveCurrentPrice_EverythingMissingIsZero(t *testing.T) {
	price := ResolveCurrentPrice(domain.Investment{}, HoldingTotals{}, nil)

	assert.Equal(t, 0.0, price)
}
