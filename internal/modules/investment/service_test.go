package investment

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliotracker/folio/internal/domain"
)

type recordingInvalidator struct {
	userIDs []string
}

func (r *recordingInvalidator) Invalidate(userID string) error {
	r.userIDs = append(r.userIDs, userID)
	return nil
}

func newTestService(t *testing.T) (*Service, *recordingInvalidator, func()) {
	db := setupTestDB(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)
	invalidator := &recordingInvalidator{}
	svc := NewService(NewRepository(db, log), invalidator, log)
	return svc, invalidator, func() { db.Close() }
}

func TestRecordInvestment_CreatesInitialBuy(t *testing.T) {
	svc, invalidator, cleanup := newTestService(t)
	defer cleanup()

	inv, err := svc.RecordInvestment("user-1", CreateInvestmentInput{
		Name:             "Test Stock",
		Symbol:           "TST",
		InvestmentTypeID: 1,
		InitialAmount:    1000,
		InitialQuantity:  10,
		PurchaseDate:     "2026-01-10",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, 100.0, inv.InitialPricePerUnit)
	assert.Equal(t, "USD", inv.Currency) // default

	txs, err := svc.ListTransactions("user-1", inv.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionBuy, txs[0].TransactionType)
	assert.Equal(t, 10.0, txs[0].Quantity)
	assert.Equal(t, 1000.0, txs[0].TotalAmount)
	assert.Equal(t, "Initial purchase", txs[0].Notes)

	assert.Equal(t, []string{"user-1"}, invalidator.userIDs)
}

func TestRecordInvestment_Validation(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	cases := []struct {
		name string
		in   CreateInvestmentInput
	}{
		{"missing name", CreateInvestmentInput{InvestmentTypeID: 1, InitialAmount: 100, InitialQuantity: 1, PurchaseDate: "2026-01-10"}},
		{"missing type", CreateInvestmentInput{Name: "X", InitialAmount: 100, InitialQuantity: 1, PurchaseDate: "2026-01-10"}},
		{"zero quantity", CreateInvestmentInput{Name: "X", InvestmentTypeID: 1, InitialAmount: 100, PurchaseDate: "2026-01-10"}},
		{"negative amount", CreateInvestmentInput{Name: "X", InvestmentTypeID: 1, InitialAmount: -100, InitialQuantity: 1, PurchaseDate: "2026-01-10"}},
		{"bad date", CreateInvestmentInput{Name: "X", InvestmentTypeID: 1, InitialAmount: 100, InitialQuantity: 1, PurchaseDate: "10/01/2026"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordInvestment("user-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordInvestment_EmptyUserIDUnauthorized(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.RecordInvestment("", CreateInvestmentInput{})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRecordTransaction_ComputesTotalAmount(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	inv, err := svc.RecordInvestment("user-1", CreateInvestmentInput{
		Name: "Test Stock", InvestmentTypeID: 1,
		InitialAmount: 1000, InitialQuantity: 10, PurchaseDate: "2026-01-10",
	})
	require.NoError(t, err)

	tx, err := svc.RecordTransaction("user-1", inv.ID, CreateTransactionInput{
		TransactionType: domain.TransactionSell,
		Quantity:        3,
		PricePerUnit:    120,
		TransactionDate: "2026-02-10",
	})

	require.NoError(t, err)
	assert.Equal(t, 360.0, tx.TotalAmount)
}

func TestRecordTransaction_OwnershipEnforced(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	inv, err := svc.RecordInvestment("user-1", CreateInvestmentInput{
		Name: "Test Stock", InvestmentTypeID: 1,
		InitialAmount: 1000, InitialQuantity: 10, PurchaseDate: "2026-01-10",
	})
	require.NoError(t, err)

	_, err = svc.RecordTransaction("user-2", inv.ID, CreateTransactionInput{
		TransactionType: domain.TransactionBuy,
		Quantity:        1,
		PricePerUnit:    100,
		TransactionDate: "2026-02-10",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordTransaction_RejectsNegativePrice(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.RecordTransaction("user-1", "inv-x", CreateTransactionInput{
		TransactionType: domain.TransactionBuy,
		Quantity:        1,
		PricePerUnit:    -5,
		TransactionDate: "2026-02-10",
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "price per unit")
}

func TestRecordTransaction_RejectsUnknownType(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.RecordTransaction("user-1", "inv-x", CreateTransactionInput{
		TransactionType: "transfer",
		Quantity:        1,
		PricePerUnit:    100,
		TransactionDate: "2026-02-10",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteInvestment_OwnershipEnforced(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	inv, err := svc.RecordInvestment("user-1", CreateInvestmentInput{
		Name: "Test Stock", InvestmentTypeID: 1,
		InitialAmount: 1000, InitialQuantity: 10, PurchaseDate: "2026-01-10",
	})
	require.NoError(t, err)

	err = svc.DeleteInvestment("user-2", inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Owner can delete; the record and its history are gone.
	require.NoError(t, svc.DeleteInvestment("user-1", inv.ID))

	investments, err := svc.ListInvestments("user-1")
	require.NoError(t, err)
	assert.Empty(t, investments)
}
