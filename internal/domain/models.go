// Package domain contains the shared domain types for Folio.
// The domain layer is pure: no database, HTTP, or logging dependencies.
package domain

// InvestmentType describes a catalog entry for classifying investments
// (e.g. "Stocks" in category "Equity", unit type "shares").
type InvestmentType struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	UnitType string `json:"unit_type"`
}

// Investment is a user-owned holding record. It is immutable after creation
// except for deletion, which cascades to its transactions and journal entries.
type Investment struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"user_id"`
	InvestmentTypeID    int64   `json:"investment_type_id"`
	Name                string  `json:"name"`
	Symbol              string  `json:"symbol,omitempty"`
	InitialAmount       float64 `json:"initial_amount"`
	InitialQuantity     float64 `json:"initial_quantity"`
	InitialPricePerUnit float64 `json:"initial_price_per_unit"`
	Currency            string  `json:"currency"`
	PurchaseDate        string  `json:"purchase_date"` // YYYY-MM-DD
	CreatedAt           string  `json:"created_at"`

	// Type info joined from the investment_types catalog.
	TypeName     string `json:"type_name,omitempty"`
	TypeCategory string `json:"type_category,omitempty"`
	UnitType     string `json:"unit_type,omitempty"`
}

// Transaction kinds. The aggregate holding state is derived by replaying
// transactions, never stored directly.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction is an append-only buy/sell event against an investment.
// TotalAmount is trusted as recorded, not recomputed during aggregation.
type Transaction struct {
	ID              string  `json:"id"`
	InvestmentID    string  `json:"investment_id"`
	TransactionType string  `json:"transaction_type"`
	Quantity        float64 `json:"quantity"`
	PricePerUnit    float64 `json:"price_per_unit"`
	TotalAmount     float64 `json:"total_amount"`
	TransactionDate string  `json:"transaction_date"` // YYYY-MM-DD
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// JournalEntry is a point-in-time manual observation of an investment's
// market price. Only the latest entry feeds current valuation; the full
// ordered history feeds timeline reconstruction.
type JournalEntry struct {
	ID           string  `json:"id"`
	InvestmentID string  `json:"investment_id"`
	EntryDate    string  `json:"entry_date"` // YYYY-MM-DD
	CurrentPrice float64 `json:"current_price"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`

	// Investment context joined for journal list views.
	InvestmentName   string `json:"investment_name,omitempty"`
	InvestmentSymbol string `json:"investment_symbol,omitempty"`
}

// User is an authenticated account. PasswordHash never leaves the auth module.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name,omitempty"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// UserSettings holds per-user preferences. The default currency is a display
// label only and is never converted.
type UserSettings struct {
	UserID          string `json:"user_id"`
	DefaultCurrency string `json:"default_currency"`
}
