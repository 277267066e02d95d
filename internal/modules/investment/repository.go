// Package investment manages the investment catalog and its transaction history.
package investment

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles investment and transaction database operations.
// Numeric columns scan through sql.NullFloat64 so NULL or missing values
// degrade to zero instead of failing the whole read.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new investment repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "investment").Logger(),
	}
}

const investmentColumns = `i.id, i.user_id, i.investment_type_id, i.name, i.symbol,
	i.initial_amount, i.initial_quantity, i.initial_price_per_unit,
	i.currency, i.purchase_date, i.created_at,
	t.name, t.category, t.unit_type`

// ListByUser returns all investments owned by a user with type info joined,
// newest first.
func (r *Repository) ListByUser(userID string) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + `
		FROM investments i
		JOIN investment_types t ON t.id = i.investment_type_id
		WHERE i.user_id = ?
		ORDER BY i.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}

	return investments, nil
}

// GetOwned returns an investment only if it belongs to the given user.
// A record owned by someone else reads as domain.ErrNotFound.
func (r *Repository) GetOwned(investmentID, userID string) (domain.Investment, error) {
	query := `SELECT ` + investmentColumns + `
		FROM investments i
		JOIN investment_types t ON t.id = i.investment_type_id
		WHERE i.id = ? AND i.user_id = ?`

	row := r.db.QueryRow(query, investmentID, userID)
	inv, err := scanInvestment(row)
	if err == sql.ErrNoRows {
		return domain.Investment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Investment{}, fmt.Errorf("failed to query investment: %w", err)
	}
	return inv, nil
}

// Create inserts an investment row, optionally within an existing transaction.
func (r *Repository) Create(tx *sql.Tx, inv domain.Investment) error {
	_, err := tx.Exec(
		`INSERT INTO investments (id, user_id, investment_type_id, name, symbol,
			initial_amount, initial_quantity, initial_price_per_unit, currency, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.UserID, inv.InvestmentTypeID, inv.Name, nullable(inv.Symbol),
		inv.InitialAmount, inv.InitialQuantity, inv.InitialPricePerUnit,
		inv.Currency, inv.PurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}
	return nil
}

// Delete removes an investment and all its child records in one transaction.
// The cascade is enforced here rather than by the database schema so the
// delete path stays explicit and auditable in logs.
func (r *Repository) Delete(investmentID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM journal_entries WHERE investment_id = ?`, investmentID); err != nil {
		return fmt.Errorf("failed to delete journal entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM transactions WHERE investment_id = ?`, investmentID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM investments WHERE id = ?`, investmentID); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// ListTypes returns the investment type catalog ordered by name.
func (r *Repository) ListTypes() ([]domain.InvestmentType, error) {
	rows, err := r.db.Query(`SELECT id, name, category, unit_type FROM investment_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment types: %w", err)
	}
	defer rows.Close()

	var types []domain.InvestmentType
	for rows.Next() {
		var t domain.InvestmentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.UnitType); err != nil {
			return nil, fmt.Errorf("failed to scan investment type: %w", err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment types: %w", err)
	}

	return types, nil
}

// CreateTransaction inserts a transaction event, optionally within an
// existing db transaction (tx may be nil).
func (r *Repository) CreateTransaction(tx *sql.Tx, t domain.Transaction) error {
	query := `INSERT INTO transactions (id, investment_id, transaction_type, quantity,
		price_per_unit, total_amount, transaction_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	args := []interface{}{
		t.ID, t.InvestmentID, t.TransactionType, t.Quantity,
		t.PricePerUnit, t.TotalAmount, t.TransactionDate, nullable(t.Notes),
	}

	var err error
	if tx != nil {
		_, err = tx.Exec(query, args...)
	} else {
		_, err = r.db.Exec(query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactions returns all transactions for the given investment ids.
// No ordering is guaranteed; the analytics engine sorts before replay.
func (r *Repository) ListTransactions(investmentIDs []string) ([]domain.Transaction, error) {
	if len(investmentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, investment_id, transaction_type, quantity, price_per_unit,
		total_amount, transaction_date, notes, created_at
		FROM transactions
		WHERE investment_id IN (` + placeholders(len(investmentIDs)) + `)`

	rows, err := r.db.Query(query, toArgs(investmentIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var quantity, pricePerUnit, totalAmount sql.NullFloat64
		var notes sql.NullString

		if err := rows.Scan(&t.ID, &t.InvestmentID, &t.TransactionType, &quantity,
			&pricePerUnit, &totalAmount, &t.TransactionDate, &notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Quantity = quantity.Float64
		t.PricePerUnit = pricePerUnit.Float64
		t.TotalAmount = totalAmount.Float64
		t.Notes = notes.String
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// ListTransactionsByInvestment returns one investment's transactions,
// newest first, for history views.
func (r *Repository) ListTransactionsByInvestment(investmentID string) ([]domain.Transaction, error) {
	txs, err := r.ListTransactions([]string{investmentID})
	if err != nil {
		return nil, err
	}
	sortTransactionsDesc(txs)
	return txs, nil
}

func sortTransactionsDesc(txs []domain.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].TransactionDate > txs[j].TransactionDate
	})
}

func scanInvestment(row interface{ Scan(...interface{}) error }) (domain.Investment, error) {
	var inv domain.Investment
	var symbol sql.NullString
	var initialAmount, initialQuantity, initialPPU sql.NullFloat64

	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.InvestmentTypeID, &inv.Name, &symbol,
		&initialAmount, &initialQuantity, &initialPPU,
		&inv.Currency, &inv.PurchaseDate, &inv.CreatedAt,
		&inv.TypeName, &inv.TypeCategory, &inv.UnitType,
	)
	if err != nil {
		return domain.Investment{}, err
	}

	inv.Symbol = symbol.String
	inv.InitialAmount = initialAmount.Float64
	inv.InitialQuantity = initialQuantity.Float64
	inv.InitialPricePerUnit = initialPPU.Float64
	return inv, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// DB exposes the underlying connection for cross-repository transactions.
func (r *Repository) DB() *sql.DB {
	return r.db
}
