// Package journal manages manual price observations for investments.
package journal

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles journal entry database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new journal repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "journal").Logger(),
	}
}

// Create inserts a journal entry row
func (r *Repository) Create(entry domain.JournalEntry) error {
	_, err := r.db.Exec(
		`INSERT INTO journal_entries (id, investment_id, entry_date, current_price, notes)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.InvestmentID, entry.EntryDate, entry.CurrentPrice, nullable(entry.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// ListByInvestmentIDs returns all entries for the given investments ordered
// by entry date ascending. The analytics engine relies on this ordering for
// last-observation-carry-forward replay.
func (r *Repository) ListByInvestmentIDs(investmentIDs []string) ([]domain.JournalEntry, error) {
	if len(investmentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, investment_id, entry_date, current_price, notes, created_at
		FROM journal_entries
		WHERE investment_id IN (` + placeholders(len(investmentIDs)) + `)
		ORDER BY entry_date ASC`

	rows, err := r.db.Query(query, toArgs(investmentIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByUser returns all of a user's entries with investment context,
// newest first, for the journal page.
func (r *Repository) ListByUser(userID string) ([]domain.JournalEntry, error) {
	query := `SELECT j.id, j.investment_id, j.entry_date, j.current_price, j.notes, j.created_at,
		i.name, i.symbol
		FROM journal_entries j
		JOIN investments i ON i.id = j.investment_id
		WHERE i.user_id = ?
		ORDER BY j.entry_date DESC, j.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var price sql.NullFloat64
		var notes, symbol sql.NullString

		if err := rows.Scan(&e.ID, &e.InvestmentID, &e.EntryDate, &price, &notes,
			&e.CreatedAt, &e.InvestmentName, &symbol); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		e.CurrentPrice = price.Float64
		e.Notes = notes.String
		e.InvestmentSymbol = symbol.String
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}

	return entries, nil
}

// GetOwned returns an entry only if its investment belongs to the user.
func (r *Repository) GetOwned(entryID, userID string) (domain.JournalEntry, error) {
	query := `SELECT j.id, j.investment_id, j.entry_date, j.current_price, j.notes, j.created_at
		FROM journal_entries j
		JOIN investments i ON i.id = j.investment_id
		WHERE j.id = ? AND i.user_id = ?`

	var e domain.JournalEntry
	var price sql.NullFloat64
	var notes sql.NullString

	err := r.db.QueryRow(query, entryID, userID).Scan(
		&e.ID, &e.InvestmentID, &e.EntryDate, &price, &notes, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.JournalEntry{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to query journal entry: %w", err)
	}

	e.CurrentPrice = price.Float64
	e.Notes = notes.String
	return e, nil
}

// Delete removes a journal entry row
func (r *Repository) Delete(entryID string) error {
	if _, err := r.db.Exec(`DELETE FROM journal_entries WHERE id = ?`, entryID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var price sql.NullFloat64
		var notes sql.NullString

		if err := rows.Scan(&e.ID, &e.InvestmentID, &e.EntryDate, &price, &notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		e.CurrentPrice = price.Float64
		e.Notes = notes.String
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}

	return entries, nil
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
