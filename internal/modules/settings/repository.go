// Package settings manages per-user preferences.
package settings

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles user settings database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new settings repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "settings").Logger(),
	}
}

// Get returns a user's settings row, or domain.ErrNotFound.
func (r *Repository) Get(userID string) (domain.UserSettings, error) {
	var s domain.UserSettings
	err := r.db.QueryRow(
		`SELECT user_id, default_currency FROM user_settings WHERE user_id = ?`, userID,
	).Scan(&s.UserID, &s.DefaultCurrency)
	if err == sql.ErrNoRows {
		return domain.UserSettings{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("failed to query user settings: %w", err)
	}
	return s, nil
}

// Upsert writes a user's settings row.
func (r *Repository) Upsert(s domain.UserSettings) error {
	_, err := r.db.Exec(
		`INSERT INTO user_settings (user_id, default_currency, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET
			default_currency = excluded.default_currency,
			updated_at = excluded.updated_at`,
		s.UserID, s.DefaultCurrency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user settings: %w", err)
	}
	return nil
}
