package auth

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// UserRepository handles user account database operations
type UserRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With().Str("repo", "user").Logger(),
	}
}

// Create inserts a new user row
func (r *UserRepository) Create(user domain.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, email, display_name, password_hash) VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, nullable(user.DisplayName), user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByEmail returns the user with the given email, or domain.ErrNotFound.
func (r *UserRepository) GetByEmail(email string) (domain.User, error) {
	return r.scanOne(`SELECT id, email, display_name, password_hash, created_at
		FROM users WHERE email = ?`, email)
}

// GetByID returns the user with the given id, or domain.ErrNotFound.
func (r *UserRepository) GetByID(id string) (domain.User, error) {
	return r.scanOne(`SELECT id, email, display_name, password_hash, created_at
		FROM users WHERE id = ?`, id)
}

func (r *UserRepository) scanOne(query string, arg string) (domain.User, error) {
	var user domain.User
	var displayName sql.NullString

	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &displayName, &user.PasswordHash, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	user.DisplayName = displayName.String
	return user, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
