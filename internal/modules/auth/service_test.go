package auth

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/foliotracker/folio/internal/domain"
)

type stubSettingsInitializer struct {
	seeded []string
}

func (s *stubSettingsInitializer) EnsureDefaults(userID string) error {
	s.seeded = append(s.seeded, userID)
	return nil
}

func newTestService(t *testing.T) (*Service, *stubSettingsInitializer, *sql.DB) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)
	require.NoError(t, err)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	settings := &stubSettingsInitializer{}
	jwt := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	return NewService(NewUserRepository(db, log), settings, jwt, log), settings, db
}

func TestRegister_IssuesSessionAndSeedsSettings(t *testing.T) {
	svc, settings, db := newTestService(t)
	defer db.Close()

	session, err := svc.Register("User@Example.com", "password123", "User")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "user@example.com", session.User.Email) // normalized
	assert.Empty(t, session.User.PasswordHash)
	assert.Equal(t, []string{session.User.ID}, settings.seeded)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.Register("user@example.com", "short", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.Register("not-an-email", "password123", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.Register("user@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register("user@example.com", "password456", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Success(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.Register("user@example.com", "password123", "")
	require.NoError(t, err)

	session, err := svc.Login("user@example.com", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.Register("user@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Login("user@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmailSameFailure(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _, db := newTestService(t)
	defer db.Close()

	_, err := svc.GetUser("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
