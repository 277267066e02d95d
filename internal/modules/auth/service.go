package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliotracker/folio/internal/domain"
)

// SettingsInitializer seeds per-user settings on registration.
// Defined here to avoid importing the settings module.
type SettingsInitializer interface {
	EnsureDefaults(userID string) error
}

// Service handles registration, login and token issuance.
type Service struct {
	users    *UserRepository
	settings SettingsInitializer
	jwt      JWT
	log      zerolog.Logger
}

// NewService creates a new auth service
func NewService(users *UserRepository, settings SettingsInitializer, jwt JWT, log zerolog.Logger) *Service {
	return &Service{
		users:    users,
		settings: settings,
		jwt:      jwt,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Session is a successful authentication result.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

// Register creates a new user account and its default settings row, then
// issues a session token.
func (s *Service) Register(email, password, displayName string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return Session{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return Session{}, fmt.Errorf("%w: email already registered", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(user); err != nil {
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.settings.EnsureDefaults(user.ID); err != nil {
		// The account exists; settings fall back to defaults on read.
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to seed user settings")
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return s.issueSession(user)
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Same failure for unknown email and bad password
		return Session{}, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, domain.ErrUnauthorized
	}

	return s.issueSession(user)
}

// GetUser returns the account for a verified user id.
func (s *Service) GetUser(userID string) (domain.User, error) {
	return s.users.GetByID(userID)
}

func (s *Service) issueSession(user domain.User) (Session, error) {
	token, expiresAt, err := s.jwt.Sign(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""
	return Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
