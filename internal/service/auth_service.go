package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stedonnelly/accountd/internal/models"
	"github.com/stedonnelly/accountd/internal/repository"
	"github.com/stedonnelly/accountd/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
)

// UserStore is the persistence surface AuthService needs for accounts.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
}

// SessionStore is the persistence surface for sessions.
// *repository.SessionRepository satisfies it.
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, token string) (models.Session, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	users      UserStore
	sessions   SessionStore
	signer     *security.CookieSigner
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	signer *security.CookieSigner,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		signer:     signer,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    *string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.Create(ctx, models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		// Constraint backstop for the race the pre-check cannot close.
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return models.User{}, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks a username/password pair and returns the matching
// user. It never creates a session, and it answers ErrInvalidCredentials
// for both an unknown username and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession persists a new session for the user and returns the signed
// cookie value that references it.
func (s *AuthService) IssueSession(ctx context.Context, userID int64) (string, error) {
	token, err := s.sessions.Create(ctx, userID, s.sessionTTL)
	if err != nil {
		return "", err
	}
	return s.signer.Sign(token)
}

// Resolve maps a raw cookie value to an authenticated user id, or
// ErrNotAuthenticated. Expired sessions found along the way are deleted
// before the rejection is reported; this read-triggered cleanup is the
// only garbage collection sessions get.
func (s *AuthService) Resolve(ctx context.Context, rawCookie string) (int64, error) {
	if rawCookie == "" {
		return 0, ErrNotAuthenticated
	}

	token, err := s.signer.Unsign(rawCookie)
	if err != nil {
		return 0, ErrNotAuthenticated
	}

	session, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return 0, ErrNotAuthenticated
		}
		return 0, err
	}

	if !session.ExpiresAt.After(time.Now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Error().Err(err).Int64("user_id", session.UserID).Msg("expired session cleanup failed")
		} else {
			s.log.Debug().Int64("user_id", session.UserID).Msg("expired session removed")
		}
		return 0, ErrNotAuthenticated
	}

	return session.UserID, nil
}

// UserFromCookie resolves the cookie and loads the account behind it.
// Missing or inactive accounts collapse into the same ErrNotAuthenticated
// the resolver reports.
func (s *AuthService) UserFromCookie(ctx context.Context, rawCookie string) (models.User, error) {
	userID, err := s.Resolve(ctx, rawCookie)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrNotAuthenticated
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrNotAuthenticated
	}
	return user, nil
}

// EndSession deletes the session a cookie points at. Unreadable cookies
// are ignored so logout stays idempotent.
func (s *AuthService) EndSession(ctx context.Context, rawCookie string) error {
	if rawCookie == "" {
		return nil
	}
	token, err := s.signer.Unsign(rawCookie)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
