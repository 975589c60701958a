package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stedonnelly/accountd/internal/models"
	"github.com/stedonnelly/accountd/internal/security"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create mints a fresh random token and persists the session as one insert.
// The unique constraint on token backstops the entropy guarantee; tripping
// it is an internal fault, not something we retry.
func (r *SessionRepository) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	token, err := security.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	const query = `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, token, userID, time.Now().Add(ttl)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("session token collision: %w", err)
		}
		return "", err
	}
	return token, nil
}

// Lookup returns the stored session without judging expiry; that is the
// resolver's job.
func (r *SessionRepository) Lookup(ctx context.Context, token string) (models.Session, error) {
	const query = `
		SELECT id, token, user_id, expires_at, created_at, updated_at
		FROM sessions WHERE token = $1
	`

	row := r.pool.QueryRow(ctx, query, token)
	var session models.Session
	if err := row.Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

// Delete is idempotent: removing an absent token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}
