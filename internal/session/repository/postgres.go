package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-clubs/backend/internal/session/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the session for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, revoked_at, COALESCE(ip_address, ''), created_at
		 FROM sessions WHERE id = $1`, id)
	var s domain.Session
	var revokedAt sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.ExpiresAt, &revokedAt, &s.IPAddress, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		s.RevokedAt = &t
	}
	return &s, nil
}

// Create persists the session to the database. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, ip_address, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5)`,
		s.ID, s.UserID, s.ExpiresAt, s.IPAddress, s.CreatedAt)
	return err
}

// Revoke marks the session revoked. Revoking an unknown or already revoked session is not an error.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`,
		time.Now().UTC(), id)
	return err
}
