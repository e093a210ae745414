package repository

import (
	"context"
	"database/sql"
	"errors"

	"campus-clubs/backend/internal/admin/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a platform-admin repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUserID returns the platform-admin record for userID, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*domain.PlatformAdmin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, COALESCE(granted_by, ''), created_at FROM platform_admins WHERE user_id = $1`, userID)
	var a domain.PlatformAdmin
	err := row.Scan(&a.UserID, &a.GrantedBy, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Grant inserts the platform-admin record. Granting an existing admin is not an error.
func (r *PostgresRepository) Grant(ctx context.Context, a *domain.PlatformAdmin) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO platform_admins (user_id, granted_by, created_at)
		 VALUES ($1, NULLIF($2, ''), $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		a.UserID, a.GrantedBy, a.CreatedAt)
	return err
}
