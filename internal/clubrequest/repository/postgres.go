package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"campus-clubs/backend/internal/clubrequest/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a club-request repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `id, name, COALESCE(description, ''), COALESCE(category_id, ''), contact_email,
	to_jsonb(officer_emails), requested_by, status, COALESCE(review_note, ''), COALESCE(reviewed_by, ''),
	reviewed_at, created_at`

func (r *PostgresRepository) Create(ctx context.Context, req *domain.ClubRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO club_requests (id, name, description, category_id, contact_email, officer_emails, requested_by, status, created_at)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6::text[], $7, $8, $9)`,
		req.ID, req.Name, req.Description, req.CategoryID, req.ContactEmail,
		textArray(req.OfficerEmails), req.RequestedBy, string(req.Status), req.CreatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.ClubRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM club_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.ClubRequest, error) {
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM club_requests WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *PostgresRepository) ListByRequester(ctx context.Context, userID string) ([]*domain.ClubRequest, error) {
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM club_requests WHERE requested_by = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) SetReview(ctx context.Context, id string, status domain.Status, reviewedBy, note string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE club_requests
		 SET status = $2, reviewed_by = $3, review_note = NULLIF($4, ''), reviewed_at = now()
		 WHERE id = $1`,
		id, string(status), reviewedBy, note)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("club request %s not found", id)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*domain.ClubRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ClubRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.ClubRequest, error) {
	var (
		req          domain.ClubRequest
		officersJSON []byte
		status       string
		reviewedAt   sql.NullTime
	)
	if err := row.Scan(&req.ID, &req.Name, &req.Description, &req.CategoryID, &req.ContactEmail,
		&officersJSON, &req.RequestedBy, &status, &req.ReviewNote, &req.ReviewedBy,
		&reviewedAt, &req.CreatedAt); err != nil {
		return nil, err
	}
	if len(officersJSON) > 0 {
		if err := json.Unmarshal(officersJSON, &req.OfficerEmails); err != nil {
			return nil, fmt.Errorf("club request officer emails: %w", err)
		}
	}
	req.Status = domain.Status(status)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		req.ReviewedAt = &t
	}
	return &req, nil
}

// textArray renders a Postgres text[] literal for a $n::text[] parameter position.
func textArray(vals []string) string {
	escaped := make([]string, len(vals))
	for i, v := range vals {
		escaped[i] = `"` + strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`) + `"`
	}
	return "{" + strings.Join(escaped, ",") + "}"
}
