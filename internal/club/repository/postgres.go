package repository

import (
	"context"
	"database/sql"
	"errors"

	"campus-clubs/backend/internal/club/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a club repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Club, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(description, ''), COALESCE(category_id, ''), contact_email, created_at
		 FROM clubs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(description, ''), COALESCE(category_id, ''), contact_email, created_at
		 FROM clubs WHERE id = $1`, id)
	c, err := scanClub(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListMembersPage pages the roster with a windowed count so one round trip yields
// both the page and the total. With no rows there is no count to read; Total stays 0.
func (r *PostgresRepository) ListMembersPage(ctx context.Context, clubID string, limit, offset int) (*domain.MemberPage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.club_id, m.user_id, COALESCE(u.name, ''), u.email, m.role, m.created_at,
		        COUNT(*) OVER() AS total_count
		 FROM club_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.club_id = $1
		 ORDER BY m.created_at, m.id
		 LIMIT $2 OFFSET $3`, clubID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &domain.MemberPage{Members: []*domain.Member{}}
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.ClubID, &m.UserID, &m.Name, &m.Email, &m.Role, &m.JoinedAt, &page.Total); err != nil {
			return nil, err
		}
		page.Members = append(page.Members, &m)
	}
	return page, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, c *domain.Club) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clubs (id, name, description, category_id, contact_email, created_at)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)`,
		c.ID, c.Name, c.Description, c.CategoryID, c.ContactEmail, c.CreatedAt)
	return err
}

func (r *PostgresRepository) AddMember(ctx context.Context, m *domain.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO club_members (id, club_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (club_id, user_id) DO NOTHING`,
		m.ID, m.ClubID, m.UserID, m.Role, m.JoinedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (*domain.Club, error) {
	var c domain.Club
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CategoryID, &c.ContactEmail, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
