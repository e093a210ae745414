package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"campus-clubs/backend/internal/event/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an event repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Search returns events in the closed interval [f.From, f.To] matching the delegated
// filters, ordered by start time. HideCancelled and DayParts are ignored here; the
// service applies them on the result.
func (r *PostgresRepository) Search(ctx context.Context, f domain.Filter) ([]*domain.Event, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "starts_at >= "+arg(f.From))
	where = append(where, "starts_at <= "+arg(f.To))
	if len(f.CategoryIDs) > 0 {
		where = append(where, "category_id = ANY("+arg(textArray(f.CategoryIDs))+"::text[])")
	}
	if len(f.Tags) > 0 {
		where = append(where, "tags && "+arg(textArray(f.Tags))+"::text[]")
	}
	if len(f.ClubIDs) > 0 {
		where = append(where, "club_id = ANY("+arg(textArray(f.ClubIDs))+"::text[])")
	}
	if len(f.LocationTypes) > 0 {
		where = append(where, "location_type = ANY("+arg(textArray(f.LocationTypes))+"::text[])")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "(title ILIKE "+arg("%"+q+"%")+" OR description ILIKE "+arg("%"+q+"%")+")")
	}

	query := `SELECT id, club_id, title, COALESCE(description, ''), COALESCE(category_id, ''),
		to_jsonb(tags), location_type, status, starts_at, ends_at, created_at
		FROM events WHERE ` + strings.Join(where, " AND ") + ` ORDER BY starts_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		var (
			e            domain.Event
			tagsJSON     []byte
			status, ltyp string
		)
		if err := rows.Scan(&e.ID, &e.ClubID, &e.Title, &e.Description, &e.CategoryID,
			&tagsJSON, &ltyp, &status, &e.StartsAt, &e.EndsAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &e.Tags); err != nil {
				return nil, fmt.Errorf("event tags: %w", err)
			}
		}
		e.Status = domain.Status(status)
		e.LocationType = domain.LocationType(ltyp)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Create persists the event. The event must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, club_id, title, description, category_id, tags, location_type, status, starts_at, ends_at, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6::text[], $7, $8, $9, $10, $11)`,
		e.ID, e.ClubID, e.Title, e.Description, e.CategoryID, textArray(e.Tags),
		string(e.LocationType), string(e.Status), e.StartsAt, e.EndsAt, e.CreatedAt)
	return err
}

// textArray renders a Postgres text[] literal for a $n::text[] parameter position.
func textArray(vals []string) string {
	escaped := make([]string, len(vals))
	for i, v := range vals {
		escaped[i] = `"` + strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`) + `"`
	}
	return "{" + strings.Join(escaped, ",") + "}"
}
