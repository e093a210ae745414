package repository

import (
	"context"

	"campus-clubs/backend/internal/event/domain"
)

// Repository defines the remote event search. The database applies the relational and
// tag filtering; the service layer applies the client-side refinements.
type Repository interface {
	Search(ctx context.Context, f domain.Filter) ([]*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) error
}
