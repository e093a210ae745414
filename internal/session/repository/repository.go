package repository

import (
	"context"

	"campus-clubs/backend/internal/session/domain"
)

// Repository defines persistence for login sessions.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Revoke(ctx context.Context, id string) error
}
