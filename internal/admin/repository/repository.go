package repository

import (
	"context"

	"campus-clubs/backend/internal/admin/domain"
)

// Repository defines persistence for platform-admin records.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.PlatformAdmin, error)
	Grant(ctx context.Context, a *domain.PlatformAdmin) error
}
