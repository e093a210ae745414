package repository

import (
	"context"

	"campus-clubs/backend/internal/clubrequest/domain"
)

// Repository is the persistence surface for club-creation requests.
type Repository interface {
	// Create persists a new pending request.
	Create(ctx context.Context, req *domain.ClubRequest) error
	// GetByID returns the request, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*domain.ClubRequest, error)
	// ListByStatus returns requests with the given status, oldest first.
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.ClubRequest, error)
	// ListByRequester returns the user's own requests, newest first.
	ListByRequester(ctx context.Context, userID string) ([]*domain.ClubRequest, error)
	// SetReview records the review outcome on a request.
	SetReview(ctx context.Context, id string, status domain.Status, reviewedBy, note string) error
}
