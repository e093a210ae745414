package repository

import (
	"context"

	"campus-clubs/backend/internal/club/domain"
)

// Repository is the persistence surface for clubs and their rosters.
type Repository interface {
	// List returns every club ordered by name.
	List(ctx context.Context) ([]*domain.Club, error)
	// GetByID returns the club, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Club, error)
	// ListMembersPage returns one page of the club's roster plus the full roster
	// size. An empty page carries Total 0.
	ListMembersPage(ctx context.Context, clubID string, limit, offset int) (*domain.MemberPage, error)
	// Create persists a new club.
	Create(ctx context.Context, c *domain.Club) error
	// AddMember adds a user to a club's roster. Adding an existing member is a no-op.
	AddMember(ctx context.Context, m *domain.Member) error
}
