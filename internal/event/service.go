package event

import (
	"context"
	"log"

	"campus-clubs/backend/internal/event/domain"
)

// Searcher is the repository surface the service needs.
type Searcher interface {
	Search(ctx context.Context, f domain.Filter) ([]*domain.Event, error)
}

type Service struct {
	repo Searcher
}

func NewService(repo Searcher) *Service {
	return &Service{repo: repo}
}

// Search runs the query against the repository, then applies the two refinements
// the database does not handle: dropping cancelled events when HideCancelled is
// set, and keeping only the requested day-part buckets. The repository's ordering
// is preserved. On a repository error no partial result is returned.
func (s *Service) Search(ctx context.Context, f domain.Filter) ([]*domain.Event, error) {
	events, err := s.repo.Search(ctx, f)
	if err != nil {
		log.Printf("event search failed: %v", err)
		return nil, err
	}

	if !f.HideCancelled && len(f.DayParts) == 0 {
		return events, nil
	}

	wanted := make(map[domain.DayPart]bool, len(f.DayParts))
	for _, dp := range f.DayParts {
		wanted[dp] = true
	}

	out := events[:0]
	for _, e := range events {
		if f.HideCancelled && e.Status == domain.StatusCancelled {
			continue
		}
		if len(wanted) > 0 && !wanted[domain.DayPartOf(e.StartsAt)] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
