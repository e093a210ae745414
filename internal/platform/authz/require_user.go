package authz

import (
	"context"

	"campus-clubs/backend/internal/server/middleware"
	"campus-clubs/backend/internal/session/domain"
)

// RequireUser ensures the caller is authenticated. returnTo, when non-empty, is the
// path to come back to after login and is appended to the login redirect.
// Returns the principal on success; returns a *Redirect to the login location when
// the request is anonymous. The redirect terminates request handling for the caller.
func RequireUser(ctx context.Context, returnTo string) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(ctx)
	if p == nil || p.ID == "" {
		return nil, loginRedirect(returnTo)
	}
	return p, nil
}
