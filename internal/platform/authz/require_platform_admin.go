package authz

import (
	"context"

	admindomain "campus-clubs/backend/internal/admin/domain"
	"campus-clubs/backend/internal/session/domain"
)

// PlatformAdminGetter returns a user's platform-admin record. Used by RequirePlatformAdmin
// to resolve the admin capability.
type PlatformAdminGetter interface {
	GetByUserID(ctx context.Context, userID string) (*admindomain.PlatformAdmin, error)
}

// RequirePlatformAdmin ensures the caller is authenticated and holds a platform-admin record.
// Composes RequireUser (no return path), then looks up the admin row for the principal.
// A lookup error is treated the same as a missing row: the guard fails closed and
// returns a *Redirect to the not-authorized location.
func RequirePlatformAdmin(ctx context.Context, getter PlatformAdminGetter) (*domain.Principal, error) {
	p, err := RequireUser(ctx, "")
	if err != nil {
		return nil, err
	}
	rec, err := getter.GetByUserID(ctx, p.ID)
	if err != nil || rec == nil {
		return nil, &Redirect{Location: NotAuthorizedPath}
	}
	return p, nil
}
