package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	admindomain "campus-clubs/backend/internal/admin/domain"
)

// mockAdminGetter implements PlatformAdminGetter for tests.
type mockAdminGetter struct {
	admins map[string]*admindomain.PlatformAdmin
	err    error
}

func (m *mockAdminGetter) GetByUserID(ctx context.Context, userID string) (*admindomain.PlatformAdmin, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.admins[userID], nil
}

func TestRequirePlatformAdmin_Success(t *testing.T) {
	getter := &mockAdminGetter{
		admins: map[string]*admindomain.PlatformAdmin{
			"user-1": {UserID: "user-1", CreatedAt: time.Now()},
		},
	}

	p, err := RequirePlatformAdmin(authedCtx("user-1"), getter)
	if err != nil {
		t.Fatalf("RequirePlatformAdmin: %v", err)
	}
	if p.ID != "user-1" {
		t.Errorf("principal ID = %q, want %q", p.ID, "user-1")
	}
}

func TestRequirePlatformAdmin_NotAdmin(t *testing.T) {
	getter := &mockAdminGetter{admins: make(map[string]*admindomain.PlatformAdmin)}

	_, err := RequirePlatformAdmin(authedCtx("user-1"), getter)
	var rd *Redirect
	if !errors.As(err, &rd) {
		t.Fatalf("error is not a *Redirect: %v", err)
	}
	if rd.Location != NotAuthorizedPath {
		t.Errorf("location = %q, want %q", rd.Location, NotAuthorizedPath)
	}
}

func TestRequirePlatformAdmin_LookupErrorFailsClosed(t *testing.T) {
	getter := &mockAdminGetter{err: errors.New("database error")}

	_, err := RequirePlatformAdmin(authedCtx("user-1"), getter)
	var rd *Redirect
	if !errors.As(err, &rd) {
		t.Fatalf("error is not a *Redirect: %v", err)
	}
	if rd.Location != NotAuthorizedPath {
		t.Errorf("lookup error must fail closed to %q, got %q", NotAuthorizedPath, rd.Location)
	}
}

func TestRequirePlatformAdmin_Anonymous(t *testing.T) {
	getter := &mockAdminGetter{
		admins: map[string]*admindomain.PlatformAdmin{
			"user-1": {UserID: "user-1"},
		},
	}

	_, err := RequirePlatformAdmin(context.Background(), getter)
	var rd *Redirect
	if !errors.As(err, &rd) {
		t.Fatalf("error is not a *Redirect: %v", err)
	}
	if rd.Location != LoginPath {
		t.Errorf("location = %q, want %q (login before admin check)", rd.Location, LoginPath)
	}
}
