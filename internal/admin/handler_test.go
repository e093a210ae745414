package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	admindomain "campus-clubs/backend/internal/admin/domain"
	auditdomain "campus-clubs/backend/internal/audit/domain"
	clubdomain "campus-clubs/backend/internal/club/domain"
	crdomain "campus-clubs/backend/internal/clubrequest/domain"
	"campus-clubs/backend/internal/server/middleware"
	sessiondomain "campus-clubs/backend/internal/session/domain"
	userdomain "campus-clubs/backend/internal/user/domain"
)

type mockAdmins struct {
	admin *admindomain.PlatformAdmin
	err   error
}

func (m *mockAdmins) GetByUserID(_ context.Context, _ string) (*admindomain.PlatformAdmin, error) {
	return m.admin, m.err
}

func (m *mockAdmins) Grant(_ context.Context, _ *admindomain.PlatformAdmin) error { return m.err }

type mockRequests struct {
	request *crdomain.ClubRequest
	review  struct {
		id     string
		status crdomain.Status
		note   string
	}
	err error
}

func (m *mockRequests) Create(_ context.Context, _ *crdomain.ClubRequest) error { return m.err }

func (m *mockRequests) GetByID(_ context.Context, _ string) (*crdomain.ClubRequest, error) {
	return m.request, m.err
}

func (m *mockRequests) ListByStatus(_ context.Context, _ crdomain.Status) ([]*crdomain.ClubRequest, error) {
	if m.request == nil {
		return nil, m.err
	}
	return []*crdomain.ClubRequest{m.request}, m.err
}

func (m *mockRequests) ListByRequester(_ context.Context, _ string) ([]*crdomain.ClubRequest, error) {
	return nil, m.err
}

func (m *mockRequests) SetReview(_ context.Context, id string, status crdomain.Status, _, note string) error {
	m.review.id = id
	m.review.status = status
	m.review.note = note
	return m.err
}

type mockClubs struct {
	created *clubdomain.Club
	members []*clubdomain.Member
	err     error
}

func (m *mockClubs) List(_ context.Context) ([]*clubdomain.Club, error) { return nil, m.err }

func (m *mockClubs) GetByID(_ context.Context, _ string) (*clubdomain.Club, error) {
	return nil, m.err
}

func (m *mockClubs) ListMembersPage(_ context.Context, _ string, _, _ int) (*clubdomain.MemberPage, error) {
	return nil, m.err
}

func (m *mockClubs) Create(_ context.Context, c *clubdomain.Club) error {
	m.created = c
	return m.err
}

func (m *mockClubs) AddMember(_ context.Context, member *clubdomain.Member) error {
	m.members = append(m.members, member)
	return m.err
}

type mockUsers struct {
	byEmail map[string]*userdomain.User
	err     error
}

func (m *mockUsers) GetByID(_ context.Context, _ string) (*userdomain.User, error) {
	return nil, m.err
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	return m.byEmail[email], m.err
}

func (m *mockUsers) Create(_ context.Context, _ *userdomain.User) error { return m.err }

func pendingRequest() *crdomain.ClubRequest {
	return &crdomain.ClubRequest{
		ID:            "req-1",
		Name:          "Chess Club",
		ContactEmail:  "chess@campus.edu",
		OfficerEmails: []string{"bo@campus.edu", "ghost@campus.edu"},
		RequestedBy:   "user-1",
		Status:        crdomain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func reviewAs(h *Handler, principal *sessiondomain.Principal, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/club-requests/req-1/review", strings.NewReader(body))
	req.SetPathValue("id", "req-1")
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	h.ReviewRequest(rec, req)
	return rec
}

func adminPrincipal() *sessiondomain.Principal {
	return &sessiondomain.Principal{ID: "admin-1", Email: "admin@campus.edu"}
}

func TestReview_ApproveRegistersClub(t *testing.T) {
	requests := &mockRequests{request: pendingRequest()}
	clubs := &mockClubs{}
	users := &mockUsers{byEmail: map[string]*userdomain.User{
		"bo@campus.edu": {ID: "user-2", Email: "bo@campus.edu"},
	}}
	h := NewHandler(&mockAdmins{admin: &admindomain.PlatformAdmin{UserID: "admin-1"}}, requests, clubs, users, nil, nil, nil)

	rec := reviewAs(h, adminPrincipal(), `{"decision":"approve"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if clubs.created == nil || clubs.created.Name != "Chess Club" {
		t.Fatalf("club not registered: %+v", clubs.created)
	}
	// Requester plus the one officer address with an account; the unknown address is skipped.
	if len(clubs.members) != 2 {
		t.Fatalf("got %d members, want 2", len(clubs.members))
	}
	if clubs.members[0].UserID != "user-1" || clubs.members[0].Role != clubdomain.RoleOfficer {
		t.Fatalf("requester membership = %+v", clubs.members[0])
	}
	if clubs.members[1].UserID != "user-2" {
		t.Fatalf("officer membership = %+v", clubs.members[1])
	}
	if requests.review.status != crdomain.StatusApproved {
		t.Fatalf("review status = %q", requests.review.status)
	}
}

func TestReview_Reject(t *testing.T) {
	requests := &mockRequests{request: pendingRequest()}
	clubs := &mockClubs{}
	h := NewHandler(&mockAdmins{admin: &admindomain.PlatformAdmin{UserID: "admin-1"}}, requests, clubs, &mockUsers{}, nil, nil, nil)

	rec := reviewAs(h, adminPrincipal(), `{"decision":"reject","note":"duplicate"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if clubs.created != nil || len(clubs.members) != 0 {
		t.Fatal("rejection must not touch the club directory")
	}
	if requests.review.status != crdomain.StatusRejected || requests.review.note != "duplicate" {
		t.Fatalf("review = %+v", requests.review)
	}
}

func TestReview_AlreadyReviewed(t *testing.T) {
	done := pendingRequest()
	done.Status = crdomain.StatusApproved
	h := NewHandler(&mockAdmins{admin: &admindomain.PlatformAdmin{UserID: "admin-1"}}, &mockRequests{request: done}, &mockClubs{}, &mockUsers{}, nil, nil, nil)

	rec := reviewAs(h, adminPrincipal(), `{"decision":"approve"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestReview_NonAdmin(t *testing.T) {
	clubs := &mockClubs{}
	h := NewHandler(&mockAdmins{}, &mockRequests{request: pendingRequest()}, clubs, &mockUsers{}, nil, nil, nil)

	rec := reviewAs(h, &sessiondomain.Principal{ID: "user-1"}, `{"decision":"approve"}`)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/not-authorized" {
		t.Fatalf("location = %q", loc)
	}
	if clubs.created != nil {
		t.Fatal("non-admin review must not register a club")
	}
}

func TestReview_Anonymous(t *testing.T) {
	h := NewHandler(&mockAdmins{}, &mockRequests{request: pendingRequest()}, &mockClubs{}, &mockUsers{}, nil, nil, nil)

	rec := reviewAs(h, nil, `{"decision":"approve"}`)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Fatalf("location = %q", loc)
	}
}

type mockAudits struct {
	entries []*auditdomain.AuditLog
	err     error
}

func (m *mockAudits) Create(_ context.Context, _ *auditdomain.AuditLog) error { return m.err }

func (m *mockAudits) ListRecent(_ context.Context, _ int) ([]*auditdomain.AuditLog, error) {
	return m.entries, m.err
}

func TestListAuditLogs_ReturnsRecentEntries(t *testing.T) {
	audits := &mockAudits{entries: []*auditdomain.AuditLog{
		{ID: "a1", UserID: "admin-1", Action: "club_request.review", Resource: "club_request", IP: "unknown", Metadata: `{"decision":"approved"}`, CreatedAt: time.Now().UTC()},
	}}
	h := NewHandler(&mockAdmins{admin: &admindomain.PlatformAdmin{UserID: "admin-1"}}, &mockRequests{}, &mockClubs{}, &mockUsers{}, audits, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), adminPrincipal()))
	rec := httptest.NewRecorder()
	h.ListAuditLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"a1"`) || !strings.Contains(body, `"decision":"approved"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestListAuditLogs_NonAdminRedirects(t *testing.T) {
	h := NewHandler(&mockAdmins{}, &mockRequests{}, &mockClubs{}, &mockUsers{}, &mockAudits{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), &sessiondomain.Principal{ID: "user-1"}))
	rec := httptest.NewRecorder()
	h.ListAuditLogs(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
}
