package club

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-clubs/backend/internal/club/domain"
)

type mockRepository struct {
	clubs   []*domain.Club
	club    *domain.Club
	page    *domain.MemberPage
	err     error
	gotArgs []int
}

func (m *mockRepository) List(_ context.Context) ([]*domain.Club, error) {
	return m.clubs, m.err
}

func (m *mockRepository) GetByID(_ context.Context, _ string) (*domain.Club, error) {
	return m.club, m.err
}

func (m *mockRepository) ListMembersPage(_ context.Context, _ string, limit, offset int) (*domain.MemberPage, error) {
	m.gotArgs = []int{limit, offset}
	return m.page, m.err
}

func (m *mockRepository) Create(_ context.Context, _ *domain.Club) error { return m.err }

func (m *mockRepository) AddMember(_ context.Context, _ *domain.Member) error { return m.err }

func membersRequest(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	h.Members(rec, req)
	return rec
}

func TestMembers_PageWithRosterTotal(t *testing.T) {
	repo := &mockRepository{page: &domain.MemberPage{
		Members: []*domain.Member{
			{UserID: "u1", Email: "ana@campus.edu", Role: domain.RoleOfficer, JoinedAt: time.Now()},
			{UserID: "u2", Email: "bo@campus.edu", Role: domain.RoleMember, JoinedAt: time.Now()},
		},
		Total: 41,
	}}
	rec := membersRequest(t, NewHandler(repo), "/api/clubs/club-1/members?limit=2&offset=10")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Members []memberResponse `json:"members"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Members) != 2 || body.Total != 41 {
		t.Fatalf("got %d members total %d, want 2 members total 41", len(body.Members), body.Total)
	}
	if repo.gotArgs[0] != 2 || repo.gotArgs[1] != 10 {
		t.Fatalf("repository called with limit=%d offset=%d", repo.gotArgs[0], repo.gotArgs[1])
	}
}

func TestMembers_EmptyRosterZeroTotal(t *testing.T) {
	repo := &mockRepository{page: &domain.MemberPage{Members: []*domain.Member{}}}
	rec := membersRequest(t, NewHandler(repo), "/api/clubs/club-1/members")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Members []memberResponse `json:"members"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Members == nil || len(body.Members) != 0 || body.Total != 0 {
		t.Fatalf("got members=%v total=%d, want empty list and total 0", body.Members, body.Total)
	}
}

func TestMembers_ClampsPaging(t *testing.T) {
	repo := &mockRepository{page: &domain.MemberPage{Members: []*domain.Member{}}}
	membersRequest(t, NewHandler(repo), "/api/clubs/club-1/members?limit=5000&offset=-3")

	if repo.gotArgs[0] != defaultPageSize || repo.gotArgs[1] != 0 {
		t.Fatalf("repository called with limit=%d offset=%d", repo.gotArgs[0], repo.gotArgs[1])
	}
}

func TestMembers_RepositoryError(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection refused")}
	rec := membersRequest(t, NewHandler(repo), "/api/clubs/club-1/members")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGet_UnknownClub(t *testing.T) {
	h := NewHandler(&mockRepository{})
	req := httptest.NewRequest(http.MethodGet, "/api/clubs/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
