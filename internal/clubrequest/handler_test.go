package clubrequest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-clubs/backend/internal/clubrequest/domain"
	"campus-clubs/backend/internal/server/middleware"
	sessiondomain "campus-clubs/backend/internal/session/domain"
)

type mockRepository struct {
	created *domain.ClubRequest
	listed  []*domain.ClubRequest
	err     error
}

func (m *mockRepository) Create(_ context.Context, req *domain.ClubRequest) error {
	m.created = req
	return m.err
}

func (m *mockRepository) GetByID(_ context.Context, _ string) (*domain.ClubRequest, error) {
	return nil, m.err
}

func (m *mockRepository) ListByStatus(_ context.Context, _ domain.Status) ([]*domain.ClubRequest, error) {
	return m.listed, m.err
}

func (m *mockRepository) ListByRequester(_ context.Context, _ string) ([]*domain.ClubRequest, error) {
	return m.listed, m.err
}

func (m *mockRepository) SetReview(_ context.Context, _ string, _ domain.Status, _, _ string) error {
	return m.err
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := middleware.WithPrincipal(req.Context(), &sessiondomain.Principal{
		ID:    "user-1",
		Email: "ana@campus.edu",
	})
	return req.WithContext(ctx)
}

func TestSubmit_NormalizesAddresses(t *testing.T) {
	repo := &mockRepository{}
	h := NewHandler(repo, nil)

	body := `{"name":"Chess Club","contactEmail":"  Chess@Campus.EDU ","officerEmails":["ANA@campus.edu","chess@campus.edu","ana@campus.edu","broken"]}`
	rec := httptest.NewRecorder()
	h.Submit(rec, authedRequest(http.MethodPost, "/api/club-requests", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if repo.created == nil {
		t.Fatal("request was not stored")
	}
	if repo.created.ContactEmail != "chess@campus.edu" {
		t.Fatalf("contact = %q", repo.created.ContactEmail)
	}
	if len(repo.created.OfficerEmails) != 1 || repo.created.OfficerEmails[0] != "ana@campus.edu" {
		t.Fatalf("officers = %v", repo.created.OfficerEmails)
	}
	if repo.created.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", repo.created.Status)
	}
	if repo.created.RequestedBy != "user-1" {
		t.Fatalf("requestedBy = %q", repo.created.RequestedBy)
	}
}

func TestSubmit_InvalidContact(t *testing.T) {
	repo := &mockRepository{}
	h := NewHandler(repo, nil)

	rec := httptest.NewRecorder()
	h.Submit(rec, authedRequest(http.MethodPost, "/api/club-requests", `{"name":"Chess Club","contactEmail":"not-an-address"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if repo.created != nil {
		t.Fatal("invalid request must not be stored")
	}
}

func TestSubmit_AnonymousRedirects(t *testing.T) {
	repo := &mockRepository{}
	h := NewHandler(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/club-requests", strings.NewReader(`{"name":"Chess Club"}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Fatalf("location = %q", loc)
	}
	if repo.created != nil {
		t.Fatal("anonymous submission must not be stored")
	}
}

func TestListOwn_ReturnsRequests(t *testing.T) {
	repo := &mockRepository{listed: []*domain.ClubRequest{
		{ID: "r1", Name: "Chess Club", ContactEmail: "chess@campus.edu", Status: domain.StatusPending},
	}}
	h := NewHandler(repo, nil)

	rec := httptest.NewRecorder()
	h.ListOwn(rec, authedRequest(http.MethodGet, "/api/club-requests", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Requests []requestResponse `json:"requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Requests) != 1 || body.Requests[0].ID != "r1" {
		t.Fatalf("requests = %v", body.Requests)
	}
}
