package clubrequest

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-clubs/backend/internal/clubrequest/domain"
	"campus-clubs/backend/internal/clubrequest/repository"
	"campus-clubs/backend/internal/email"
	"campus-clubs/backend/internal/platform/authz"
	"campus-clubs/backend/internal/server/httpx"
	"campus-clubs/backend/internal/telemetry"
)

type Handler struct {
	repo    repository.Repository
	emitter telemetry.EventEmitter
}

// NewHandler returns a Handler. emitter may be nil.
func NewHandler(repo repository.Repository, emitter telemetry.EventEmitter) *Handler {
	return &Handler{repo: repo, emitter: emitter}
}

type submitRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CategoryID    string   `json:"categoryId"`
	ContactEmail  string   `json:"contactEmail"`
	OfficerEmails []string `json:"officerEmails"`
}

type requestResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	CategoryID    string   `json:"categoryId,omitempty"`
	ContactEmail  string   `json:"contactEmail"`
	OfficerEmails []string `json:"officerEmails"`
	Status        string   `json:"status"`
	ReviewNote    string   `json:"reviewNote,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// Submit handles POST /api/club-requests. Addresses are normalized before the
// request is stored; an unusable contact address rejects the submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.RequireUser(r.Context(), r.URL.Path)
	if authz.WriteRedirect(w, r, err) {
		return
	}

	var in submitRequest
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "club name is required")
		return
	}

	contact, officers, err := email.NormalizeContactAndOfficers(in.ContactEmail, in.OfficerEmails)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "a valid contact email is required")
		return
	}

	req := &domain.ClubRequest{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   strings.TrimSpace(in.Description),
		CategoryID:    strings.TrimSpace(in.CategoryID),
		ContactEmail:  contact,
		OfficerEmails: officers,
		RequestedBy:   principal.ID,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.repo.Create(r.Context(), req); err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not save club request")
		return
	}

	telemetry.EmitAsync(h.emitter, r.Context(), &telemetry.Event{
		UserID:    principal.ID,
		EventType: "club_request_submitted",
		Source:    "clubrequest",
		Metadata:  map[string]string{"request_id": req.ID},
		CreatedAt: time.Now().UTC(),
	})

	httpx.JSON(w, http.StatusCreated, toResponse(req))
}

// ListOwn handles GET /api/club-requests and returns the caller's own requests.
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.RequireUser(r.Context(), r.URL.Path)
	if authz.WriteRedirect(w, r, err) {
		return
	}

	reqs, err := h.repo.ListByRequester(r.Context(), principal.ID)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not load club requests")
		return
	}
	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toResponse(req))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"requests": out})
}

func toResponse(req *domain.ClubRequest) requestResponse {
	officers := req.OfficerEmails
	if officers == nil {
		officers = []string{}
	}
	return requestResponse{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ContactEmail:  req.ContactEmail,
		OfficerEmails: officers,
		Status:        string(req.Status),
		ReviewNote:    req.ReviewNote,
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
	}
}
