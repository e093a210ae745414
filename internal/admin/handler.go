// Package admin holds the platform-admin capability records and the admin review surface.
package admin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	adminrepo "campus-clubs/backend/internal/admin/repository"
	"campus-clubs/backend/internal/audit"
	auditrepo "campus-clubs/backend/internal/audit/repository"
	clubdomain "campus-clubs/backend/internal/club/domain"
	clubrepo "campus-clubs/backend/internal/club/repository"
	crdomain "campus-clubs/backend/internal/clubrequest/domain"
	crrepo "campus-clubs/backend/internal/clubrequest/repository"
	"campus-clubs/backend/internal/platform/authz"
	"campus-clubs/backend/internal/server/httpx"
	"campus-clubs/backend/internal/server/middleware"
	"campus-clubs/backend/internal/telemetry"
	userrepo "campus-clubs/backend/internal/user/repository"
)

// Handler serves the platform-admin review routes. Every route is guarded by the
// platform-admin capability.
type Handler struct {
	admins   adminrepo.Repository
	requests crrepo.Repository
	clubs    clubrepo.Repository
	users    userrepo.Repository
	audits   auditrepo.Repository
	auditor  audit.AuditLogger
	emitter  telemetry.EventEmitter
}

func NewHandler(admins adminrepo.Repository, requests crrepo.Repository, clubs clubrepo.Repository, users userrepo.Repository, audits auditrepo.Repository, auditor audit.AuditLogger, emitter telemetry.EventEmitter) *Handler {
	return &Handler{admins: admins, requests: requests, clubs: clubs, users: users, audits: audits, auditor: auditor, emitter: emitter}
}

type pendingRequestResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	CategoryID    string   `json:"categoryId,omitempty"`
	ContactEmail  string   `json:"contactEmail"`
	OfficerEmails []string `json:"officerEmails"`
	RequestedBy   string   `json:"requestedBy"`
	CreatedAt     string   `json:"createdAt"`
}

// ListPendingRequests handles GET /api/admin/club-requests.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	_, err := authz.RequirePlatformAdmin(r.Context(), h.admins)
	if authz.WriteRedirect(w, r, err) {
		return
	}

	reqs, err := h.requests.ListByStatus(r.Context(), crdomain.StatusPending)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not load pending requests")
		return
	}
	out := make([]pendingRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		officers := req.OfficerEmails
		if officers == nil {
			officers = []string{}
		}
		out = append(out, pendingRequestResponse{
			ID:            req.ID,
			Name:          req.Name,
			Description:   req.Description,
			CategoryID:    req.CategoryID,
			ContactEmail:  req.ContactEmail,
			OfficerEmails: officers,
			RequestedBy:   req.RequestedBy,
			CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"requests": out})
}

type auditLogResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId,omitempty"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	IP        string          `json:"ip"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

const auditLogPageSize = 100

// ListAuditLogs handles GET /api/admin/audit-logs and returns the most recent entries.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	_, err := authz.RequirePlatformAdmin(r.Context(), h.admins)
	if authz.WriteRedirect(w, r, err) {
		return
	}

	entries, err := h.audits.ListRecent(r.Context(), auditLogPageSize)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not load audit log")
		return
	}
	out := make([]auditLogResponse, 0, len(entries))
	for _, e := range entries {
		resp := auditLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Resource:  e.Resource,
			IP:        e.IP,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		if json.Valid([]byte(e.Metadata)) {
			resp.Metadata = json.RawMessage(e.Metadata)
		}
		out = append(out, resp)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": out})
}

type reviewRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note"`
}

// ReviewRequest handles POST /api/admin/club-requests/{id}/review. Approval registers
// the club and adds the requester plus any resolvable officer addresses to its roster;
// officer addresses without a matching account are skipped.
func (h *Handler) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.RequirePlatformAdmin(r.Context(), h.admins)
	if authz.WriteRedirect(w, r, err) {
		return
	}

	var in reviewRequest
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	var status crdomain.Status
	switch strings.ToLower(strings.TrimSpace(in.Decision)) {
	case "approve":
		status = crdomain.StatusApproved
	case "reject":
		status = crdomain.StatusRejected
	default:
		httpx.Error(w, http.StatusBadRequest, `decision must be "approve" or "reject"`)
		return
	}

	id := r.PathValue("id")
	req, err := h.requests.GetByID(r.Context(), id)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not load club request")
		return
	}
	if req == nil {
		httpx.Error(w, http.StatusNotFound, "club request not found")
		return
	}
	if req.Status != crdomain.StatusPending {
		httpx.Error(w, http.StatusConflict, "club request already reviewed")
		return
	}

	var clubID string
	if status == crdomain.StatusApproved {
		clubID, err = h.approve(r, req)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "could not register club")
			return
		}
	}

	if err := h.requests.SetReview(r.Context(), id, status, principal.ID, strings.TrimSpace(in.Note)); err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not record review")
		return
	}

	h.recordReview(r, principal.ID, req, status, clubID)

	resp := map[string]any{"id": id, "status": string(status)}
	if clubID != "" {
		resp["clubId"] = clubID
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// approve registers the club and seeds its roster from the request.
func (h *Handler) approve(r *http.Request, req *crdomain.ClubRequest) (string, error) {
	now := time.Now().UTC()
	club := &clubdomain.Club{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		ContactEmail: req.ContactEmail,
		CreatedAt:    now,
	}
	if err := h.clubs.Create(r.Context(), club); err != nil {
		return "", err
	}

	if err := h.clubs.AddMember(r.Context(), &clubdomain.Member{
		ID:       uuid.New().String(),
		ClubID:   club.ID,
		UserID:   req.RequestedBy,
		Role:     clubdomain.RoleOfficer,
		JoinedAt: now,
	}); err != nil {
		return "", err
	}

	for _, addr := range req.OfficerEmails {
		u, err := h.users.GetByEmail(r.Context(), addr)
		if err != nil {
			return "", err
		}
		if u == nil {
			continue
		}
		if err := h.clubs.AddMember(r.Context(), &clubdomain.Member{
			ID:       uuid.New().String(),
			ClubID:   club.ID,
			UserID:   u.ID,
			Role:     clubdomain.RoleOfficer,
			JoinedAt: now,
		}); err != nil {
			return "", err
		}
	}
	return club.ID, nil
}

func (h *Handler) recordReview(r *http.Request, adminID string, req *crdomain.ClubRequest, status crdomain.Status, clubID string) {
	meta, _ := json.Marshal(map[string]string{"request_id": req.ID, "decision": string(status), "club_id": clubID})
	if h.auditor != nil {
		h.auditor.LogEvent(r.Context(), adminID, "club_request.review", "club_request", middleware.ClientIP(r), string(meta))
	}
	telemetry.EmitAsync(h.emitter, r.Context(), &telemetry.Event{
		UserID:    adminID,
		EventType: "club_request_reviewed",
		Source:    "admin",
		Metadata:  map[string]string{"request_id": req.ID, "decision": string(status)},
		CreatedAt: time.Now().UTC(),
	})
}
