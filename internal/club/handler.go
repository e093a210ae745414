package club

import (
	"net/http"
	"strconv"
	"time"

	"campus-clubs/backend/internal/club/domain"
	"campus-clubs/backend/internal/club/repository"
	"campus-clubs/backend/internal/server/httpx"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

type Handler struct {
	repo repository.Repository
}

func NewHandler(repo repository.Repository) *Handler {
	return &Handler{repo: repo}
}

type clubResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	ContactEmail string `json:"contactEmail"`
	CreatedAt    string `json:"createdAt"`
}

type memberResponse struct {
	UserID   string `json:"userId"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

// List handles GET /api/clubs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.repo.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "club listing failed")
		return
	}
	out := make([]clubResponse, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, toClubResponse(c))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"clubs": out})
}

// Get handles GET /api/clubs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "club lookup failed")
		return
	}
	if c == nil {
		httpx.Error(w, http.StatusNotFound, "club not found")
		return
	}
	httpx.JSON(w, http.StatusOK, toClubResponse(c))
}

// Members handles GET /api/clubs/{id}/members. The total reflects the full roster,
// not the returned page.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := intParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	page, err := h.repo.ListMembersPage(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "member listing failed")
		return
	}

	members := make([]memberResponse, 0, len(page.Members))
	for _, m := range page.Members {
		members = append(members, memberResponse{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt.Format(time.RFC3339),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"members": members, "total": page.Total})
}

func toClubResponse(c *domain.Club) clubResponse {
	return clubResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		CategoryID:   c.CategoryID,
		ContactEmail: c.ContactEmail,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

func intParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
