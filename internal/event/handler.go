package event

import (
	"net/http"
	"strings"
	"time"

	"campus-clubs/backend/internal/event/domain"
	"campus-clubs/backend/internal/server/httpx"
)

// defaultWindow is the search interval applied when the request omits from/to.
const defaultWindow = 30 * 24 * time.Hour

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type eventResponse struct {
	ID           string   `json:"id"`
	ClubID       string   `json:"clubId"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	CategoryID   string   `json:"categoryId,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	LocationType string   `json:"locationType"`
	Status       string   `json:"status"`
	DayPart      string   `json:"dayPart"`
	StartsAt     string   `json:"startsAt"`
	EndsAt       string   `json:"endsAt"`
}

// Search handles GET /api/events. All filters come from query parameters; list
// parameters are comma-separated.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.svc.Search(r.Context(), f)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "event search failed")
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:           e.ID,
			ClubID:       e.ClubID,
			Title:        e.Title,
			Description:  e.Description,
			CategoryID:   e.CategoryID,
			Tags:         e.Tags,
			LocationType: string(e.LocationType),
			Status:       string(e.Status),
			DayPart:      string(domain.DayPartOf(e.StartsAt)),
			StartsAt:     e.StartsAt.Format(time.RFC3339),
			EndsAt:       e.EndsAt.Format(time.RFC3339),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"events": out})
}

func filterFromQuery(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()

	now := time.Now().UTC()
	f := domain.Filter{From: now, To: now.Add(defaultWindow)}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return domain.Filter{}, err
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return domain.Filter{}, err
		}
		f.To = t
	}

	f.CategoryIDs = splitParam(q.Get("categories"))
	f.Tags = splitParam(q.Get("tags"))
	f.ClubIDs = splitParam(q.Get("clubs"))
	f.LocationTypes = splitParam(q.Get("locations"))
	f.Query = q.Get("q")
	f.HideCancelled = q.Get("hideCancelled") == "true"
	for _, dp := range splitParam(q.Get("dayParts")) {
		f.DayParts = append(f.DayParts, domain.DayPart(dp))
	}
	return f, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
