package auth

import (
	"errors"
	"net/http"
	"time"

	"campus-clubs/backend/internal/platform/authz"
	"campus-clubs/backend/internal/server/httpx"
	"campus-clubs/backend/internal/server/middleware"
	"campus-clubs/backend/internal/telemetry"
)

type Handler struct {
	svc     *Service
	emitter telemetry.EventEmitter
}

// NewHandler returns a Handler. emitter may be nil.
func NewHandler(svc *Service, emitter telemetry.EventEmitter) *Handler {
	return &Handler{svc: svc, emitter: emitter}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expiresAt"`
	User      loginUser `json:"user"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Login handles POST /api/auth/login. Every credential failure is the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	res, err := h.svc.Login(r.Context(), in.Email, in.Password, middleware.ClientIP(r))
	if errors.Is(err, ErrInvalidCredentials) {
		httpx.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	telemetry.EmitAsync(h.emitter, r.Context(), &telemetry.Event{
		UserID:    res.User.ID,
		EventType: "user_login",
		Source:    "auth",
		CreatedAt: time.Now().UTC(),
	})

	httpx.JSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.Format(time.RFC3339),
		User:      loginUser{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name},
	})
}

// Logout handles POST /api/auth/logout and revokes the caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.RequireUser(r.Context(), "")
	if authz.WriteRedirect(w, r, err) {
		return
	}

	if err := h.svc.Logout(r.Context(), principal.SessionID); err != nil {
		httpx.Error(w, http.StatusInternalServerError, "logout failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
