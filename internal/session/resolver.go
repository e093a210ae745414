// Package session resolves the current authenticated principal from request credentials.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"campus-clubs/backend/internal/security"
	"campus-clubs/backend/internal/session/domain"
	userdomain "campus-clubs/backend/internal/user/domain"
)

const (
	bearerPrefix = "bearer "

	// CookieName is the session cookie the resolver accepts when no Authorization header is present.
	CookieName = "session"
)

// UserGetter is the minimal user lookup needed by the resolver.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// SessionGetter is the minimal session lookup needed by the resolver.
type SessionGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
}

// Resolver turns request credentials into a Principal.
type Resolver struct {
	tokens   *security.TokenProvider
	users    UserGetter
	sessions SessionGetter
}

// NewResolver returns a Resolver that validates tokens with tokens and looks up
// session and user rows via the given getters.
func NewResolver(tokens *security.TokenProvider, users UserGetter, sessions SessionGetter) *Resolver {
	return &Resolver{tokens: tokens, users: users, sessions: sessions}
}

// Resolve returns the Principal for the request, or nil when the request is anonymous.
// Any failure along the way (missing credential, invalid token, revoked or expired
// session, unknown or disabled user, lookup error) yields nil; resolution never
// surfaces an error to the route.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) *domain.Principal {
	token := credentialFrom(req)
	if token == "" {
		return nil
	}
	sessionID, userID, err := r.tokens.Validate(token)
	if err != nil {
		return nil
	}
	s, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil || !s.Active(time.Now()) {
		return nil
	}
	if s.UserID != userID {
		return nil
	}
	u, err := r.users.GetByID(ctx, userID)
	if err != nil || u == nil || u.Status != userdomain.UserStatusActive {
		return nil
	}
	return &domain.Principal{ID: u.ID, Email: u.Email, Name: u.Name, SessionID: s.ID}
}

// credentialFrom returns the session token from the Authorization header, falling
// back to the session cookie. Returns "" if neither carries a credential.
func credentialFrom(req *http.Request) string {
	v := strings.TrimSpace(req.Header.Get("Authorization"))
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(v[len(bearerPrefix):])
	}
	if c, err := req.Cookie(CookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
