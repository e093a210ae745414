// Package auth implements credential login and logout on top of the session store.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"campus-clubs/backend/internal/email"
	"campus-clubs/backend/internal/security"
	sessiondomain "campus-clubs/backend/internal/session/domain"
	sessionrepo "campus-clubs/backend/internal/session/repository"
	userdomain "campus-clubs/backend/internal/user/domain"
	userrepo "campus-clubs/backend/internal/user/repository"
)

// ErrInvalidCredentials covers every login failure a caller may see: unknown address,
// wrong password, disabled account. Callers must not learn which one it was.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type Service struct {
	users    userrepo.Repository
	sessions sessionrepo.Repository
	tokens   *security.TokenProvider
	hasher   *security.Hasher
}

func NewService(users userrepo.Repository, sessions sessionrepo.Repository, tokens *security.TokenProvider, hasher *security.Hasher) *Service {
	return &Service{users: users, sessions: sessions, tokens: tokens, hasher: hasher}
}

// LoginResult is a successful login: the bearer token plus the user it authenticates.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *userdomain.User
}

// Login verifies the credentials, opens a session and issues its token.
func (s *Service) Login(ctx context.Context, rawEmail, password, ip string) (*LoginResult, error) {
	addr := email.Normalize(rawEmail)
	if addr == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Status != userdomain.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess := &sessiondomain.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}
	token, _, expiresAt, err := s.tokens.Issue(sess.ID, u.ID)
	if err != nil {
		return nil, err
	}
	sess.ExpiresAt = expiresAt
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// Logout revokes the session. Revoking an already-revoked session is fine.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		log.Printf("auth: revoke session %s: %v", sessionID, err)
		return err
	}
	return nil
}
