package domain

import "time"

// Session represents an authenticated login session.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time // nil when not revoked
	IPAddress string
	CreatedAt time.Time
}

// Active reports whether the session is neither revoked nor expired at the given instant.
func (s *Session) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.RevokedAt != nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}

// Principal is the authenticated caller resolved from a request.
// Absent (nil) means the request is anonymous.
type Principal struct {
	ID        string
	Email     string
	Name      string
	SessionID string
}
