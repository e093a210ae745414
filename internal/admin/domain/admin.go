package domain

import "time"

// PlatformAdmin marks a user as holding the platform-admin capability.
// Presence of exactly one row for a user id grants the capability; there is no role field.
type PlatformAdmin struct {
	UserID    string
	GrantedBy string
	CreatedAt time.Time
}
