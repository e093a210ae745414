package domain

import "time"

// ClubRequest is a user-submitted proposal to register a new club. It stays pending
// until a platform admin reviews it.
type ClubRequest struct {
	ID            string
	Name          string
	Description   string
	CategoryID    string
	ContactEmail  string
	OfficerEmails []string
	RequestedBy   string
	Status        Status
	ReviewNote    string
	ReviewedBy    string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)
