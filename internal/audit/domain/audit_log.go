package domain

import "time"

// AuditLog is a single admin-action audit entry.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string // e.g. "email_worker.trigger", "club_request.approve"
	Resource  string // e.g. "email_worker", "club_request:<id>"
	IP        string
	Metadata  string // JSON
	CreatedAt time.Time
}
