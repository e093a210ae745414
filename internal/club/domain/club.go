package domain

import "time"

// Club is a registered student club in the directory.
type Club struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string
	ContactEmail string
	CreatedAt    time.Time
}

// Member is one row of a club's roster, joined with the member's user record.
type Member struct {
	ID        string
	ClubID    string
	UserID    string
	Name      string
	Email     string
	Role      string
	JoinedAt  time.Time
}

const (
	RoleMember  = "member"
	RoleOfficer = "officer"
)

// MemberPage is one page of a club roster. Total is the roster size across all
// pages as reported by the query, not the page length.
type MemberPage struct {
	Members []*Member
	Total   int
}
