package domain

import "time"

// Event is a calendar event owned by a club. Instances are ephemeral query results;
// this layer never mutates them.
type Event struct {
	ID           string
	ClubID       string
	Title        string
	Description  string
	CategoryID   string
	Tags         []string
	LocationType LocationType
	Status       Status
	StartsAt     time.Time
	EndsAt       time.Time
	CreatedAt    time.Time
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

type LocationType string

const (
	LocationInPerson LocationType = "in_person"
	LocationVirtual  LocationType = "virtual"
	LocationHybrid   LocationType = "hybrid"
)

// DayPart buckets an event's local start hour. Every event falls in exactly one bucket.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"   // [5, 12)
	DayPartAfternoon DayPart = "afternoon" // [12, 17)
	DayPartEvening   DayPart = "evening"   // [17, 24) and [0, 5)
)

// DayPartOf classifies t by its local hour of day.
func DayPartOf(t time.Time) DayPart {
	h := t.Hour()
	switch {
	case h >= 5 && h < 12:
		return DayPartMorning
	case h >= 12 && h < 17:
		return DayPartAfternoon
	default:
		return DayPartEvening
	}
}

// Filter is the event search input: a closed time interval plus optional refinements.
type Filter struct {
	From time.Time
	To   time.Time

	CategoryIDs   []string
	Tags          []string
	ClubIDs       []string
	LocationTypes []string
	Query         string

	// HideCancelled and DayParts are applied client-side after the remote query;
	// everything above is delegated to the database.
	HideCancelled bool
	DayParts      []DayPart
}
