package models

import (
	"time"
)

// EventType is the presentation variant of an event
type EventType string

const (
	EventTypeFull   EventType = "full"
	EventTypeTeaser EventType = "teaser"
)

// EventStatus controls in which lists an event is visible
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusPast      EventStatus = "past"
)

// Event represents one entry of the events document
type Event struct {
	ID               int64       `json:"id"`
	Type             EventType   `json:"type"`
	Status           EventStatus `json:"status"`
	Title            string      `json:"title"`
	Subtitle         string      `json:"subtitle,omitempty"`
	Date             Date        `json:"date"`
	DoorsTime        string      `json:"doorsTime,omitempty"`
	Venue            string      `json:"venue"`
	Location         string      `json:"location"`
	Artists          []Artist    `json:"artists"`
	MC               []Artist    `json:"mc"`
	Genres           []string    `json:"genres"`
	TicketLink       *string     `json:"ticketLink"`
	GuestlistEnabled bool        `json:"guestlistEnabled"`
	Prices           *Prices     `json:"prices,omitempty"`
	HeroVideo        *string     `json:"heroVideo"`
	PosterImage      *string     `json:"posterImage"`
	BgMusic          *string     `json:"bgMusic"`
	StreamRecording  *string     `json:"streamRecording"`
}

// Prices holds the optional price lines shown on the event page
type Prices struct {
	EarlyBird string `json:"earlyBird,omitempty"`
	General   string `json:"general,omitempty"`
}

// Settings holds document-wide settings
type Settings struct {
	ActiveEventID *int64 `json:"activeEventId"`
}

// EventStore is the single persisted events document
type EventStore struct {
	Events   []Event  `json:"events"`
	Settings Settings `json:"settings"`
}

// CommitRecord is one row of the admin commit audit log
type CommitRecord struct {
	ID        int64     `json:"id" db:"id"`
	Kind      string    `json:"kind" db:"kind"`
	Path      string    `json:"path" db:"path"`
	Revision  string    `json:"revision" db:"revision"`
	RequestID string    `json:"request_id" db:"request_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
