// Package sse implements Server-Sent Events for real-time guestbook relay
// and record lifecycle broadcasting.
package sse

import (
	"time"

	"github.com/birthdaywisher/wisher-server/internal/domain"
	"github.com/birthdaywisher/wisher-server/internal/normalize"
)

// Clients receive events over SSE; messages travel upstream over plain
// POSTs, so the relay stays server-to-client only.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventGuestbookMessage represents a new guestbook message on a record.
	EventGuestbookMessage EventType = "guestbook.message"

	// EventBirthdayCreated represents a new birthday record.
	EventBirthdayCreated EventType = "birthday.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`

	// Topic scopes delivery to clients watching one birthday record
	// (the normalized name). Empty means "broadcast to all".
	Topic string `json:"-"`
}

// GuestbookMessageEventData is the data payload for guestbook message events.
type GuestbookMessageEventData struct {
	Name  string                `json:"name"`
	Entry domain.GuestbookEntry `json:"entry"`
}

// BirthdayCreatedEventData is the data payload for birthday created events.
type BirthdayCreatedEventData struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewGuestbookMessageEvent creates a guestbook message event scoped to the
// record's topic.
func NewGuestbookMessageEvent(name string, entry domain.GuestbookEntry) Event {
	return Event{
		Type:      EventGuestbookMessage,
		Timestamp: time.Now(),
		Topic:     normalize.Name(name),
		Data: GuestbookMessageEventData{
			Name:  name,
			Entry: entry,
		},
	}
}

// NewBirthdayCreatedEvent creates a birthday created event. It carries no
// topic so every connected client learns about new records.
func NewBirthdayCreatedEvent(b *domain.Birthday) Event {
	return Event{
		Type:      EventBirthdayCreated,
		Timestamp: time.Now(),
		Data: BirthdayCreatedEventData{
			Name: b.Name,
			Date: b.Date,
		},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
	}
}
