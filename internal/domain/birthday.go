// Package domain defines the core types for the wisher server.
package domain

import "time"

// Birthday is a registered birthday record with its embedded guestbook.
// Records are created once and never edited except for guestbook appends.
type Birthday struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Date      time.Time        `json:"date"`
	Email     string           `json:"email,omitempty"`
	Message   string           `json:"message,omitempty"`
	Theme     string           `json:"theme"`
	Guestbook []GuestbookEntry `json:"guestbook"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// GuestbookEntry is a single message in a birthday's guestbook.
// Entries are append-only; insertion order is display order.
type GuestbookEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactMessage is a contact-form submission. It is relayed to the
// operator address and never persisted.
type ContactMessage struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}
