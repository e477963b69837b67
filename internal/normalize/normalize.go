// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import "strings"

// Name canonicalizes a birthday name for unique indexing and relay topics.
// Lower-cases, trims, and collapses internal whitespace runs to single
// spaces, so "  Ada   Lovelace " and "ada lovelace" address the same record.
func Name(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Text trims surrounding whitespace from free-form input such as guestbook
// messages. Internal whitespace is preserved.
func Text(s string) string {
	return strings.TrimSpace(s)
}
