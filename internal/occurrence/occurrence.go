// Package occurrence computes the next calendar occurrence of a birthday
// relative to a reference date, and ranks records by temporal proximity.
package occurrence

import (
	"sort"
	"time"

	"github.com/birthdaywisher/wisher-server/internal/domain"
)

// Next returns the soonest occurrence of date's month/day on or after the
// reference date. The reference year is substituted into the record's
// month/day; if that candidate falls strictly before the reference date,
// the following year is used instead.
//
// February 29 in a year without a leap day normalizes to March 1 via
// time.Date, which is the deterministic rule this package commits to.
func Next(date, reference time.Time) time.Time {
	ref := truncate(reference)
	candidate := time.Date(ref.Year(), date.Month(), date.Day(), 0, 0, 0, 0, ref.Location())
	if candidate.Before(ref) {
		candidate = time.Date(ref.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, ref.Location())
	}
	return candidate
}

// IsToday reports whether date's month and day equal the reference date's.
// Compared directly on month/day, independent of year substitution, so the
// classification is stable across year-rollover edge cases.
func IsToday(date, reference time.Time) bool {
	return date.Month() == reference.Month() && date.Day() == reference.Day()
}

// Ranked partitions birthday records relative to a reference date.
type Ranked struct {
	Today    []*domain.Birthday `json:"today"`
	Upcoming []*domain.Birthday `json:"upcoming"`
}

// Rank splits records into those occurring on the reference date and the
// rest ordered ascending by next occurrence. Records with the same next
// occurrence keep their input order.
func Rank(records []*domain.Birthday, reference time.Time) Ranked {
	ranked := Ranked{
		Today:    []*domain.Birthday{},
		Upcoming: []*domain.Birthday{},
	}

	type upcoming struct {
		record *domain.Birthday
		next   time.Time
	}
	pending := make([]upcoming, 0, len(records))

	for _, record := range records {
		if IsToday(record.Date, reference) {
			ranked.Today = append(ranked.Today, record)
			continue
		}
		pending = append(pending, upcoming{
			record: record,
			next:   Next(record.Date, reference),
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].next.Before(pending[j].next)
	})

	for _, u := range pending {
		ranked.Upcoming = append(ranked.Upcoming, u.record)
	}

	return ranked
}

// truncate strips the time-of-day component, keeping the location.
func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
