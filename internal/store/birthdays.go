package store

import (
	"context"
	"time"

	"github.com/birthdaywisher/wisher-server/internal/domain"
)

// CreateBirthday stores a new birthday record. Returns ErrAlreadyExists if
// another record holds the same normalized name. On success the name is
// pushed to the autocomplete indexer asynchronously, best-effort.
func (s *Store) CreateBirthday(ctx context.Context, b *domain.Birthday) error {
	if err := s.Birthdays.Create(ctx, b.ID, b); err != nil {
		return err
	}

	if s.nameIndexer != nil {
		go func(id, name string) {
			if err := s.nameIndexer.IndexName(context.Background(), id, name); err != nil && s.logger != nil {
				s.logger.Warn("failed to index birthday name", "id", id, "error", err)
			}
		}(b.ID, b.Name)
	}

	return nil
}

// GetBirthdayByName retrieves a record by its case-insensitive name.
// Returns ErrNotFound when no record matches.
func (s *Store) GetBirthdayByName(ctx context.Context, name string) (*domain.Birthday, error) {
	return s.Birthdays.GetByIndex(ctx, "name", name)
}

// ListBirthdays returns all birthday records.
func (s *Store) ListBirthdays(ctx context.Context) ([]*domain.Birthday, error) {
	records := make([]*domain.Birthday, 0)
	for b, err := range s.Birthdays.List(ctx) {
		if err != nil {
			return nil, err
		}
		records = append(records, b)
	}
	return records, nil
}

// AppendGuestbookEntry atomically appends an entry to the named record's
// guestbook. The read-modify-write runs in one transaction, so concurrent
// appends to the same record both survive. Returns the updated record, or
// ErrNotFound when no record matches the name.
func (s *Store) AppendGuestbookEntry(ctx context.Context, name string, entry domain.GuestbookEntry) (*domain.Birthday, error) {
	id, err := s.Birthdays.resolveIndex(ctx, "name", name)
	if err != nil {
		return nil, err
	}

	return s.Birthdays.UpdateFn(ctx, id, func(b *domain.Birthday) error {
		b.Guestbook = append(b.Guestbook, entry)
		b.UpdatedAt = time.Now()
		return nil
	})
}
