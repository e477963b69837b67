// Package store implements the Badger-backed document store for birthday records.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/birthdaywisher/wisher-server/internal/domain"
	"github.com/birthdaywisher/wisher-server/internal/normalize"
)

// NameIndexer keeps the autocomplete index in sync with the store.
// Index updates are performed asynchronously to not block store operations.
type NameIndexer interface {
	IndexName(ctx context.Context, id, name string) error
	RemoveName(ctx context.Context, id string) error
}

// NoopNameIndexer is a no-op implementation for testing.
type NoopNameIndexer struct{}

// IndexName is a no-op.
func (NoopNameIndexer) IndexName(context.Context, string, string) error { return nil }

// RemoveName is a no-op.
func (NoopNameIndexer) RemoveName(context.Context, string) error { return nil }

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Autocomplete indexer, set via SetNameIndexer after store creation
	// to avoid circular dependencies.
	nameIndexer NameIndexer

	// Generic entities
	Birthdays *Entity[domain.Birthday]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initBirthdays()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetNameIndexer sets the autocomplete indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before the search index can be rebuilt from it).
func (s *Store) SetNameIndexer(indexer NameIndexer) {
	s.nameIndexer = indexer
}

// initBirthdays initializes the Birthdays entity on the store.
// Uses case-insensitive unique name indexing via normalize.Name.
func (s *Store) initBirthdays() {
	s.Birthdays = NewEntity[domain.Birthday](s, "bday:").
		WithIndexTransform("name",
			func(b *domain.Birthday) []string {
				return []string{normalize.Name(b.Name)}
			},
			normalize.Name, // Transform lookups to be case-insensitive
		)
}
