// Package search maintains the Bleve index behind birthday name
// autocomplete. The index holds one document per birthday record and is
// rebuilt from the store on startup when the mapping version changes.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/birthdaywisher/wisher-server/internal/normalize"
)

// NameIndex wraps a Bleve index with name-autocomplete operations.
//
// Thread safety: all public methods are safe for concurrent use.
// The mutex protects against index corruption during rebuild operations.
type NameIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex // Protects index operations during rebuild
}

// Options configures the name index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (stderr text if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// This triggers an automatic rebuild on startup when the version doesn't match.
const mappingVersion = "1"

// NewNameIndex creates or opens the autocomplete index. An existing index
// with a stale mapping version, or one that fails to open, is removed and
// recreated; callers should reindex from the store afterwards.
func NewNameIndex(opts Options) (*NameIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "names.bleve")
	versionPath := filepath.Join(opts.DataPath, "names.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			logger.Info("name index has no version file, will rebuild with current mapping",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			logger.Info("name index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing name index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0644); writeErr != nil {
			logger.Warn("failed to write name index version file", "error", writeErr)
		}
		logger.Info("created new name index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing name index", "path", indexPath)
	}

	return &NameIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (n *NameIndex) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index.Close()
}

// indexDocument builds the Bleve document for a birthday name. The "name"
// field carries the normalized form for prefix matching; "display" keeps
// the original casing for results.
func indexDocument(name string) map[string]any {
	return map[string]any{
		"name":    normalize.Name(name),
		"display": name,
	}
}

// IndexName adds or replaces the autocomplete entry for a birthday record.
func (n *NameIndex) IndexName(_ context.Context, id, name string) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.index.Index(id, indexDocument(name))
}

// IndexNames indexes many records in a batch. Used when reindexing the
// whole store; significantly faster than IndexName in a loop.
func (n *NameIndex) IndexNames(names map[string]string) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	const batchSize = 500

	batch := n.index.NewBatch()
	for id, name := range names {
		if err := batch.Index(id, indexDocument(name)); err != nil {
			return fmt.Errorf("batch index %s: %w", id, err)
		}
		if batch.Size() >= batchSize {
			if err := n.index.Batch(batch); err != nil {
				return fmt.Errorf("commit batch: %w", err)
			}
			batch = n.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := n.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
	}

	return nil
}

// RemoveName removes a record's entry from the index.
func (n *NameIndex) RemoveName(_ context.Context, id string) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.index.Delete(id)
}

// DocumentCount returns the number of indexed names.
func (n *NameIndex) DocumentCount() (uint64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.index.DocCount()
}

// Rebuild drops the existing index and creates a fresh empty one.
//
// This acquires an exclusive lock and blocks all other operations; callers
// reindex from the store immediately afterwards.
func (n *NameIndex) Rebuild() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	if err := os.RemoveAll(n.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(n.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	n.index = index
	n.logger.Info("rebuilt name index", "path", n.path)

	return nil
}
