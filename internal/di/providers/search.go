package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/birthdaywisher/wisher-server/internal/config"
	"github.com/birthdaywisher/wisher-server/internal/logger"
	"github.com/birthdaywisher/wisher-server/internal/search"
)

// NameIndexHandle wraps the autocomplete index with shutdown capability.
type NameIndexHandle struct {
	*search.NameIndex
}

// Shutdown implements do.Shutdownable.
func (h *NameIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideNameIndex provides the Bleve autocomplete index and wires it to
// the store so new records are indexed automatically.
func ProvideNameIndex(i do.Injector) (*NameIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewNameIndex(search.Options{
		DataPath: cfg.Store.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetNameIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Name index initialized", "documents", docCount)

	return &NameIndexHandle{NameIndex: index}, nil
}

// ReindexNamesIfNeeded backfills the autocomplete index from the store when
// the index is empty but records exist (fresh index or mapping rebuild).
func ReindexNamesIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*NameIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	records, err := storeHandle.ListBirthdays(ctx)
	if err != nil || len(records) == 0 {
		return
	}

	names := make(map[string]string, len(records))
	for _, record := range records {
		names[record.ID] = record.Name
	}

	log.Info("Name index is empty but records exist, backfilling",
		"record_count", len(names),
	)

	go func() {
		if err := indexHandle.IndexNames(names); err != nil {
			log.Error("Name index backfill failed", "error", err)
			return
		}
		count, _ := indexHandle.DocumentCount()
		log.Info("Name index backfill completed", "documents", count)
	}()
}
