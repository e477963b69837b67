package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/birthdaywisher/wisher-server/internal/normalize"
)

// MinPrefixLen is the shortest prefix that triggers a lookup; anything
// shorter returns no matches without touching the index.
const MinPrefixLen = 3

// DefaultLimit caps autocomplete result sets.
const DefaultLimit = 5

// Match is a single autocomplete result.
type Match struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Autocomplete returns up to limit birthday names whose normalized form
// starts with the given prefix, ordered alphabetically. A limit of zero or
// less falls back to DefaultLimit.
func (n *NameIndex) Autocomplete(ctx context.Context, prefix string, limit int) ([]Match, error) {
	normalized := normalize.Name(prefix)
	if len(normalized) < MinPrefixLen {
		return []Match{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	query := bleve.NewPrefixQuery(normalized)
	query.SetField("name")

	request := bleve.NewSearchRequestOptions(query, limit, 0, false)
	request.Fields = []string{"name", "display"}
	request.SortBy([]string{"name"})

	result, err := n.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("autocomplete search: %w", err)
	}

	matches := make([]Match, 0, len(result.Hits))
	for _, hit := range result.Hits {
		match := Match{ID: hit.ID}
		if display, ok := hit.Fields["display"].(string); ok && display != "" {
			match.Name = display
		} else if name, ok := hit.Fields["name"].(string); ok {
			match.Name = name
		}
		matches = append(matches, match)
	}

	return matches, nil
}
