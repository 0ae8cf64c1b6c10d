package item

import (
	"fmt"

	"github.com/amonks/mindcache/internal/ids"
)

// IDIndex indexes item IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of items.
func NewIDIndex(items []Item) IDIndex {
	itemIDs := make([]string, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	return IDIndex{ids: ids.NormalizeUniqueIDs(itemIDs)}
}

// Resolve returns the full item ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrItemNotFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrItemNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousItemIDPrefix, prefix)
	}

	return match, nil
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengthsNormalized(index.ids)
}
