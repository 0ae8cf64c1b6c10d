// Package store implements item.Store on a local directory, on redis and on
// PostgreSQL.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/amonks/mindcache/internal/ids"
	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

const (
	// ItemsFile is the JSONL file holding every owner's items.
	ItemsFile = "items.jsonl"

	// TagColorsFile is the JSONL file holding per-owner tag colors.
	TagColorsFile = "tag_colors.jsonl"

	lockFile = ".lock"
)

// File stores items as JSONL in a directory. Concurrent processes are
// serialized with an exclusive lock on a lock file in the same directory.
type File struct {
	dir string
	now func() time.Time
}

// FileOptions configures a File store.
type FileOptions struct {
	// Now stamps new items. Defaults to time.Now.
	Now func() time.Time
}

type itemRecord struct {
	Owner string `json:"owner"`
	item.Item
}

type colorRecord struct {
	Owner  string           `json:"owner"`
	Colors markup.TagColors `json:"colors"`
}

// OpenFile opens (creating if needed) a file store in dir.
func OpenFile(dir string, opts FileOptions) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &File{dir: dir, now: now}, nil
}

// Dir returns the store's data directory.
func (s *File) Dir() string {
	return s.dir
}

// Close is a no-op; a File holds no open handles between calls.
func (s *File) Close() error {
	return nil
}

func (s *File) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *File) locked(fn func() error) error {
	return withFileLock(s.path(lockFile), fn)
}

func (s *File) readItems() ([]itemRecord, error) {
	records, err := readJSONL[itemRecord](s.path(ItemsFile))
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return records, nil
}

func (s *File) writeItems(records []itemRecord) error {
	if err := writeJSONL(s.path(ItemsFile), records); err != nil {
		return fmt.Errorf("write items: %w", err)
	}
	return nil
}

// ListItems returns the owner's items, newest first.
func (s *File) ListItems(_ context.Context, owner string) ([]item.Item, error) {
	var records []itemRecord
	err := s.locked(func() error {
		var err error
		records, err = s.readItems()
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]item.Item, 0, len(records))
	for _, r := range records {
		if r.Owner == owner {
			items = append(items, r.Item)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

// InsertItem stores a new item stamped with the current time.
func (s *File) InsertItem(_ context.Context, owner string, parsed item.Parsed) (string, error) {
	var id string
	err := s.locked(func() error {
		records, err := s.readItems()
		if err != nil {
			return err
		}

		taken := make(map[string]bool, len(records))
		for _, r := range records {
			taken[r.ID] = true
		}
		now := s.now()
		id = ids.GenerateUnique(parsed.Text, now, taken)

		records = append(records, itemRecord{Owner: owner, Item: parsed.Item(id, now)})
		return s.writeItems(records)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateItem applies a partial update.
func (s *File) UpdateItem(_ context.Context, id string, update item.Update) error {
	return s.locked(func() error {
		records, err := s.readItems()
		if err != nil {
			return err
		}
		for i := range records {
			if records[i].ID == id {
				records[i].Item = update.Apply(records[i].Item)
				return s.writeItems(records)
			}
		}
		return fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	})
}

// DeleteItem removes an item.
func (s *File) DeleteItem(_ context.Context, id string) error {
	return s.locked(func() error {
		records, err := s.readItems()
		if err != nil {
			return err
		}
		for i := range records {
			if records[i].ID == id {
				records = append(records[:i], records[i+1:]...)
				return s.writeItems(records)
			}
		}
		return fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	})
}

// CustomTagColors returns the owner's tag colors.
func (s *File) CustomTagColors(_ context.Context, owner string) (markup.TagColors, error) {
	colors := markup.TagColors{}
	err := s.locked(func() error {
		records, err := readJSONL[colorRecord](s.path(TagColorsFile))
		if err != nil {
			return fmt.Errorf("read tag colors: %w", err)
		}
		for _, r := range records {
			if r.Owner == owner && r.Colors != nil {
				colors = r.Colors
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return colors, nil
}

// SetCustomTagColors replaces the owner's tag colors.
func (s *File) SetCustomTagColors(_ context.Context, owner string, colors markup.TagColors) error {
	return s.locked(func() error {
		path := s.path(TagColorsFile)
		records, err := readJSONL[colorRecord](path)
		if err != nil {
			return fmt.Errorf("read tag colors: %w", err)
		}
		next := make([]colorRecord, 0, len(records)+1)
		for _, r := range records {
			if r.Owner != owner {
				next = append(next, r)
			}
		}
		next = append(next, colorRecord{Owner: owner, Colors: colors})
		if err := writeJSONL(path, next); err != nil {
			return fmt.Errorf("write tag colors: %w", err)
		}
		return nil
	})
}

func sortNewestFirst(items []item.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
}
