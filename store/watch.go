package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/amonks/mindcache/item"
)

// watchDebounce coalesces the burst of events one write produces
// (temp file create, write, rename).
const watchDebounce = 50 * time.Millisecond

// Watch reports changes to the store's files, including writes from other
// processes. Events are not filtered by owner since all owners share a file.
func (s *File) Watch(ctx context.Context, owner string) (<-chan item.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	events := make(chan item.Event, 1)
	go func() {
		defer close(events)
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isDataFile(ev.Name) || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
					continue
				}
				if pending == nil {
					pending = time.After(watchDebounce)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-pending:
				pending = nil
				select {
				case events <- item.Event{Owner: owner}:
				default:
				}
			}
		}
	}()
	return events, nil
}

func isDataFile(path string) bool {
	switch filepath.Base(path) {
	case ItemsFile, TagColorsFile:
		return true
	}
	return false
}
