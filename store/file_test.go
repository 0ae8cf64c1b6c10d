package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/store"
)

func openFileStore(t *testing.T) *store.File {
	t.Helper()
	s, err := store.OpenFile(t.TempDir(), store.FileOptions{Now: stepClock()})
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	return s
}

func TestFile(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) item.Store {
		return openFileStore(t)
	})
}

func TestOpenFile_RequiresDir(t *testing.T) {
	if _, err := store.OpenFile("", store.FileOptions{}); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestFile_IDsAreShortAndUnique(t *testing.T) {
	s := openFileStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id, err := s.InsertItem(ctx, "ada", parse(t, "same text"))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if seen[id] {
			t.Fatalf("expected unique id, got duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestFile_WritesJSONL(t *testing.T) {
	s := openFileStore(t)
	ctx := context.Background()

	if _, err := s.InsertItem(ctx, "ada", parse(t, "one")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertItem(ctx, "grace", parse(t, "two")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), store.ItemsFile))
	if err != nil {
		t.Fatalf("read items file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], `"owner":"ada"`) || !strings.Contains(lines[1], `"owner":"grace"`) {
		t.Fatalf("expected owner fields, got %q", data)
	}
}

func TestFile_SharedDirectory(t *testing.T) {
	dir := t.TempDir()
	a, err := store.OpenFile(dir, store.FileOptions{Now: stepClock()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, err := store.OpenFile(dir, store.FileOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ctx := context.Background()
	if _, err := a.InsertItem(ctx, "ada", parse(t, "from a")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	items, err := b.ListItems(ctx, "ada")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Text != "from a" {
		t.Fatalf("expected the other handle's item, got %+v", items)
	}
}

func TestFile_Watch(t *testing.T) {
	dir := t.TempDir()
	watched, err := store.OpenFile(dir, store.FileOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	writer, err := store.OpenFile(dir, store.FileOptions{Now: stepClock()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watched.Watch(ctx, "ada")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if _, err := writer.InsertItem(ctx, "ada", parse(t, "hello")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	expectEvent(t, events, "ada")

	cancel()
	for range events {
	}
}
