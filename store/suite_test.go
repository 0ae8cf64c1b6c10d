package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

var testStart = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one minute per reading.
func stepClock() func() time.Time {
	var mu sync.Mutex
	next := testStart
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func parse(t *testing.T, text string) item.Parsed {
	t.Helper()
	return item.Parse(text, item.ParseOptions{Now: testStart})
}

// runStoreSuite exercises the item.Store contract against a fresh store.
func runStoreSuite(t *testing.T, open func(t *testing.T) item.Store) {
	t.Run("insert and list newest first", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		firstID, err := s.InsertItem(ctx, "ada", parse(t, "first #errand"))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		secondID, err := s.InsertItem(ctx, "ada", parse(t, "[] second @3/5/2026"))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if firstID == secondID {
			t.Fatalf("expected distinct ids, got %q twice", firstID)
		}

		items, err := s.ListItems(ctx, "ada")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].ID != secondID || items[1].ID != firstID {
			t.Fatalf("expected newest first, got %q then %q", items[0].ID, items[1].ID)
		}
		if !items[1].Timestamp.Equal(testStart) {
			t.Fatalf("expected store-assigned timestamp %v, got %v", testStart, items[1].Timestamp)
		}

		todo := items[0]
		if todo.Type != item.TypeTodo || todo.Status != item.StatusIncomplete {
			t.Fatalf("expected incomplete todo, got %s/%s", todo.Type, todo.Status)
		}
		if todo.DueDate != "2026-03-05" {
			t.Fatalf("expected due date 2026-03-05, got %q", todo.DueDate)
		}
		if len(items[1].Tags) != 1 || items[1].Tags[0] != "errand" {
			t.Fatalf("expected tags [errand], got %v", items[1].Tags)
		}
		if todo.Tags == nil {
			t.Fatal("expected non-nil empty tags")
		}
	})

	t.Run("owners are isolated", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		if _, err := s.InsertItem(ctx, "ada", parse(t, "mine")); err != nil {
			t.Fatalf("insert: %v", err)
		}
		items, err := s.ListItems(ctx, "grace")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no items for another owner, got %d", len(items))
		}
	})

	t.Run("update and subtasks round trip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		id, err := s.InsertItem(ctx, "ada", parse(t, "[] pack\n  [x] socks\n  [] shoes\n  - check the #weather"))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}

		status := item.StatusCompleted
		text := "pack bags"
		if err := s.UpdateItem(ctx, id, item.Update{Status: &status, Text: &text}); err != nil {
			t.Fatalf("update: %v", err)
		}

		items, err := s.ListItems(ctx, "ada")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		got := items[0]
		if got.Text != "pack bags" || got.Status != item.StatusCompleted {
			t.Fatalf("expected updated text and status, got %q/%s", got.Text, got.Status)
		}
		if len(got.Subtasks) != 2 || !got.Subtasks[0].Completed || got.Subtasks[1].Text != "shoes" {
			t.Fatalf("expected subtasks to survive, got %+v", got.Subtasks)
		}
		if len(got.Notes) != 1 || got.Notes[0].Text != "check the #weather" {
			t.Fatalf("expected sub-note to survive, got %+v", got.Notes)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		const missing = "00000000-0000-0000-0000-000000000000"
		text := "x"
		if err := s.UpdateItem(ctx, missing, item.Update{Text: &text}); !errors.Is(err, item.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound from update, got %v", err)
		}
		if err := s.DeleteItem(ctx, missing); !errors.Is(err, item.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound from delete, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		id, err := s.InsertItem(ctx, "ada", parse(t, "gone soon"))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := s.DeleteItem(ctx, id); err != nil {
			t.Fatalf("delete: %v", err)
		}
		items, err := s.ListItems(ctx, "ada")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no items after delete, got %d", len(items))
		}
	})

	t.Run("tag colors", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		colors, err := s.CustomTagColors(ctx, "ada")
		if err != nil {
			t.Fatalf("colors: %v", err)
		}
		if len(colors) != 0 {
			t.Fatalf("expected no colors, got %v", colors)
		}

		if err := s.SetCustomTagColors(ctx, "ada", markup.TagColors{"work": 3}); err != nil {
			t.Fatalf("set colors: %v", err)
		}
		if err := s.SetCustomTagColors(ctx, "ada", markup.TagColors{"work": 4, "home": 0}); err != nil {
			t.Fatalf("set colors: %v", err)
		}
		if err := s.SetCustomTagColors(ctx, "grace", markup.TagColors{"work": 9}); err != nil {
			t.Fatalf("set colors: %v", err)
		}

		colors, err = s.CustomTagColors(ctx, "ada")
		if err != nil {
			t.Fatalf("colors: %v", err)
		}
		if len(colors) != 2 || colors["work"] != 4 || colors["home"] != 0 {
			t.Fatalf("expected replaced colors, got %v", colors)
		}
	})
}

// expectEvent waits for one event on events.
func expectEvent(t *testing.T, events <-chan item.Event, owner string) {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("expected event, channel closed")
		}
		if ev.Owner != owner {
			t.Fatalf("expected event for %q, got %q", owner, ev.Owner)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}
