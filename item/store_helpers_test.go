package item

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"testing"
	"time"

	"github.com/amonks/mindcache/markup"
)

var testNow = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)

var errStoreDown = errors.New("store unavailable")

// testClock advances by a minute on every reading.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: testNow}
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

// memStore is an in-memory Store with failure injection.
type memStore struct {
	clock   *testClock
	items   map[string]Item
	owners  map[string]string
	colors  map[string]markup.TagColors
	nextID  int
	fail    map[string]error
	updates int
}

func newMemStore(clock *testClock) *memStore {
	return &memStore{
		clock:  clock,
		items:  make(map[string]Item),
		owners: make(map[string]string),
		colors: make(map[string]markup.TagColors),
		fail:   make(map[string]error),
	}
}

func (s *memStore) ListItems(_ context.Context, owner string) ([]Item, error) {
	if err := s.fail["list"]; err != nil {
		return nil, err
	}
	var out []Item
	for id, it := range s.items {
		if s.owners[id] == owner {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *memStore) InsertItem(_ context.Context, owner string, parsed Parsed) (string, error) {
	if err := s.fail["insert"]; err != nil {
		return "", err
	}
	s.nextID++
	id := fmt.Sprintf("item%02d", s.nextID)
	s.items[id] = parsed.Item(id, s.clock.Now())
	s.owners[id] = owner
	return id, nil
}

func (s *memStore) UpdateItem(_ context.Context, id string, update Update) error {
	if err := s.fail["update"]; err != nil {
		return err
	}
	it, ok := s.items[id]
	if !ok {
		return ErrItemNotFound
	}
	s.updates++
	s.items[id] = update.Apply(it)
	return nil
}

func (s *memStore) DeleteItem(_ context.Context, id string) error {
	if err := s.fail["delete"]; err != nil {
		return err
	}
	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(s.items, id)
	delete(s.owners, id)
	return nil
}

func (s *memStore) CustomTagColors(_ context.Context, owner string) (markup.TagColors, error) {
	if err := s.fail["colors"]; err != nil {
		return nil, err
	}
	return maps.Clone(s.colors[owner]), nil
}

func (s *memStore) SetCustomTagColors(_ context.Context, owner string, colors markup.TagColors) error {
	if err := s.fail["set colors"]; err != nil {
		return err
	}
	s.colors[owner] = maps.Clone(colors)
	return nil
}

func openTestNotebook(t *testing.T) (*Notebook, *memStore) {
	t.Helper()
	clock := newTestClock()
	store := newMemStore(clock)
	nb, err := OpenNotebook(context.Background(), store, NotebookOptions{Owner: "ada", Now: clock.Now})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	return nb, store
}
