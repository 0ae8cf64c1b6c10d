package item

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/markup"
)

// NotebookOptions configures a Notebook.
type NotebookOptions struct {
	// Owner scopes every store call.
	Owner string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Notebook is one owner's view of a store: the last fetched items and tag
// colors, plus the operations that change them.
//
// Every successful write is followed by a full refetch. A failed write
// leaves the cached items as they were, and a failed refetch keeps the
// previous result. Store failures are returned as *StoreError.
//
// Operations are serialized, so a Notebook may be shared between goroutines.
type Notebook struct {
	mu     sync.Mutex
	store  Store
	owner  string
	now    func() time.Time
	items  []Item
	colors markup.TagColors
	index  IDIndex
}

// NewNotebook returns an empty notebook. Call Refresh to load it.
func NewNotebook(store Store, opts NotebookOptions) *Notebook {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Notebook{
		store:  store,
		owner:  opts.Owner,
		now:    now,
		colors: markup.TagColors{},
	}
}

// OpenNotebook returns a notebook loaded from store.
func OpenNotebook(ctx context.Context, store Store, opts NotebookOptions) (*Notebook, error) {
	nb := NewNotebook(store, opts)
	if err := nb.Refresh(ctx); err != nil {
		return nil, err
	}
	return nb, nil
}

// Owner returns the notebook's owner.
func (nb *Notebook) Owner() string {
	return nb.owner
}

// Store returns the underlying store.
func (nb *Notebook) Store() Store {
	return nb.store
}

// Now returns the notebook's current time.
func (nb *Notebook) Now() time.Time {
	return nb.now()
}

// Refresh fetches the owner's items and tag colors.
func (nb *Notebook) Refresh(ctx context.Context) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.refreshLocked(ctx)
}

func (nb *Notebook) refreshLocked(ctx context.Context) error {
	items, err := nb.store.ListItems(ctx, nb.owner)
	if err != nil {
		return storeErr("list items", err)
	}
	colors, err := nb.store.CustomTagColors(ctx, nb.owner)
	if err != nil {
		return storeErr("get tag colors", err)
	}
	if colors == nil {
		colors = markup.TagColors{}
	}
	nb.items = items
	nb.colors = colors
	nb.index = NewIDIndex(items)
	return nil
}

// Items returns the cached items, newest first.
func (nb *Notebook) Items() []Item {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return slices.Clone(nb.items)
}

// Filtered returns the cached items selected by f.
func (nb *Notebook) Filtered(f Filter) []Item {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return f.Apply(nb.items)
}

// Colors returns a copy of the owner's custom tag colors.
func (nb *Notebook) Colors() markup.TagColors {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return maps.Clone(nb.colors)
}

// AllTags returns every tag in the cached items, sorted.
func (nb *Notebook) AllTags() []string {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return AllTags(nb.items)
}

// IDIndex returns an index over the cached item IDs.
func (nb *Notebook) IDIndex() IDIndex {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.index
}

// Item returns the cached item whose ID starts with idOrPrefix.
func (nb *Notebook) Item(idOrPrefix string) (Item, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.lookupLocked(idOrPrefix)
}

func (nb *Notebook) lookupLocked(idOrPrefix string) (Item, error) {
	id, err := nb.index.Resolve(idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	for _, it := range nb.items {
		if strings.EqualFold(it.ID, id) {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, idOrPrefix)
}

// Render renders it with the owner's colors at the current time.
func (nb *Notebook) Render(it Item, target string) Rendering {
	return Render(it, RenderOptions{Target: target, Colors: nb.Colors(), Now: nb.now()})
}

// Add parses raw input and stores it as a new item.
func (nb *Notebook) Add(ctx context.Context, raw string) (Item, error) {
	if internalstrings.IsBlank(raw) {
		return Item{}, ErrEmptyText
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	now := nb.now()
	parsed := Parse(raw, ParseOptions{Now: now})
	id, err := nb.store.InsertItem(ctx, nb.owner, parsed)
	if err != nil {
		return Item{}, storeErr("insert item", err)
	}
	return nb.afterWriteLocked(ctx, id, parsed.Item(id, now))
}

// Edit re-parses an existing item from raw input. Sub-notes whose text is
// unchanged keep their timestamps.
func (nb *Notebook) Edit(ctx context.Context, idOrPrefix, raw string) (Item, error) {
	if internalstrings.IsBlank(raw) {
		return Item{}, ErrEmptyText
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	prev, err := nb.lookupLocked(idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	parsed := Parse(raw, ParseOptions{Previous: &prev, Now: nb.now()})
	update := ReplaceWith(parsed)
	if err := nb.store.UpdateItem(ctx, prev.ID, update); err != nil {
		return Item{}, storeErr("update item", err)
	}
	return nb.afterWriteLocked(ctx, prev.ID, update.Apply(prev))
}

// Toggle flips a todo between incomplete and completed. Todos with subtasks
// are rejected with ErrStatusDerived and left unchanged.
func (nb *Notebook) Toggle(ctx context.Context, idOrPrefix string) (Item, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	it, err := nb.lookupLocked(idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	if !it.IsTodo() {
		return it, fmt.Errorf("%w: %s", ErrNotTodo, it.ID)
	}
	if it.HasSubtasks() {
		return it, fmt.Errorf("%w: %s", ErrStatusDerived, it.ID)
	}

	status := it.Status.Toggled()
	update := Update{Status: &status}
	if err := nb.store.UpdateItem(ctx, it.ID, update); err != nil {
		return Item{}, storeErr("update item", err)
	}
	return nb.afterWriteLocked(ctx, it.ID, update.Apply(it))
}

// ToggleSubtask flips one subtask and recomputes the todo's status.
func (nb *Notebook) ToggleSubtask(ctx context.Context, idOrPrefix string, index int) (Item, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	it, err := nb.lookupLocked(idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	if !it.IsTodo() {
		return it, fmt.Errorf("%w: %s", ErrNotTodo, it.ID)
	}
	if index < 0 || index >= len(it.Subtasks) {
		return it, fmt.Errorf("%w: %d of %d", ErrSubtaskNotFound, index+1, len(it.Subtasks))
	}

	subtasks := slices.Clone(it.Subtasks)
	subtasks[index].Completed = !subtasks[index].Completed
	status := DerivedStatus(subtasks)
	update := Update{Subtasks: &subtasks, Status: &status}
	if err := nb.store.UpdateItem(ctx, it.ID, update); err != nil {
		return Item{}, storeErr("update item", err)
	}
	return nb.afterWriteLocked(ctx, it.ID, update.Apply(it))
}

// Delete removes an item.
func (nb *Notebook) Delete(ctx context.Context, idOrPrefix string) (Item, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	it, err := nb.lookupLocked(idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	if err := nb.store.DeleteItem(ctx, it.ID); err != nil {
		return Item{}, storeErr("delete item", err)
	}
	if err := nb.refreshLocked(ctx); err != nil {
		return it, err
	}
	return it, nil
}

// SetTagColor assigns a palette color to a tag name for the owner.
func (nb *Notebook) SetTagColor(ctx context.Context, tag string, color int) error {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return fmt.Errorf("%w: tag name is empty", ErrInvalidColor)
	}
	if err := markup.ValidateColorIndex(color); err != nil {
		return err
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.writeColorsLocked(ctx, nb.colors.With(tag, color))
}

// ResetTagColor drops a tag's custom color so it falls back to the default.
func (nb *Notebook) ResetTagColor(ctx context.Context, tag string) error {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")

	nb.mu.Lock()
	defer nb.mu.Unlock()
	if _, ok := nb.colors[tag]; !ok {
		return nil
	}
	next := maps.Clone(nb.colors)
	delete(next, tag)
	return nb.writeColorsLocked(ctx, next)
}

func (nb *Notebook) writeColorsLocked(ctx context.Context, colors markup.TagColors) error {
	if err := nb.store.SetCustomTagColors(ctx, nb.owner, colors); err != nil {
		return storeErr("set tag colors", err)
	}
	return nb.refreshLocked(ctx)
}

// afterWriteLocked refetches and returns the stored version of id. When the
// refetch fails, fallback is returned with the error.
func (nb *Notebook) afterWriteLocked(ctx context.Context, id string, fallback Item) (Item, error) {
	if err := nb.refreshLocked(ctx); err != nil {
		return fallback, err
	}
	for _, it := range nb.items {
		if it.ID == id {
			return it, nil
		}
	}
	return fallback, nil
}
