package item

import (
	"context"

	"github.com/amonks/mindcache/markup"
)

// Store persists items and tag colors for owners.
//
// Implementations report failures as plain errors; the Notebook wraps them
// in *StoreError. Missing items are reported with ErrItemNotFound.
type Store interface {
	// ListItems returns the owner's items, newest first.
	ListItems(ctx context.Context, owner string) ([]Item, error)

	// InsertItem stores a parsed item and returns its new ID.
	InsertItem(ctx context.Context, owner string, parsed Parsed) (string, error)

	// UpdateItem applies a partial update.
	UpdateItem(ctx context.Context, id string, update Update) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id string) error

	// CustomTagColors returns the owner's tag color overrides.
	CustomTagColors(ctx context.Context, owner string) (markup.TagColors, error)

	// SetCustomTagColors replaces the owner's tag color overrides.
	SetCustomTagColors(ctx context.Context, owner string, colors markup.TagColors) error
}

// Update holds the fields to change on an item.
// Nil pointers mean "don't update".
type Update struct {
	Text   *string
	Type   *Type
	Status *Status
	Tags   *[]string
	// DueDate pointing at "" clears the due date.
	DueDate  *string
	Subtasks *[]Subtask
	Notes    *[]SubNote
}

// Apply returns it with the update's fields set.
func (u Update) Apply(it Item) Item {
	if u.Text != nil {
		it.Text = *u.Text
	}
	if u.Type != nil {
		it.Type = *u.Type
	}
	if u.Status != nil {
		it.Status = *u.Status
	}
	if u.Tags != nil {
		it.Tags = *u.Tags
	}
	if u.DueDate != nil {
		it.DueDate = *u.DueDate
	}
	if u.Subtasks != nil {
		it.Subtasks = *u.Subtasks
	}
	if u.Notes != nil {
		it.Notes = *u.Notes
	}
	return it
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u == Update{}
}

// ReplaceWith builds an update that overwrites every parsed field.
func ReplaceWith(p Parsed) Update {
	tags := p.Tags
	subtasks := p.Subtasks
	notes := p.Notes
	return Update{
		Text:     &p.Text,
		Type:     &p.Type,
		Status:   &p.Status,
		Tags:     &tags,
		DueDate:  &p.DueDate,
		Subtasks: &subtasks,
		Notes:    &notes,
	}
}

// Event signals that an owner's items may have changed. It carries no
// diff; receivers list the items again.
type Event struct {
	Owner string
}

// Watcher is implemented by stores that can push change notifications.
type Watcher interface {
	// Watch delivers an Event after the owner's items change, including
	// changes made by other processes. The channel is closed when ctx is
	// done or the watch fails.
	Watch(ctx context.Context, owner string) (<-chan Event, error)
}
