package item

import (
	"time"

	"github.com/amonks/mindcache/markup"
)

// Item is a stored notebook entry.
type Item struct {
	// ID is assigned by the store.
	ID string `json:"id" yaml:"id"`

	// Text is the display text with the todo bracket removed.
	// For todos it is the first input line only.
	Text string `json:"text" yaml:"text"`

	Type   Type   `json:"type" yaml:"type"`
	Status Status `json:"status" yaml:"status"`

	// Tags are the tag names found in Text, subtasks and sub-notes, in order.
	Tags []string `json:"tags" yaml:"tags"`

	// DueDate is the first @date of Text as YYYY-MM-DD, or empty.
	DueDate string `json:"due_date,omitempty" yaml:"due_date,omitempty"`

	// Timestamp is set once when the item is created.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	Subtasks []Subtask `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Notes    []SubNote `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Subtask is a nested checkbox under a todo.
type Subtask struct {
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// SubNote is one entry of a todo's update log.
type SubNote struct {
	Text string `json:"text" yaml:"text"`
	// Timestamp is kept across edits as long as Text is unchanged.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Date is the first @date of Text as YYYY-MM-DD, or empty.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Parsed is the result of parsing raw input, before the store assigns an ID
// and creation time.
type Parsed struct {
	Text     string
	Type     Type
	Status   Status
	Tags     []string
	DueDate  string
	Subtasks []Subtask
	Notes    []SubNote
}

// Item builds a stored item from p.
func (p Parsed) Item(id string, timestamp time.Time) Item {
	return Item{
		ID:        id,
		Text:      p.Text,
		Type:      p.Type,
		Status:    p.Status,
		Tags:      p.Tags,
		DueDate:   p.DueDate,
		Timestamp: timestamp,
		Subtasks:  p.Subtasks,
		Notes:     p.Notes,
	}
}

// IsTodo reports whether the item is a todo.
func (it Item) IsTodo() bool {
	return it.Type == TypeTodo
}

// HasSubtasks reports whether the todo's status is derived from subtasks.
func (it Item) HasSubtasks() bool {
	return len(it.Subtasks) > 0
}

// IsOverdue reports whether the item has a due date before now's day.
func (it Item) IsOverdue(now time.Time) bool {
	return it.DueDate != "" && markup.IsOverdue(it.DueDate, now)
}

// DerivedStatus returns the status implied by subtasks: completed when every
// subtask is completed, incomplete otherwise.
func DerivedStatus(subtasks []Subtask) Status {
	for _, s := range subtasks {
		if !s.Completed {
			return StatusIncomplete
		}
	}
	return StatusCompleted
}
