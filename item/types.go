// Package item models notebook entries: free-form notes and todos with
// optional subtasks and a timestamped update log.
//
// Raw input is turned into an item by Parse, displayed with Render, and
// persisted through a Store. Notebook ties these together for callers:
//   - Add, Edit, Delete for the entry lifecycle
//   - Toggle, ToggleSubtask for todo completion
//   - SetTagColor for per-owner tag colors
package item

// Type distinguishes notes from todos.
type Type string

const (
	// TypeNote is free-form text without a completion state.
	TypeNote Type = "note"

	// TypeTodo is an entry that can be completed.
	TypeTodo Type = "todo"
)

// ValidTypes returns all valid type values.
func ValidTypes() []Type {
	return []Type{TypeNote, TypeTodo}
}

// IsValid returns true if the type is a known valid value.
func (t Type) IsValid() bool {
	for _, valid := range ValidTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// Status is the completion state of an item.
type Status string

const (
	// StatusNone is the status of every note.
	StatusNone Status = "none"

	// StatusIncomplete marks an open todo.
	StatusIncomplete Status = "incomplete"

	// StatusCompleted marks a finished todo.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNone, StatusIncomplete, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Toggled returns the opposite todo status. StatusNone has no opposite.
func (s Status) Toggled() Status {
	switch s {
	case StatusIncomplete:
		return StatusCompleted
	case StatusCompleted:
		return StatusIncomplete
	default:
		return s
	}
}
