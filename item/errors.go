package item

import (
	"errors"
	"fmt"

	"github.com/amonks/mindcache/markup"
)

var (
	// ErrEmptyText indicates the input has no content.
	ErrEmptyText = errors.New("item text cannot be empty")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrAmbiguousItemIDPrefix indicates an ID prefix matches multiple items.
	ErrAmbiguousItemIDPrefix = errors.New("ambiguous item ID prefix")

	// ErrNotTodo indicates a completion operation on a note.
	ErrNotTodo = errors.New("item is not a todo")

	// ErrStatusDerived indicates a direct toggle of a todo whose status comes
	// from its subtasks.
	ErrStatusDerived = errors.New("todo status is derived from its subtasks")

	// ErrSubtaskNotFound indicates a subtask index out of range.
	ErrSubtaskNotFound = errors.New("subtask not found")

	// ErrInvalidColor indicates a tag color outside the palette.
	ErrInvalidColor = markup.ErrInvalidColor

	// ErrInvalidFilter indicates an unknown filter or sort value.
	ErrInvalidFilter = errors.New("invalid filter")
)

// StoreError reports a failure at the persistence boundary. The operation
// is not retried.
type StoreError struct {
	// Op names the store operation, such as "list items".
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr wraps err as a *StoreError unless it already is one.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err came from the store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
