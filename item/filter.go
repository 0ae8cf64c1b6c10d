package item

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/internal/validation"
	"github.com/amonks/mindcache/markup"
)

// TypeFilter restricts a list to notes or todos.
type TypeFilter string

const (
	TypeFilterAll   TypeFilter = "all"
	TypeFilterNotes TypeFilter = "notes"
	TypeFilterTodos TypeFilter = "todos"
)

// StatusFilter restricts a list by completion.
type StatusFilter string

const (
	StatusFilterAll        StatusFilter = "all"
	StatusFilterCompleted  StatusFilter = "completed"
	StatusFilterIncomplete StatusFilter = "incomplete"
)

// SortOrder orders a list.
type SortOrder string

const (
	// SortRecent puts the newest items first.
	SortRecent SortOrder = "recent"
	// SortDue puts the earliest due date first and undated items last.
	SortDue SortOrder = "due"
)

var (
	errInvalidTypeFilter   = fmt.Errorf("%w: type", ErrInvalidFilter)
	errInvalidStatusFilter = fmt.Errorf("%w: status", ErrInvalidFilter)
	errInvalidSortOrder    = fmt.Errorf("%w: sort", ErrInvalidFilter)
)

// ValidTypeFilters returns the accepted type filters.
func ValidTypeFilters() []TypeFilter {
	return []TypeFilter{TypeFilterAll, TypeFilterNotes, TypeFilterTodos}
}

// ValidStatusFilters returns the accepted status filters.
func ValidStatusFilters() []StatusFilter {
	return []StatusFilter{StatusFilterAll, StatusFilterCompleted, StatusFilterIncomplete}
}

// ValidSortOrders returns the accepted sort orders.
func ValidSortOrders() []SortOrder {
	return []SortOrder{SortRecent, SortDue}
}

// Filter selects and orders items. The zero value keeps everything, newest
// first.
type Filter struct {
	Type   TypeFilter
	Tag    string
	Status StatusFilter
	Sort   SortOrder
}

// ParseTypeFilter reads a type filter, accepting singular forms.
func ParseTypeFilter(value string) (TypeFilter, error) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "", "all":
		return TypeFilterAll, nil
	case "notes", "note":
		return TypeFilterNotes, nil
	case "todos", "todo":
		return TypeFilterTodos, nil
	}
	return "", validation.FormatInvalidValueError(errInvalidTypeFilter, TypeFilter(value), ValidTypeFilters())
}

// ParseStatusFilter reads a status filter.
func ParseStatusFilter(value string) (StatusFilter, error) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "", "all":
		return StatusFilterAll, nil
	case "completed", "done":
		return StatusFilterCompleted, nil
	case "incomplete", "open":
		return StatusFilterIncomplete, nil
	}
	return "", validation.FormatInvalidValueError(errInvalidStatusFilter, StatusFilter(value), ValidStatusFilters())
}

// ParseSortOrder reads a sort order. "dueDate" is accepted for "due".
func ParseSortOrder(value string) (SortOrder, error) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "", "recent":
		return SortRecent, nil
	case "due", "duedate", "due-date":
		return SortDue, nil
	}
	return "", validation.FormatInvalidValueError(errInvalidSortOrder, SortOrder(value), ValidSortOrders())
}

// Matches reports whether it passes the filter's type, tag and status checks.
func (f Filter) Matches(it Item) bool {
	switch f.Type {
	case TypeFilterNotes:
		if it.Type != TypeNote {
			return false
		}
	case TypeFilterTodos:
		if it.Type != TypeTodo {
			return false
		}
	}
	if f.Tag != "" && !slices.Contains(it.Tags, f.Tag) {
		return false
	}
	switch f.Status {
	case StatusFilterCompleted:
		return it.Status == StatusCompleted
	case StatusFilterIncomplete:
		return it.Status == StatusIncomplete
	}
	return true
}

// Apply returns the matching items in the filter's order. The input slice
// is not modified.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}

	if f.Sort == SortDue {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			switch {
			case a == "" || b == "":
				return a != "" && b == ""
			default:
				return markup.CompareDates(a, b) < 0
			}
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// IsActive reports whether the filter hides any items.
func (f Filter) IsActive() bool {
	return (f.Type != "" && f.Type != TypeFilterAll) ||
		f.Tag != "" ||
		(f.Status != "" && f.Status != StatusFilterAll)
}

// AllTags returns every tag used by items, sorted and without duplicates.
func AllTags(items []Item) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, it := range items {
		for _, tag := range it.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// tagFragment returns the start of the partial tag being typed at cursor: the
// byte offset just after the last '#' before cursor. It reports false when
// there is no '#' or the text after it already contains a space.
func tagFragment(input string, cursor int) (start int, fragment string, ok bool) {
	if cursor < 0 || cursor > len(input) {
		cursor = len(input)
	}
	before := input[:cursor]
	hash := strings.LastIndexByte(before, '#')
	if hash < 0 {
		return 0, "", false
	}
	fragment = before[hash+1:]
	if strings.Contains(fragment, " ") {
		return 0, "", false
	}
	return hash + 1, fragment, true
}

// TagSuggestions returns the known tags that complete the partial tag
// before cursor. Right after a bare '#' every tag is suggested; otherwise
// tags are matched case-insensitively by prefix.
func TagSuggestions(input string, cursor int, tags []string) []string {
	_, fragment, ok := tagFragment(input, cursor)
	if !ok {
		return nil
	}
	if fragment == "" {
		return slices.Clone(tags)
	}
	lower := strings.ToLower(fragment)
	var out []string
	for _, tag := range tags {
		if strings.HasPrefix(strings.ToLower(tag), lower) {
			out = append(out, tag)
		}
	}
	return out
}

// InsertTag replaces the partial tag before cursor with tag and a trailing
// space. It returns the new input and the cursor position after the space.
// Input without a partial tag is returned unchanged.
func InsertTag(input string, cursor int, tag string) (string, int) {
	if cursor < 0 || cursor > len(input) {
		cursor = len(input)
	}
	start, _, ok := tagFragment(input, cursor)
	if !ok {
		return input, cursor
	}
	next := input[:start] + tag + " " + input[cursor:]
	return next, start + len(tag) + 1
}
