package item

import (
	"strings"
	"time"

	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/markup"
)

// ParseOptions configures Parse.
type ParseOptions struct {
	// Previous is the version of the item being edited, if any. Only its
	// sub-note timestamps are consulted.
	Previous *Item

	// Now stamps new sub-notes and fills in missing date years.
	Now time.Time
}

// todo markers accepted at the start of the first line.
var todoMarkers = []struct {
	token     string
	completed bool
}{
	{token: "[]", completed: false},
	{token: "[x]", completed: true},
	{token: "[X]", completed: true},
}

// checkbox markers accepted at the start of a subtask line.
var subtaskMarkers = []struct {
	token     string
	completed bool
}{
	{token: "[ ]", completed: false},
	{token: "[]", completed: false},
	{token: "[x]", completed: true},
	{token: "[X]", completed: true},
}

const subNoteMarker = "- "

// Parse turns raw input into an item. It never fails: input that is not a
// todo is a note, and lines of a todo that are neither subtasks nor
// sub-notes are dropped.
func Parse(input string, opts ParseOptions) Parsed {
	trimmed := internalstrings.TrimSpace(internalstrings.NormalizeNewlines(input))

	completed, isTodo := todoMarker(trimmed)
	if !isTodo {
		return Parsed{
			Text:    trimmed,
			Type:    TypeNote,
			Status:  StatusNone,
			Tags:    collectTags(trimmed, nil, nil),
			DueDate: dueDate(trimmed, opts.Now),
		}
	}

	lines := strings.Split(trimmed, "\n")
	text := stripTodoMarker(lines[0])

	var subtasks []Subtask
	var notes []SubNote
	carry := newTimestampCarry(opts.Previous)
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if subtask, ok := parseSubtask(line); ok {
			subtasks = append(subtasks, subtask)
			continue
		}
		if rest, ok := strings.CutPrefix(line, subNoteMarker); ok {
			noteText := strings.TrimSpace(rest)
			notes = append(notes, SubNote{
				Text:      noteText,
				Timestamp: carry.timestamp(noteText, opts.Now),
				Date:      dueDate(noteText, opts.Now),
			})
		}
	}

	status := StatusIncomplete
	if completed {
		status = StatusCompleted
	}
	if len(subtasks) > 0 {
		status = DerivedStatus(subtasks)
	}

	return Parsed{
		Text:     text,
		Type:     TypeTodo,
		Status:   status,
		Tags:     collectTags(text, subtasks, notes),
		DueDate:  dueDate(text, opts.Now),
		Subtasks: subtasks,
		Notes:    notes,
	}
}

func todoMarker(text string) (completed, ok bool) {
	for _, m := range todoMarkers {
		if strings.HasPrefix(text, m.token) {
			return m.completed, true
		}
	}
	return false, false
}

func stripTodoMarker(line string) string {
	for _, m := range todoMarkers {
		if rest, ok := strings.CutPrefix(line, m.token); ok {
			rest = strings.TrimPrefix(rest, " ")
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(line)
}

func parseSubtask(line string) (Subtask, bool) {
	for _, m := range subtaskMarkers {
		rest, ok := strings.CutPrefix(line, m.token)
		if !ok {
			continue
		}
		text := strings.TrimSpace(rest)
		if text == "" {
			return Subtask{}, false
		}
		return Subtask{Text: text, Completed: m.completed}, true
	}
	return Subtask{}, false
}

func collectTags(text string, subtasks []Subtask, notes []SubNote) []string {
	tags := append([]string{}, markup.Tags(text)...)
	for _, s := range subtasks {
		tags = append(tags, markup.Tags(s.Text)...)
	}
	for _, n := range notes {
		tags = append(tags, markup.Tags(n.Text)...)
	}
	return tags
}

func dueDate(text string, now time.Time) string {
	token, ok := markup.FirstDate(text)
	if !ok {
		return ""
	}
	return markup.NormalizeDate(token, now)
}

// timestampCarry hands out previous sub-note timestamps by text. Each previous
// sub-note can be claimed once, so repeated texts keep their own timestamps.
type timestampCarry struct {
	previous []SubNote
	claimed  []bool
}

func newTimestampCarry(previous *Item) *timestampCarry {
	if previous == nil {
		return &timestampCarry{}
	}
	return &timestampCarry{
		previous: previous.Notes,
		claimed:  make([]bool, len(previous.Notes)),
	}
}

func (c *timestampCarry) timestamp(text string, now time.Time) time.Time {
	for i, note := range c.previous {
		if c.claimed[i] || note.Text != text {
			continue
		}
		c.claimed[i] = true
		return note.Timestamp
	}
	return now
}

// EditableText rebuilds the raw input an item was parsed from, for
// editing. Parsing the result yields the same text, type, status, tags,
// due date and subtasks.
func EditableText(it Item) string {
	if !it.IsTodo() {
		return it.Text
	}

	var b strings.Builder
	if it.Status == StatusCompleted {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[] ")
	}
	b.WriteString(it.Text)
	for _, s := range it.Subtasks {
		if s.Completed {
			b.WriteString("\n  [x] ")
		} else {
			b.WriteString("\n  [ ] ")
		}
		b.WriteString(s.Text)
	}
	for _, n := range it.Notes {
		b.WriteString("\n  ")
		b.WriteString(subNoteMarker)
		b.WriteString(n.Text)
	}
	return b.String()
}
