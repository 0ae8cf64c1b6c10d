package notestui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/store"
)

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, texts ...string) model {
	t.Helper()
	ctx := context.Background()

	tick := testNow
	clock := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	s, err := store.OpenFile(t.TempDir(), store.FileOptions{Now: clock})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	nb, err := item.OpenNotebook(ctx, s, item.NotebookOptions{Owner: "ada", Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	for _, text := range texts {
		if _, err := nb.Add(ctx, text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}

	m := newModel(ctx, nb, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(model)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends a key and runs the command it returns, feeding the result
// back into the model.
func press(t *testing.T, m model, key string) model {
	t.Helper()
	updated, cmd := m.Update(keyMsg(key))
	m = updated.(model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg.(type) {
	case writeDoneMsg, itemsLoadedMsg:
		updated, _ = m.Update(msg)
		return updated.(model)
	}
	return m
}

func TestModel_ListsNewestFirst(t *testing.T) {
	m := newTestModel(t, "first note", "[] second todo")

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if got := items[0].(listEntry).item.Text; got != "second todo" {
		t.Fatalf("expected newest first, got %q", got)
	}
	if !strings.HasPrefix(items[0].(listEntry).rendering.Target, "list-") {
		t.Fatalf("expected list target, got %q", items[0].(listEntry).rendering.Target)
	}
}

func TestModel_AddThroughComposer(t *testing.T) {
	m := newTestModel(t, "#errand old")

	m = press(t, m, "a")
	if m.mode != modeCompose {
		t.Fatal("expected compose mode after a")
	}
	m.composer.input.SetValue("[] buy milk #er")
	m = press(t, m, "tab")
	if got := m.composer.Value(); got != "[] buy milk #errand " {
		t.Fatalf("expected completed tag, got %q", got)
	}

	m = press(t, m, "ctrl+s")
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after save, status %q", m.status)
	}
	it, ok := m.currentItem()
	if !ok || it.Text != "buy milk #errand" || !it.IsTodo() {
		t.Fatalf("expected new todo selected, got %+v", it)
	}
}

func TestModel_SaveEmptyKeepsComposer(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "a")
	m = press(t, m, "ctrl+s")

	if m.mode != modeCompose {
		t.Fatal("expected composer to stay open")
	}
	if m.statusLevel != statusError {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestModel_ToggleAndSubtasks(t *testing.T) {
	m := newTestModel(t, "[] pack\n  [] socks\n  [] shoes")

	m = press(t, m, "1")
	it, _ := m.currentItem()
	if !it.Subtasks[0].Completed || it.Status != item.StatusIncomplete {
		t.Fatalf("expected first subtask done and item incomplete, got %+v", it)
	}

	m = press(t, m, "2")
	it, _ = m.currentItem()
	if it.Status != item.StatusCompleted {
		t.Fatalf("expected derived completed status, got %s", it.Status)
	}
}

func TestModel_ToggleTodo(t *testing.T) {
	m := newTestModel(t, "[] call mom")

	m = press(t, m, " ")

	it, _ := m.currentItem()
	if it.Status != item.StatusCompleted {
		t.Fatalf("expected completed, got %s", it.Status)
	}
}

func TestModel_DeleteConfirms(t *testing.T) {
	m := newTestModel(t, "keep", "drop")

	m = press(t, m, "d")
	if m.modalKind != modalDelete {
		t.Fatal("expected delete confirmation")
	}
	m = press(t, m, "n")
	if len(m.list.Items()) != 2 {
		t.Fatal("expected cancel to keep the item")
	}

	m = press(t, m, "d")
	m = press(t, m, "y")
	if len(m.list.Items()) != 1 {
		t.Fatalf("expected one item after delete, got %d", len(m.list.Items()))
	}
	if it, _ := m.currentItem(); it.Text != "keep" {
		t.Fatalf("expected remaining item keep, got %q", it.Text)
	}
}

func TestModel_TagPicker(t *testing.T) {
	m := newTestModel(t, "#work and #home")

	m = press(t, m, "t")
	if _, tag, open := m.picker.Open(); !open || tag != "work" {
		t.Fatalf("expected picker open on work, got %q %v", tag, open)
	}
	m = press(t, m, "t")
	if _, tag, _ := m.picker.Open(); tag != "home" {
		t.Fatalf("expected picker on home, got %q", tag)
	}

	m = press(t, m, "3")
	if _, _, open := m.picker.Open(); open {
		t.Fatal("expected picker closed after choosing")
	}
	if got := m.nb.Colors()["home"]; got != 3 {
		t.Fatalf("expected home color 3, got %d", got)
	}
}

func TestModel_TagPickerCyclesClosed(t *testing.T) {
	m := newTestModel(t, "just #one")

	m = press(t, m, "t")
	m = press(t, m, "t")

	if _, _, open := m.picker.Open(); open {
		t.Fatal("expected picker to close after the last tag")
	}
}

func TestModel_FilterAndSort(t *testing.T) {
	m := newTestModel(t, "a note", "[] a todo @11/1", "[] sooner @10/20")

	m = press(t, m, "f")
	if m.filter.Type != item.TypeFilterTodos || len(m.list.Items()) != 2 {
		t.Fatalf("expected 2 todos, got %d with %s", len(m.list.Items()), m.filter.Type)
	}

	m = press(t, m, "s")
	first := m.list.Items()[0].(listEntry).item
	if m.filter.Sort != item.SortDue || first.Text != "sooner @10/20" {
		t.Fatalf("expected due sort with sooner first, got %q", first.Text)
	}

	m = press(t, m, "f")
	if m.filter.Type != item.TypeFilterNotes || len(m.list.Items()) != 1 {
		t.Fatalf("expected 1 note, got %d", len(m.list.Items()))
	}
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, "older", "newer")

	m = press(t, m, "j")
	if it, _ := m.currentItem(); it.Text != "older" {
		t.Fatalf("expected older selected, got %q", it.Text)
	}
	if m.selectedID == "" {
		t.Fatal("expected selected id to follow the cursor")
	}
	m = press(t, m, "k")
	if it, _ := m.currentItem(); it.Text != "newer" {
		t.Fatalf("expected newer selected, got %q", it.Text)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "hello #world")

	view := m.View()
	for _, want := range []string{"mindcache", "hello", "#world", "a add"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModel_StoreEventRefreshes(t *testing.T) {
	m := newTestModel(t)
	events := make(chan item.Event, 1)
	m.events = events

	if _, err := m.nb.Store().InsertItem(context.Background(), "ada", item.Parse("from elsewhere", item.ParseOptions{Now: testNow})); err != nil {
		t.Fatalf("insert: %v", err)
	}
	events <- item.Event{Owner: "ada"}

	msg := m.waitForEventCmd()()
	if _, ok := msg.(storeChangedMsg); !ok {
		t.Fatalf("expected storeChangedMsg, got %T", msg)
	}
	updated, _ := m.Update(m.refreshCmd()())
	m = updated.(model)
	if len(m.list.Items()) != 1 {
		t.Fatalf("expected refreshed list with 1 item, got %d", len(m.list.Items()))
	}
}
