// Package notestui is the interactive terminal view of a notebook.
package notestui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/internal/termview"
	"github.com/amonks/mindcache/item"
)

type mode int

const (
	modeBrowse mode = iota
	modeCompose
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDelete
)

// Options configures Run.
type Options struct {
	// Watcher, when set, triggers a refresh whenever the owner's items change.
	Watcher item.Watcher

	// Color enables styled item text.
	Color bool
}

type model struct {
	ctx     context.Context
	nb      *item.Notebook
	watcher item.Watcher
	events  <-chan item.Event
	color   bool

	width  int
	height int
	mode   mode

	list     list.Model
	detail   viewport.Model
	composer composerModel
	view     *termview.View

	filter     item.Filter
	selectedID string
	picker     item.TagColorPicker
	pickerAt   int

	modalKind   modalKind
	modalTarget string

	status      string
	statusLevel statusLevel
}

// Run shows the notebook until the user quits or ctx is done.
func Run(ctx context.Context, nb *item.Notebook, opts Options) error {
	if nb == nil {
		return fmt.Errorf("notebook is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, nb, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, nb *item.Notebook, opts Options) model {
	m := model{
		ctx:      ctx,
		nb:       nb,
		watcher:  opts.Watcher,
		color:    opts.Color,
		detail:   viewport.New(0, 0),
		composer: newComposerModel(),
		filter:   item.Filter{Type: item.TypeFilterAll, Status: item.StatusFilterAll, Sort: item.SortRecent},
		pickerAt: -1,
	}
	m.view = m.newView(0)
	m.list = list.New(nil, m.delegate(), 0, 0)
	m.list.Title = "Items"
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(false)
	m.list.SetShowHelp(false)
	m.list.SetShowPagination(false)
	m.applyItems()
	return m
}

func (m model) newView(width int) *termview.View {
	return termview.New(os.Stdout, termview.Options{Width: width, Color: m.color, Now: m.nb.Now})
}

func (m model) delegate() listDelegate {
	return listDelegate{view: m.newView(0), plain: termview.New(os.Stdout, termview.Options{})}
}

func (m model) Init() tea.Cmd {
	if m.watcher == nil {
		return m.refreshCmd()
	}
	return tea.Batch(m.refreshCmd(), m.watchCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modalKind != modalNone {
		return m.updateModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case itemsLoadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Load failed: %v", msg.err), statusError)
		}
		m.applyItems()
		return m, nil
	case writeDoneMsg:
		return m.handleWriteDone(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Watch failed: %v", msg.err), statusError)
			return m, nil
		}
		m.events = msg.events
		return m, m.waitForEventCmd()
	case storeChangedMsg:
		return m, tea.Batch(m.refreshCmd(), m.waitForEventCmd())
	case tea.KeyMsg:
		if m.mode == modeCompose {
			return m.updateComposer(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == modeCompose {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading notebook..."
	}
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)

	right := m.detail.View()
	if m.mode == modeCompose {
		right = m.composer.View()
	}
	listPane := renderPane(m.list.View(), leftWidth, contentHeight, m.mode == modeBrowse)
	rightPane := renderPane(right, rightWidth, contentHeight, m.mode == modeCompose)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, rightPane)

	view := strings.Join([]string{m.renderHeader(), content, m.renderStatusLine(), m.renderHelpLine()}, "\n")
	if m.modalKind != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if _, _, open := m.picker.Open(); open {
		if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
			return m.chooseColor(n)
		}
		if key == "esc" {
			m.closePicker()
			m.refreshDetail()
			return m, nil
		}
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.modalKind = modalHelp
		return m, nil
	case "up", "k":
		m.moveSelection(-1)
		return m, nil
	case "down", "j":
		m.moveSelection(1)
		return m, nil
	case "home", "g":
		m.moveSelection(-len(m.list.Items()))
		return m, nil
	case "end", "G":
		m.moveSelection(len(m.list.Items()))
		return m, nil
	case "a":
		m.startCompose("", "")
		return m, nil
	case "e":
		if it, ok := m.currentItem(); ok {
			m.startCompose(it.ID, item.EditableText(it))
		}
		return m, nil
	case " ":
		if it, ok := m.currentItem(); ok {
			return m, m.toggleCmd(it.ID)
		}
		return m, nil
	case "d":
		if it, ok := m.currentItem(); ok {
			m.modalKind = modalDelete
			m.modalTarget = it.ID
		}
		return m, nil
	case "t":
		m.cyclePicker()
		return m, nil
	case "f":
		m.filter.Type = nextTypeFilter(m.filter.Type)
		m.applyItems()
		m.setStatus("Showing "+string(m.filter.Type), statusInfo)
		return m, nil
	case "s":
		m.filter.Sort = nextSortOrder(m.filter.Sort)
		m.applyItems()
		m.setStatus("Sorted by "+string(m.filter.Sort), statusInfo)
		return m, nil
	case "r":
		return m, m.refreshCmd()
	}

	if n, err := strconv.Atoi(key); err == nil && len(key) == 1 && n >= 1 {
		if it, ok := m.currentItem(); ok {
			return m, m.toggleSubtaskCmd(it.ID, n-1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composer.Stop()
		m.mode = modeBrowse
		m.setStatus("Discarded", statusInfo)
		return m, nil
	case "ctrl+s":
		return m, m.saveCmd(m.composer.editingID, m.composer.Value())
	case "tab":
		if m.composer.Complete() {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
			m.resize()
		}
		return m, nil
	}

	if m.modalKind == modalHelp {
		switch key.String() {
		case "?", "esc", "q":
			m.modalKind = modalNone
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "y", "enter":
		id := m.modalTarget
		m.modalKind = modalNone
		m.modalTarget = ""
		return m, m.deleteCmd(id)
	case "n", "esc":
		m.modalKind = modalNone
		m.modalTarget = ""
	}
	return m, nil
}

func (m model) handleWriteDone(msg writeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(describeError(msg.err), statusError)
		m.applyItems()
		return m, nil
	}
	if m.mode == modeCompose && msg.fromComposer {
		m.composer.Stop()
		m.mode = modeBrowse
	}
	if msg.selectID != "" {
		m.selectedID = msg.selectID
	}
	m.applyItems()
	m.setStatus(msg.status, statusInfo)
	return m, nil
}

func describeError(err error) string {
	var storeErr *item.StoreError
	if errors.As(err, &storeErr) {
		return fmt.Sprintf("Store error: %v", storeErr)
	}
	return internalstrings.TrimSpace(err.Error())
}

func (m *model) startCompose(id, text string) {
	m.closePicker()
	m.mode = modeCompose
	m.composer.Start(id, text, m.nb.AllTags())
}

func (m *model) cyclePicker() {
	it, ok := m.currentItem()
	if !ok {
		return
	}
	occurrences := m.nb.Render(it, detailTarget(it.ID)).TagOccurrences()
	if len(occurrences) == 0 {
		m.setStatus("No tags on this item", statusError)
		return
	}
	next := m.pickerAt + 1
	if next >= len(occurrences) {
		m.closePicker()
		m.refreshDetail()
		return
	}
	m.picker.Toggle(occurrences[next])
	m.pickerAt = next
	m.refreshDetail()
}

func (m *model) closePicker() {
	m.picker.Close()
	m.pickerAt = -1
}

func (m model) chooseColor(color int) (tea.Model, tea.Cmd) {
	choice, ok := m.picker.Choose(color)
	m.pickerAt = -1
	if !ok {
		return m, nil
	}
	return m, m.setColorCmd(choice)
}

func (m *model) moveSelection(delta int) {
	items := m.list.Items()
	if len(items) == 0 {
		return
	}
	next := m.list.Index() + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	m.list.Select(next)
	if entry, ok := items[next].(listEntry); ok && entry.item.ID != m.selectedID {
		m.selectedID = entry.item.ID
		m.closePicker()
	}
	m.refreshDetail()
}

// applyItems rebuilds the list from the notebook, keeping the selection
// when the selected item is still shown.
func (m *model) applyItems() {
	items := m.nb.Filtered(m.filter)
	entries := make([]list.Item, len(items))
	selected := 0
	found := false
	for i, it := range items {
		entries[i] = listEntry{item: it, rendering: m.nb.Render(it, listTarget(it.ID))}
		if it.ID == m.selectedID {
			selected = i
			found = true
		}
	}
	m.list.SetItems(entries)
	if len(entries) > 0 {
		m.list.Select(selected)
		if !found {
			m.selectedID = items[selected].ID
			m.closePicker()
		}
	} else {
		m.selectedID = ""
		m.closePicker()
	}
	m.refreshDetail()
}

func (m model) currentItem() (item.Item, bool) {
	selected := m.list.SelectedItem()
	if selected == nil {
		return item.Item{}, false
	}
	entry, ok := selected.(listEntry)
	return entry.item, ok
}

func (m *model) refreshDetail() {
	it, ok := m.currentItem()
	if !ok {
		m.detail.SetContent(valueMuted.Render("Nothing here yet. Press a to add an item."))
		return
	}
	rendering := m.nb.Render(it, detailTarget(it.ID))
	lines := []string{
		valueMuted.Render(it.ID + "  " + it.Timestamp.Local().Format("Jan 2, 2006 15:04")),
		"",
		m.view.Detail(it, rendering),
	}
	if tags := rendering.TagOccurrences(); len(tags) > 0 {
		lines = append(lines, "")
		names := make([]string, len(tags))
		for i, n := range tags {
			names[i] = m.view.Tag(n.Tag, n.Color)
			if m.picker.IsOpen(n.Key) {
				names[i] = "[" + names[i] + "]"
			}
		}
		lines = append(lines, "tags: "+strings.Join(names, " "))
	}
	if _, tag, open := m.picker.Open(); open {
		lines = append(lines, "", labelStyle.Render("Color for #"+tag+":"), m.view.Swatches())
	}
	m.detail.SetContent(strings.Join(lines, "\n"))
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)
	innerHeight := max(contentHeight-2, 1)
	listWidth := max(leftWidth-4, 1)
	innerDetailWidth := max(rightWidth-4, 1)

	m.list.SetSize(listWidth, innerHeight)
	m.detail.Width = innerDetailWidth
	m.detail.Height = innerHeight
	m.composer.SetSize(innerDetailWidth, max(innerHeight-2, 1))
	m.view = m.newView(innerDetailWidth)
	m.refreshDetail()
}

func splitWidths(width int) (int, int) {
	left := width * 2 / 5
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	return style.Width(max(width-2, 0)).Height(max(height-2, 0)).Render(content)
}

func (m model) renderHeader() string {
	text := fmt.Sprintf(" mindcache  %s  showing %s  sorted by %s  %d items",
		m.nb.Owner(), m.filter.Type, m.filter.Sort, len(m.list.Items()))
	return headerStyle.Width(m.width).Render(text)
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(text)
}

func (m model) renderHelpLine() string {
	return helpStyle.Render(m.helpSummary())
}

func (m model) helpSummary() string {
	if m.mode == modeCompose {
		return "ctrl+s save | esc discard | tab complete tag"
	}
	if _, _, open := m.picker.Open(); open {
		return "0-9 choose color | t next tag | esc close"
	}
	return "a add | e edit | space toggle | 1-9 subtask | d delete | t tag color | f filter | s sort | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) modalView() string {
	if m.modalKind == modalHelp {
		return modalStyle.Render(helpContent())
	}
	content := strings.Join([]string{
		fmt.Sprintf("Delete item %s?", m.modalTarget),
		"",
		valueMuted.Render("[y] Delete  [n] Keep"),
	}, "\n")
	return modalStyle.Render(content)
}

func helpContent() string {
	sections := []string{
		labelStyle.Render("Items"),
		"up/down or j/k: move selection",
		"a: add item",
		"e: edit item",
		"space: toggle todo",
		"1-9: toggle subtask",
		"d: delete item",
		"r: refresh",
		"",
		labelStyle.Render("View"),
		"f: cycle type filter",
		"s: cycle sort order",
		"",
		labelStyle.Render("Tags"),
		"t: pick the next tag's color",
		"0-9: choose a color",
		"",
		labelStyle.Render("Composer"),
		"ctrl+s: save",
		"tab: complete tag",
		"esc: discard",
		"",
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func nextTypeFilter(f item.TypeFilter) item.TypeFilter {
	switch f {
	case item.TypeFilterAll, "":
		return item.TypeFilterTodos
	case item.TypeFilterTodos:
		return item.TypeFilterNotes
	default:
		return item.TypeFilterAll
	}
}

func nextSortOrder(s item.SortOrder) item.SortOrder {
	if s == item.SortDue {
		return item.SortRecent
	}
	return item.SortDue
}
