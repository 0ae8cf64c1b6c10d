package notestui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/mindcache/item"
)

type itemsLoadedMsg struct {
	err error
}

type writeDoneMsg struct {
	status       string
	selectID     string
	fromComposer bool
	err          error
}

type watchStartedMsg struct {
	events <-chan item.Event
	err    error
}

type storeChangedMsg struct{}

func (m model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return itemsLoadedMsg{err: m.nb.Refresh(m.ctx)}
	}
}

func (m model) saveCmd(id, text string) tea.Cmd {
	return func() tea.Msg {
		if id == "" {
			it, err := m.nb.Add(m.ctx, text)
			return writeDoneMsg{status: "Added " + it.ID, selectID: it.ID, fromComposer: true, err: err}
		}
		it, err := m.nb.Edit(m.ctx, id, text)
		return writeDoneMsg{status: "Saved " + it.ID, selectID: it.ID, fromComposer: true, err: err}
	}
}

func (m model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		it, err := m.nb.Toggle(m.ctx, id)
		return writeDoneMsg{status: fmt.Sprintf("Marked %s", it.Status), selectID: it.ID, err: err}
	}
}

func (m model) toggleSubtaskCmd(id string, index int) tea.Cmd {
	return func() tea.Msg {
		it, err := m.nb.ToggleSubtask(m.ctx, id, index)
		return writeDoneMsg{status: fmt.Sprintf("Toggled subtask %d", index+1), selectID: it.ID, err: err}
	}
}

func (m model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		it, err := m.nb.Delete(m.ctx, id)
		return writeDoneMsg{status: "Deleted " + it.ID, err: err}
	}
}

func (m model) setColorCmd(choice item.ColorChoice) tea.Cmd {
	return func() tea.Msg {
		err := m.nb.SetTagColor(m.ctx, choice.Tag, choice.Color)
		return writeDoneMsg{status: fmt.Sprintf("#%s is now color %d", choice.Tag, choice.Color), err: err}
	}
}

func (m model) watchCmd() tea.Cmd {
	return func() tea.Msg {
		events, err := m.watcher.Watch(m.ctx, m.nb.Owner())
		return watchStartedMsg{events: events, err: err}
	}
}

func (m model) waitForEventCmd() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}
