package notestui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/mindcache/internal/termview"
	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/item"
)

type listEntry struct {
	item      item.Item
	rendering item.Rendering
}

func (e listEntry) FilterValue() string {
	return e.item.Text
}

type listDelegate struct {
	view *termview.View
	// plain renders the selected row, whose background would be broken by
	// inner style resets.
	plain *termview.View
}

func (d listDelegate) Height() int                             { return 1 }
func (d listDelegate) Spacing() int                            { return 0 }
func (d listDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d listDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	entry, ok := listItem.(listEntry)
	if !ok {
		return
	}

	line := d.view.Compact(entry.item, entry.rendering)
	if index == m.Index() {
		plain := d.plain.Compact(entry.item, entry.rendering)
		fmt.Fprint(w, selectedStyle.Render(ui.TruncateToWidth(plain, m.Width())))
		return
	}
	fmt.Fprint(w, ui.TruncateToWidth(line, m.Width()))
}

func listTarget(id string) string {
	return "list-" + id
}

func detailTarget(id string) string {
	return "detail-" + id
}
