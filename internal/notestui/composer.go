package notestui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/mindcache/item"
)

// composerModel edits the raw text of a new or existing item. Tag
// completion works on the tag being typed at the end of the text.
type composerModel struct {
	input     textarea.Model
	editingID string
	tags      []string
}

func newComposerModel() composerModel {
	input := textarea.New()
	input.Placeholder = "Write a note, or start with [] for a todo"
	input.ShowLineNumbers = false
	input.CharLimit = 0
	return composerModel{input: input}
}

// Start opens the composer on text. An empty editingID adds a new item.
func (c *composerModel) Start(editingID, text string, tags []string) {
	c.editingID = editingID
	c.tags = tags
	c.input.SetValue(text)
	c.input.Focus()
}

func (c *composerModel) Stop() {
	c.editingID = ""
	c.input.Reset()
	c.input.Blur()
}

func (c *composerModel) SetSize(width, height int) {
	c.input.SetWidth(width)
	c.input.SetHeight(height)
}

func (c composerModel) Value() string {
	return c.input.Value()
}

// Suggestions returns the tags completing the partial tag at the end of
// the text.
func (c composerModel) Suggestions() []string {
	value := c.input.Value()
	return item.TagSuggestions(value, len(value), c.tags)
}

// Complete inserts the first suggestion and reports whether there was one.
func (c *composerModel) Complete() bool {
	suggestions := c.Suggestions()
	if len(suggestions) == 0 {
		return false
	}
	value := c.input.Value()
	next, _ := item.InsertTag(value, len(value), suggestions[0])
	c.input.SetValue(next)
	return true
}

func (c composerModel) Update(msg tea.Msg) (composerModel, tea.Cmd) {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c composerModel) View() string {
	title := "New item"
	if c.editingID != "" {
		title = "Editing " + c.editingID
	}
	lines := []string{labelStyle.Render(title), c.input.View()}
	if suggestions := c.Suggestions(); len(suggestions) > 0 {
		tags := make([]string, len(suggestions))
		for i, tag := range suggestions {
			tags[i] = "#" + tag
		}
		lines = append(lines, valueMuted.Render("tab: "+strings.Join(tags, " ")))
	}
	return strings.Join(lines, "\n")
}
