package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/amonks/mindcache/item"
)

// Scissors separates the editable text from the help shown below it.
// Everything from this line on is discarded.
const Scissors = "------------------------ >8 ------------------------"

// ItemData is the data used to render the editor buffer.
type ItemData struct {
	// IsUpdate is true when editing an existing item.
	IsUpdate bool
	// ID is the item ID (only for updates).
	ID string
	// Text is the editable text of the item.
	Text string
}

// DataFromItem creates ItemData from an existing item for editing.
func DataFromItem(it *item.Item) ItemData {
	if it == nil {
		return ItemData{}
	}
	return ItemData{
		IsUpdate: true,
		ID:       it.ID,
		Text:     item.EditableText(*it),
	}
}

var itemTemplate = template.Must(template.New("item").Parse(`{{ .Text }}
{{ .Scissors }}
{{- if .IsUpdate }}
Editing {{ .ID }}. Remove every line above to cancel.
{{- else }}
New item. Leave the buffer empty to cancel.
{{- end }}

Start with [] or [x] to make a todo. Under a todo:
  [ ] subtask    [x] done subtask    - sub-note
Markup: **bold** *italic* _underline_ #tag @3/14 @3/14/2027
`))

// RenderItem renders the editor buffer for data.
func RenderItem(data ItemData) (string, error) {
	var buf bytes.Buffer
	err := itemTemplate.Execute(&buf, struct {
		ItemData
		Scissors string
	}{data, Scissors})
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParseItem returns the text above the scissors line. Blank text is
// reported as item.ErrEmptyText.
func ParseItem(content string) (string, error) {
	text := strings.TrimSpace(cutScissors(content))
	if text == "" {
		return "", item.ErrEmptyText
	}
	return text, nil
}

func cutScissors(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == Scissors {
			return strings.Join(lines[:i], "\n")
		}
	}
	return content
}

func createItemTempFile() (*os.File, error) {
	return os.CreateTemp("", "mc-item-*.md")
}

// EditItem opens the editor on an item and returns the edited text.
// For add: pass nil for existing.
func EditItem(existing *item.Item) (string, error) {
	return EditItemWithData(DataFromItem(existing))
}

// EditItemWithData opens the editor with pre-populated data and returns the edited text.
func EditItemWithData(data ItemData) (string, error) {
	content, err := RenderItem(data)
	if err != nil {
		return "", err
	}

	tmpfile, err := createItemTempFile()
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}

	return ParseItem(string(edited))
}
