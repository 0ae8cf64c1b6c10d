// Package markdown renders markdown documents, such as the markup cheat
// sheet, for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/amonks/mindcache/internal/strings"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output.
func Render(width, indent int, input []byte) []byte {
	if len(input) == 0 {
		return nil
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := value
	if r := markdownRenderer(renderWidth); r != nil {
		formatted, err := r.Render(value)
		if err == nil {
			rendered = formatted
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indent <= 0 {
		return []byte(rendered)
	}
	return []byte(indentBlock(rendered, indent))
}

// SafeRender is Render that falls back to the trimmed input if the
// renderer panics.
func SafeRender(width, indent int, input []byte) (out []byte) {
	defer func() {
		if recover() != nil {
			out = []byte(internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input))))
		}
	}()
	return Render(width, indent, input)
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
