package ui

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."

// tableViewportWidth reports the width rows are padded to. Zero disables
// padding beyond the content.
var tableViewportWidth = func() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as an aligned table.
func FormatTable(headers []string, rows [][]string) string {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeTableCell(header)
	}

	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRow := make([]string, len(row))
		for i, cell := range row {
			normalizedRow[i] = normalizeTableCell(cell)
		}
		normalizedRows = append(normalizedRows, normalizedRow)
	}

	widths := make([]int, len(normalizedHeaders))
	for i, header := range normalizedHeaders {
		widths[i] = displayWidth(header)
	}

	for _, row := range normalizedRows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if displayLen := displayWidth(cell); displayLen > widths[i] {
				widths[i] = displayLen
			}
		}
	}

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2
		}
	}
	if viewport := tableViewportWidth(); viewport > total && len(widths) > 0 {
		widths[len(widths)-1] += viewport - total
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			padding := 0
			if i < len(widths) {
				padding = widths[i] - displayWidth(cell)
			}
			if i == len(row)-1 {
				builder.WriteString(strings.Repeat(" ", max(padding, 0)))
				builder.WriteByte('\n')
				continue
			}
			builder.WriteString(strings.Repeat(" ", max(padding, 0)+2))
		}
	}

	writeRow(normalizedHeaders)
	for _, row := range normalizedRows {
		writeRow(row)
	}

	return builder.String()
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	return TruncateToWidth(value, tableCellMaxWidth)
}

// TruncateToWidth limits value to width terminal columns, ending with an
// ellipsis when cut. ANSI codes do not count toward the width.
func TruncateToWidth(value string, width int) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= width {
		return value
	}

	limit := width - runewidth.StringWidth(tableCellEllipsis)
	if limit <= 0 {
		return tableCellEllipsis
	}
	return truncateVisible(value, limit) + tableCellEllipsis
}

func displayWidth(value string) int {
	return runewidth.StringWidth(stripANSICodes(value))
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

// truncateVisible keeps escape sequences and as many runes as fit in limit
// columns.
func truncateVisible(value string, limit int) string {
	if limit <= 0 {
		return ""
	}

	var builder strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' {
			end := i + 1
			if end < len(value) && value[end] == '[' {
				end++
				for end < len(value) && value[end] != 'm' {
					end++
				}
				if end < len(value) {
					end++
				}
				builder.WriteString(value[i:end])
				i = end
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		w := runewidth.RuneWidth(r)
		if visible+w > limit {
			break
		}
		builder.WriteString(value[i : i+size])
		visible += w
		i += size
	}
	return builder.String()
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
