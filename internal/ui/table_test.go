package ui

import (
	"strings"
	"testing"
)

func withViewport(t *testing.T, width int) {
	t.Helper()
	original := tableViewportWidth
	tableViewportWidth = func() int { return width }
	t.Cleanup(func() { tableViewportWidth = original })
}

func TestTruncateTableCellCountsRunes(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellCountsWideRunes(t *testing.T) {
	value := strings.Repeat("日", 30)

	got := TruncateTableCell(value)

	if want := strings.Repeat("日", 23) + tableCellEllipsis; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	value := "Hello\nWorld\r\nAgain\tTab"

	got := TruncateTableCell(value)

	if got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestTruncateTableCellIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m\x1b[36m" + strings.Repeat("a", tableCellMaxWidth) + "\x1b[0m"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := TruncateToWidth("buy milk and eggs", 10); got != "buy mil..." {
		t.Fatalf("expected %q, got %q", "buy mil...", got)
	}
	if got := TruncateToWidth("abcdef", 2); got != tableCellEllipsis {
		t.Fatalf("expected bare ellipsis, got %q", got)
	}
}

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	withViewport(t, 0)
	headers := []string{"COL"}
	rows := [][]string{{"Hello\nWorld\r\nAgain\tTab"}}

	got := FormatTable(headers, rows)

	expected := "COL                  \nHello World Again Tab\n"
	if got != expected {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTableAligns(t *testing.T) {
	withViewport(t, 0)

	got := FormatTable([]string{"ID", "TEXT"}, [][]string{{"abc", "milk"}, {"d", "eggs and more"}})

	expected := "ID   TEXT         \nabc  milk         \nd    eggs and more\n"
	if got != expected {
		t.Fatalf("expected aligned table, got %q", got)
	}
}

func TestFormatTableUsesViewportWidth(t *testing.T) {
	withViewport(t, 10)

	headers := []string{"COL1", "COL2"}
	rows := [][]string{{"A", "B"}}

	got := FormatTable(headers, rows)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	for _, line := range lines {
		if width := displayWidth(line); width != 10 {
			t.Fatalf("expected table width 10, got %d in %q", width, line)
		}
	}
}
