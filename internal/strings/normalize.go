// Package strings holds small text helpers shared by the parser, the
// renderers and the CLI.
package strings

import (
	"strings"
)

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// NormalizeLower returns the input lowercased.
func NormalizeLower(value string) string {
	return strings.ToLower(value)
}

// NormalizeLowerTrimSpace trims surrounding whitespace and lowercases the input.
func NormalizeLowerTrimSpace(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeNewlines replaces CRLF and CR with LF.
func NormalizeNewlines(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

// Lines normalizes newlines and splits value into lines.
// An empty value yields a single empty line.
func Lines(value string) []string {
	return strings.Split(NormalizeNewlines(value), "\n")
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}

// TrimSpace trims surrounding whitespace.
func TrimSpace(value string) string {
	return strings.TrimSpace(value)
}

// IsBlank reports whether value is empty after trimming whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// FirstLine returns the first line of value.
func FirstLine(value string) string {
	value = NormalizeNewlines(value)
	if idx := strings.IndexByte(value, '\n'); idx >= 0 {
		return value[:idx]
	}
	return value
}
