// Package ui holds plain-text output helpers shared by the CLI commands.
package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode for stdout. "auto" honors NO_COLOR and
// TERM=dumb and requires a terminal.
func ColorEnabled(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// HighlightID returns an ID with its unique prefix highlighted.
func HighlightID(id string, prefixLen int, color bool) string {
	if id == "" {
		return id
	}

	if prefixLen <= 0 || prefixLen > len(id) {
		return id
	}

	if !color {
		return id
	}

	prefix := id[:prefixLen]
	suffix := id[prefixLen:]
	return ansiBold + ansiCyan + prefix + ansiReset + suffix
}

// PrefixLength looks up id in a map of lowercased IDs.
func PrefixLength(lengths map[string]int, id string) int {
	if id == "" || lengths == nil {
		return 0
	}
	return lengths[strings.ToLower(id)]
}
