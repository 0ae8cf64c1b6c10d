package markup

import (
	"errors"
	"fmt"
	"maps"
	"unicode/utf16"
)

// Color is one entry of the tag palette.
type Color struct {
	Name string
	// ANSI is the 256-color terminal code used for the tag foreground.
	ANSI string
	// Foreground, Background and Border are the web view's hex colors.
	Foreground string
	Background string
	Border     string
}

// Palette is the fixed, ordered set of tag colors. Stored color indexes refer
// to positions in this slice, so entries must never be reordered.
var Palette = []Color{
	{Name: "blue", ANSI: "33", Foreground: "#2563eb", Background: "#eff6ff", Border: "#bfdbfe"},
	{Name: "green", ANSI: "34", Foreground: "#16a34a", Background: "#f0fdf4", Border: "#bbf7d0"},
	{Name: "purple", ANSI: "135", Foreground: "#9333ea", Background: "#faf5ff", Border: "#e9d5ff"},
	{Name: "orange", ANSI: "208", Foreground: "#ea580c", Background: "#fff7ed", Border: "#fed7aa"},
	{Name: "pink", ANSI: "205", Foreground: "#db2777", Background: "#fdf2f8", Border: "#fbcfe8"},
	{Name: "indigo", ANSI: "63", Foreground: "#4f46e5", Background: "#eef2ff", Border: "#c7d2fe"},
	{Name: "teal", ANSI: "37", Foreground: "#0d9488", Background: "#f0fdfa", Border: "#99f6e4"},
	{Name: "red", ANSI: "160", Foreground: "#dc2626", Background: "#fef2f2", Border: "#fecaca"},
	{Name: "amber", ANSI: "214", Foreground: "#d97706", Background: "#fffbeb", Border: "#fde68a"},
	{Name: "cyan", ANSI: "51", Foreground: "#0891b2", Background: "#ecfeff", Border: "#a5f3fc"},
}

// ErrInvalidColor indicates a color index outside the palette.
var ErrInvalidColor = errors.New("invalid color index")

// ValidateColorIndex checks that index refers to a palette entry.
func ValidateColorIndex(index int) error {
	if index < 0 || index >= len(Palette) {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidColor, index, len(Palette)-1)
	}
	return nil
}

// ColorByName returns the palette index for a color name.
func ColorByName(name string) (int, bool) {
	for i, c := range Palette {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// DefaultColorIndex returns the palette index a tag gets when no custom color
// is assigned. It is a pure function of the tag name.
//
// The hash accumulates hash = c + (hash<<5) - hash over UTF-16 code units, where
// the shift operates on the low 32 bits of the accumulator and the difference is
// kept at full width. This reproduces the colors existing notebooks already show.
func DefaultColorIndex(tag string) int {
	var hash int64
	for _, c := range utf16.Encode([]rune(tag)) {
		shifted := int64(int32(hash) << 5)
		hash = int64(c) + shifted - hash
	}
	if hash < 0 {
		hash = -hash
	}
	return int(hash % int64(len(Palette)))
}

// TagColors maps tag names to custom palette indexes.
type TagColors map[string]int

// Index returns the palette index for tag, preferring a valid custom entry.
func (tc TagColors) Index(tag string) int {
	if idx, ok := tc[tag]; ok && ValidateColorIndex(idx) == nil {
		return idx
	}
	return DefaultColorIndex(tag)
}

// Color returns the palette entry for tag.
func (tc TagColors) Color(tag string) Color {
	return Palette[tc.Index(tag)]
}

// With returns a copy of tc with tag assigned to index.
func (tc TagColors) With(tag string, index int) TagColors {
	out := make(TagColors, len(tc)+1)
	maps.Copy(out, tc)
	out[tag] = index
	return out
}
