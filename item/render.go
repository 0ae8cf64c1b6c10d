package item

import (
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/markup"
)

// DefaultTarget is the rendering target used when none is given.
const DefaultTarget = "main"

// RenderOptions configures Render.
type RenderOptions struct {
	// Target names the place the rendering is shown, such as "left-<id>".
	// It prefixes every tag key so two renderings of one item on the same
	// screen never share keys.
	Target string

	// Colors holds the owner's custom tag colors.
	Colors markup.TagColors

	// Now decides which dates are overdue.
	Now time.Time
}

// LineKind is the layout of one rendered line.
type LineKind string

const (
	// LineInline is the only line of a single-line item.
	LineInline LineKind = "inline"
	// LineBlock is a paragraph line of a multi-line item.
	LineBlock LineKind = "block"
	// LineBullet is a "- " line; the marker is not part of Nodes.
	LineBullet LineKind = "bullet"
	// LineSpacer is a blank line.
	LineSpacer LineKind = "spacer"
)

// Line is one rendered line of item text.
type Line struct {
	Kind  LineKind      `json:"kind"`
	Nodes []markup.Node `json:"nodes,omitempty"`
}

// RenderedSubtask is a subtask with rendered text.
type RenderedSubtask struct {
	Index     int           `json:"index"`
	Completed bool          `json:"completed"`
	Nodes     []markup.Node `json:"nodes"`
}

// RenderedNote is a sub-note with rendered text.
type RenderedNote struct {
	Timestamp time.Time     `json:"timestamp"`
	Date      string        `json:"date,omitempty"`
	Overdue   bool          `json:"overdue,omitempty"`
	Nodes     []markup.Node `json:"nodes"`
}

// Rendering is the display form of an item.
type Rendering struct {
	Target   string            `json:"target"`
	Lines    []Line            `json:"lines"`
	Subtasks []RenderedSubtask `json:"subtasks,omitempty"`
	Notes    []RenderedNote    `json:"notes,omitempty"`
	// Overdue is set when the item's due date is before today.
	Overdue bool `json:"overdue,omitempty"`
}

// Render lays out an item's text line by line.
//
// If any line starts with "- " (ignoring indentation) every line becomes a
// bullet, a trimmed paragraph line or a spacer. Otherwise a multi-line text
// becomes one block per non-blank line and a spacer per blank line, and a
// single line is rendered as is.
func Render(it Item, opts RenderOptions) Rendering {
	target := opts.Target
	if target == "" {
		target = DefaultTarget
	}
	lineOpts := func(prefix string) markup.LineOptions {
		return markup.LineOptions{KeyPrefix: prefix, Colors: opts.Colors, Now: opts.Now}
	}

	r := Rendering{
		Target:  target,
		Overdue: it.IsOverdue(opts.Now),
	}

	lines := internalstrings.Lines(it.Text)
	switch {
	case hasBullets(lines):
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(trimmed, subNoteMarker):
				prefix := target + "-bullet-" + strconv.Itoa(i)
				r.Lines = append(r.Lines, Line{Kind: LineBullet, Nodes: markup.RenderLine(trimmed[len(subNoteMarker):], lineOpts(prefix))})
			case trimmed != "":
				prefix := target + "-line-" + strconv.Itoa(i)
				r.Lines = append(r.Lines, Line{Kind: LineBlock, Nodes: markup.RenderLine(trimmed, lineOpts(prefix))})
			default:
				r.Lines = append(r.Lines, Line{Kind: LineSpacer})
			}
		}
	case len(lines) > 1:
		for i, line := range lines {
			if internalstrings.IsBlank(line) {
				r.Lines = append(r.Lines, Line{Kind: LineSpacer})
				continue
			}
			prefix := target + "-line-" + strconv.Itoa(i)
			r.Lines = append(r.Lines, Line{Kind: LineBlock, Nodes: markup.RenderLine(line, lineOpts(prefix))})
		}
	default:
		r.Lines = []Line{{Kind: LineInline, Nodes: markup.RenderLine(it.Text, lineOpts(target+"-text"))}}
	}

	for i, s := range it.Subtasks {
		prefix := target + "-subtask-" + strconv.Itoa(i)
		r.Subtasks = append(r.Subtasks, RenderedSubtask{
			Index:     i,
			Completed: s.Completed,
			Nodes:     markup.RenderLine(s.Text, lineOpts(prefix)),
		})
	}
	for i, n := range it.Notes {
		prefix := target + "-note-" + strconv.Itoa(i)
		r.Notes = append(r.Notes, RenderedNote{
			Timestamp: n.Timestamp,
			Date:      n.Date,
			Overdue:   n.Date != "" && markup.IsOverdue(n.Date, opts.Now),
			Nodes:     markup.RenderLine(n.Text, lineOpts(prefix)),
		})
	}
	return r
}

func hasBullets(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), subNoteMarker) {
			return true
		}
	}
	return false
}

// TagOccurrences returns the tag nodes of a rendering in display order.
func (r Rendering) TagOccurrences() []markup.Node {
	var tags []markup.Node
	collect := func(nodes []markup.Node) {
		for _, n := range nodes {
			if n.Kind == markup.NodeTag {
				tags = append(tags, n)
			}
		}
	}
	for _, line := range r.Lines {
		collect(line.Nodes)
	}
	for _, s := range r.Subtasks {
		collect(s.Nodes)
	}
	for _, n := range r.Notes {
		collect(n.Nodes)
	}
	return tags
}

// TagColorPicker tracks which tag occurrence has its color picker open.
// At most one picker is open at a time.
type TagColorPicker struct {
	key string
	tag string
}

// ColorChoice is a color picked for a tag.
type ColorChoice struct {
	Tag   string
	Color int
}

// Toggle opens the picker for a tag occurrence, or closes it when that
// occurrence's picker is already open.
func (p *TagColorPicker) Toggle(occurrence markup.Node) {
	if p.key == occurrence.Key {
		p.Close()
		return
	}
	p.key = occurrence.Key
	p.tag = occurrence.Tag
}

// IsOpen reports whether the picker is open for the occurrence with key.
func (p *TagColorPicker) IsOpen(key string) bool {
	return p.key != "" && p.key == key
}

// Open returns the key and tag of the open picker.
func (p *TagColorPicker) Open() (key, tag string, ok bool) {
	return p.key, p.tag, p.key != ""
}

// Close closes the picker.
func (p *TagColorPicker) Close() {
	p.key = ""
	p.tag = ""
}

// Choose picks a color for the open picker's tag and closes it. The choice
// applies to the tag name everywhere, not only to the occurrence.
func (p *TagColorPicker) Choose(color int) (ColorChoice, bool) {
	if p.key == "" || markup.ValidateColorIndex(color) != nil {
		return ColorChoice{}, false
	}
	choice := ColorChoice{Tag: p.tag, Color: color}
	p.Close()
	return choice, true
}
