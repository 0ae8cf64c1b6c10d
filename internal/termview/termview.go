// Package termview draws rendered items as terminal text.
//
// Styling goes through a lipgloss renderer whose color profile is fixed at
// construction, so output is plain text when color is off.
package termview

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

// Options configures a View.
type Options struct {
	// Width wraps text. Zero disables wrapping.
	Width int

	// Color enables ANSI styling.
	Color bool

	// Hyperlinks emits OSC-8 links. Ignored unless Color is set and Width is
	// zero, since wrapping would count the escape bytes as text.
	Hyperlinks bool

	// Now, when set, adds the age of each sub-note to its timestamp.
	Now func() time.Time
}

// View renders items for one output stream.
type View struct {
	opts     Options
	renderer *lipgloss.Renderer

	bold      lipgloss.Style
	italic    lipgloss.Style
	underline lipgloss.Style
	link      lipgloss.Style
	overdue   lipgloss.Style
	muted     lipgloss.Style
	checked   lipgloss.Style
}

// New returns a View writing styled text meant for out.
func New(out io.Writer, opts Options) *View {
	r := lipgloss.NewRenderer(out)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &View{
		opts:      opts,
		renderer:  r,
		bold:      r.NewStyle().Bold(true),
		italic:    r.NewStyle().Italic(true),
		underline: r.NewStyle().Underline(true),
		link:      r.NewStyle().Underline(true).Foreground(lipgloss.Color("33")),
		overdue:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("244")),
		checked:   r.NewStyle().Foreground(lipgloss.Color("34")),
	}
}

// Nodes renders one line of nodes.
func (v *View) Nodes(nodes []markup.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(v.node(n))
	}
	return b.String()
}

func (v *View) node(n markup.Node) string {
	switch n.Kind {
	case markup.NodeBold:
		return v.bold.Render(n.Text)
	case markup.NodeItalic:
		return v.italic.Bold(n.Strong).Render(n.Text)
	case markup.NodeUnderline:
		return v.underline.Bold(n.Strong).Render(n.Text)
	case markup.NodeLink:
		styled := v.link.Bold(n.Strong).Render(n.Text)
		if v.opts.Hyperlinks && v.opts.Color && v.opts.Width == 0 {
			return termenv.Hyperlink(n.Href, styled)
		}
		return styled
	case markup.NodeTag:
		return v.Tag(n.Tag, n.Color)
	case markup.NodeDate:
		if n.Overdue {
			return v.overdue.Render(n.Text)
		}
		return v.muted.Render(n.Text)
	default:
		return n.Text
	}
}

// Tag renders "#tag" in its palette color.
func (v *View) Tag(tag string, color int) string {
	return v.tagStyle(color).Render("#" + tag)
}

func (v *View) tagStyle(color int) lipgloss.Style {
	style := v.renderer.NewStyle().Bold(true)
	if color >= 0 && color < len(markup.Palette) {
		style = style.Foreground(lipgloss.Color(markup.Palette[color].ANSI))
	}
	return style
}

// Swatches renders the palette as "0 blue  1 green ...", each name in its
// color, for choosing a tag color.
func (v *View) Swatches() string {
	parts := make([]string, len(markup.Palette))
	for i, c := range markup.Palette {
		parts[i] = strconv.Itoa(i) + " " + v.tagStyle(i).Render(c.Name)
	}
	return strings.Join(parts, "  ")
}

// Checkbox renders a todo or subtask marker.
func (v *View) Checkbox(completed bool) string {
	if completed {
		return v.checked.Render("[x]")
	}
	return "[ ]"
}

// Compact renders an item on one line: the todo checkbox, the first text
// line, a subtask count and a marker when more lines follow.
func (v *View) Compact(it item.Item, r item.Rendering) string {
	var b strings.Builder
	if it.IsTodo() {
		b.WriteString(v.Checkbox(it.Status == item.StatusCompleted))
		b.WriteByte(' ')
	}

	first := -1
	for i, line := range r.Lines {
		if line.Kind != item.LineSpacer {
			first = i
			break
		}
	}
	if first >= 0 {
		if r.Lines[first].Kind == item.LineBullet {
			b.WriteString("• ")
		}
		b.WriteString(v.Nodes(r.Lines[first].Nodes))
		if first < len(r.Lines)-1 {
			b.WriteString(v.muted.Render(" …"))
		}
	}

	if it.HasSubtasks() {
		done := 0
		for _, s := range it.Subtasks {
			if s.Completed {
				done++
			}
		}
		b.WriteString(v.muted.Render(" (" + strconv.Itoa(done) + "/" + strconv.Itoa(len(it.Subtasks)) + ")"))
	}
	return b.String()
}

// stamp formats a sub-note timestamp, followed by its age when the view
// has a clock.
func (v *View) stamp(t time.Time) string {
	out := ui.FormatTimestamp(t)
	if v.opts.Now == nil || t.IsZero() {
		return out
	}
	return out + " (" + ui.FormatTimeAgo(t, v.opts.Now()) + ")"
}

// Detail renders an item in full: every text line, subtasks, sub-notes
// with their timestamps and the due date.
func (v *View) Detail(it item.Item, r item.Rendering) string {
	var lines []string

	for i, line := range r.Lines {
		prefix := ""
		if i == 0 && it.IsTodo() {
			prefix = v.Checkbox(it.Status == item.StatusCompleted) + " "
		}
		switch line.Kind {
		case item.LineSpacer:
			lines = append(lines, "")
		case item.LineBullet:
			lines = append(lines, v.block(prefix+"• ", v.Nodes(line.Nodes)))
		default:
			lines = append(lines, v.block(prefix, v.Nodes(line.Nodes)))
		}
	}

	for _, s := range r.Subtasks {
		lines = append(lines, v.block("  "+strconv.Itoa(s.Index+1)+". "+v.Checkbox(s.Completed)+" ", v.Nodes(s.Nodes)))
	}
	for _, n := range r.Notes {
		text := v.Nodes(n.Nodes) + v.muted.Render("  "+v.stamp(n.Timestamp))
		lines = append(lines, v.block("  - ", text))
	}

	if it.DueDate != "" {
		due := "  due " + it.DueDate
		if r.Overdue {
			due = "  " + v.overdue.Render("due "+it.DueDate+" (overdue)")
		}
		lines = append(lines, due)
	}

	return strings.Join(lines, "\n")
}

// block wraps body to the view width minus prefix and indents continuation
// lines under the body.
func (v *View) block(prefix, body string) string {
	prefixWidth := lipgloss.Width(prefix)
	if v.opts.Width <= 0 || v.opts.Width-prefixWidth < 10 {
		return prefix + body
	}
	wrapped := strings.Split(wordwrap.String(body, v.opts.Width-prefixWidth), "\n")
	pad := strings.Repeat(" ", prefixWidth)
	for i := range wrapped {
		if i == 0 {
			wrapped[i] = prefix + wrapped[i]
			continue
		}
		wrapped[i] = pad + wrapped[i]
	}
	return strings.Join(wrapped, "\n")
}
